// Package stacks adapts the control-plane-shaped types of the
// Portainer client into the DHIS2 domain. It is the only caller of the
// API client outside the client's own tests.
package stacks

import (
	"strconv"

	"github.com/WorldHealthOrganization/d2-portainer/internal/portainer"
)

// AccessScope controls who can see and act on a deployed instance.
type AccessScope string

const (
	AccessRestricted AccessScope = "restricted"
	AccessOpen       AccessScope = "open"
)

// Stack env var names carrying the instance attributes. The compose
// file in the stack repository consumes these.
const (
	envDataImage     = "DHIS2_IMAGE"
	envDatabaseImage = "DHIS2_DB_IMAGE"
	envPort          = "DHIS2_PORT"
	envAccess        = "DHIS2_ACCESS"
)

// D2Stack is a DHIS2 instance as the application sees it: one stack on
// the session endpoint, described by its images, published port and
// access scope.
type D2Stack struct {
	ID            int
	Name          string
	DataImage     string
	DatabaseImage string
	Port          int
	Access        AccessScope
	TeamIDs       []int
	UserIDs       []int
	ResourceID    int
	Active        bool
}

// UserSession is the authenticated context the application persists
// between runs.
type UserSession struct {
	Token        string
	EndpointID   int
	EndpointName string
}

func toEnv(stack D2Stack) []portainer.EnvVar {
	return []portainer.EnvVar{
		{Name: envDataImage, Value: stack.DataImage},
		{Name: envDatabaseImage, Value: stack.DatabaseImage},
		{Name: envPort, Value: strconv.Itoa(stack.Port)},
		{Name: envAccess, Value: string(stack.Access)},
	}
}

func fromStack(remote portainer.Stack) D2Stack {
	stack := D2Stack{
		ID:     remote.ID,
		Name:   remote.Name,
		Access: AccessRestricted,
		Active: remote.Status == 1,
	}

	if remote.ResourceControl != nil {
		stack.ResourceID = remote.ResourceControl.ID
	}

	for _, env := range remote.Env {
		switch env.Name {
		case envDataImage:
			stack.DataImage = env.Value
		case envDatabaseImage:
			stack.DatabaseImage = env.Value
		case envPort:
			if port, err := strconv.Atoi(env.Value); err == nil {
				stack.Port = port
			}
		case envAccess:
			if env.Value == string(AccessOpen) {
				stack.Access = AccessOpen
			}
		}
	}

	return stack
}

func toPermission(stack D2Stack) portainer.Permission {
	return portainer.Permission{
		Public: stack.Access == AccessOpen,
		Teams:  stack.TeamIDs,
		Users:  stack.UserIDs,
	}
}
