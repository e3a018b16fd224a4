package stacks

import (
	"github.com/WorldHealthOrganization/d2-portainer/internal/portainer"
	"github.com/WorldHealthOrganization/d2-portainer/internal/result"
)

// StackSource locates the git repository holding the compose definition
// every instance is deployed from.
type StackSource struct {
	RepositoryURL string
	ReferenceName string
	ComposeFile   string
}

// Repository exposes the DHIS2 use cases on top of the Portainer client.
type Repository struct {
	client *portainer.Client
	source StackSource
}

// NewRepository creates a repository over the given client
func NewRepository(client *portainer.Client, source StackSource) *Repository {
	return &Repository{client: client, source: source}
}

// Login authenticates and resolves the endpoint, returning a NEW
// repository over the logged-in client. The receiver and its client are
// left unmodified, mirroring the client's own login contract.
func (r *Repository) Login(username, password, endpointName string) result.Result[*Repository] {
	return result.Map(r.client.Login(username, password, endpointName), func(logged *portainer.Client) *Repository {
		return &Repository{client: logged, source: r.source}
	})
}

// RestoreSession force-sets a previously persisted session in place
func (r *Repository) RestoreSession(session UserSession) {
	r.client.SetSession(session.Token, session.EndpointID)
}

// ClearSession drops the session in place
func (r *Repository) ClearSession() {
	r.client.ClearSession()
}

// Session returns the current authenticated context for persistence.
// Calling it while logged out is a contract violation, same as reading
// the client's session fields.
func (r *Repository) Session() UserSession {
	return UserSession{
		Token:      r.client.Token(),
		EndpointID: r.client.EndpointID(),
	}
}

// IsLogged reports whether the underlying client holds a session
func (r *Repository) IsLogged() bool {
	return r.client.IsLogged()
}

// List retrieves the instances deployed on the session endpoint
func (r *Repository) List() result.Result[[]D2Stack] {
	return result.Map(r.client.GetStacks(), func(remote []portainer.Stack) []D2Stack {
		domain := make([]D2Stack, 0, len(remote))
		for _, stack := range remote {
			domain = append(domain, fromStack(stack))
		}
		return domain
	})
}

// Get retrieves a single instance by stack id
func (r *Repository) Get(id int) result.Result[D2Stack] {
	return result.Map(r.client.GetStack(id), fromStack)
}

// Deploy creates a new instance from the stack source. When the created
// stack carries a resource control and the instance declares an access
// scope or team/user grants, the permission is applied in the same
// flow.
func (r *Repository) Deploy(stack D2Stack) result.Result[D2Stack] {
	created := r.client.CreateStack(portainer.CreateStackRequest{
		Name:                        stack.Name,
		RepositoryURL:               r.source.RepositoryURL,
		RepositoryReferenceName:     r.source.ReferenceName,
		ComposeFilePathInRepository: r.source.ComposeFile,
		Env:                         toEnv(stack),
	})

	return result.FlatMap(created, func(remote portainer.Stack) result.Result[D2Stack] {
		deployed := fromStack(remote)
		deployed.Access = stack.Access
		deployed.TeamIDs = stack.TeamIDs
		deployed.UserIDs = stack.UserIDs

		if deployed.ResourceID == 0 {
			return result.Ok(deployed)
		}

		shared := r.client.SetPermission(deployed.ResourceID, toPermission(deployed))
		return result.Map(shared, func(result.Unit) D2Stack {
			return deployed
		})
	})
}

// Update replaces the images, port and access scope of an existing
// instance
func (r *Repository) Update(stack D2Stack) result.Result[D2Stack] {
	updated := r.client.UpdateStack(stack.ID, portainer.UpdateStackRequest{
		Env:       toEnv(stack),
		PullImage: true,
	})
	return result.Map(updated, fromStack)
}

// Remove deletes the given instances in order, stopping at the first
// failure. A failed removal may leave a prefix of the ids deleted;
// callers should re-list to know which.
func (r *Repository) Remove(ids []int) result.Result[result.Unit] {
	return r.client.DeleteStacks(ids)
}

// Share replaces the permission on an instance's resource control
func (r *Repository) Share(stack D2Stack) result.Result[result.Unit] {
	return r.client.SetPermission(stack.ResourceID, toPermission(stack))
}

// Containers lists the containers of the session endpoint. When all is
// false only running containers are included.
func (r *Repository) Containers(all bool) result.Result[[]portainer.Container] {
	return r.client.GetContainers(all)
}

// InstanceContainers lists the containers belonging to one instance,
// matched on the compose project label carried by its stack name.
func (r *Repository) InstanceContainers(stackName string) result.Result[[]portainer.Container] {
	return r.client.GetStackContainers(stackName)
}

// ContainerLogs fetches the last tail lines of a container's output
func (r *Repository) ContainerLogs(containerID string, tail int) result.Result[string] {
	return r.client.GetContainerLogs(containerID, tail)
}

// StartContainer starts a container by id
func (r *Repository) StartContainer(containerID string) result.Result[result.Unit] {
	return r.client.StartContainer(containerID)
}

// StopContainer stops a container by id
func (r *Repository) StopContainer(containerID string) result.Result[result.Unit] {
	return r.client.StopContainer(containerID)
}

// Teams lists all teams known to the control plane
func (r *Repository) Teams() result.Result[[]portainer.Team] {
	return r.client.GetTeams()
}

// Users lists all users known to the control plane
func (r *Repository) Users() result.Result[[]portainer.User] {
	return r.client.GetUsers()
}
