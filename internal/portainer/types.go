package portainer

// Endpoint represents a Portainer environment/endpoint
type Endpoint struct {
	ID   int    `json:"Id"`
	Name string `json:"Name"`
}

// Stack represents a Portainer stack
type Stack struct {
	ID              int              `json:"Id"`
	Name            string           `json:"Name"`
	EndpointID      int              `json:"EndpointId"`
	Status          int              `json:"Status"`
	Env             []EnvVar         `json:"Env"`
	ResourceControl *ResourceControl `json:"ResourceControl,omitempty"`
}

// EnvVar represents a stack environment variable
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ResourceControl identifies the permission object attached to a stack
type ResourceControl struct {
	ID int `json:"Id"`
}

// CreateStackRequest represents the request payload for creating a
// stack from a git repository
type CreateStackRequest struct {
	Name                        string   `json:"Name"`
	RepositoryURL               string   `json:"RepositoryURL"`
	RepositoryReferenceName     string   `json:"RepositoryReferenceName"`
	ComposeFilePathInRepository string   `json:"ComposeFilePathInRepository"`
	Env                         []EnvVar `json:"Env"`
}

// UpdateStackRequest represents the request payload for updating a stack
type UpdateStackRequest struct {
	Env       []EnvVar `json:"Env"`
	Prune     bool     `json:"Prune"`
	PullImage bool     `json:"PullImage"`
}

// Permission represents a resource control update. A PUT replaces the
// prior permission on the resource entirely, it is not a merge.
type Permission struct {
	Public             bool  `json:"Public"`
	AdministratorsOnly bool  `json:"AdministratorsOnly"`
	Teams              []int `json:"Teams"`
	Users              []int `json:"Users"`
}

// Container represents a container returned by the Docker proxy
type Container struct {
	ID     string            `json:"Id"`
	Names  []string          `json:"Names"`
	Image  string            `json:"Image"`
	State  string            `json:"State"`
	Status string            `json:"Status"`
	Labels map[string]string `json:"Labels"`
	Ports  []Port            `json:"Ports"`
}

// Port represents a container port mapping
type Port struct {
	PrivatePort int    `json:"PrivatePort"`
	PublicPort  int    `json:"PublicPort"`
	Type        string `json:"Type"`
}

// Team represents a Portainer team
type Team struct {
	ID   int    `json:"Id"`
	Name string `json:"Name"`
}

// User represents a Portainer user
type User struct {
	ID       int    `json:"Id"`
	Username string `json:"Username"`
	Role     int    `json:"Role"`
}

type authRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

type authResponse struct {
	JWT string `json:"jwt"`
}

// apiError represents an error response from the Portainer API
type apiError struct {
	Message string `json:"message"`
	Details string `json:"details"`
}
