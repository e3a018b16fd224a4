package portainer

// SessionState is a closed union of the two authentication states a
// client can be in. Only NotLogged and Logged implement it.
type SessionState interface {
	sessionState()
}

// NotLogged is the anonymous state. Authenticated operations must not
// be called while the client holds it.
type NotLogged struct{}

// Logged carries the bearer token and the endpoint resolved at login
// time. All authenticated operations are scoped to EndpointID.
type Logged struct {
	Token      string
	EndpointID int
}

func (NotLogged) sessionState() {}
func (Logged) sessionState()    {}

// IsLogged reports whether the client holds an authenticated session.
func (c *Client) IsLogged() bool {
	_, ok := c.session.(Logged)
	return ok
}

// Token returns the session bearer token. Calling it while NotLogged is
// a contract violation and panics.
func (c *Client) Token() string {
	return c.mustLogged().Token
}

// EndpointID returns the endpoint the session is scoped to. Calling it
// while NotLogged is a contract violation and panics.
func (c *Client) EndpointID() int {
	return c.mustLogged().EndpointID
}

// SetSession force-sets the Logged state in place. Used to restore a
// previously persisted session without re-authenticating; the token is
// trusted, not validated against the API.
func (c *Client) SetSession(token string, endpointID int) {
	c.session = Logged{Token: token, EndpointID: endpointID}
}

// ClearSession force-sets the NotLogged state in place.
func (c *Client) ClearSession() {
	c.session = NotLogged{}
}

func (c *Client) mustLogged() Logged {
	logged, ok := c.session.(Logged)
	if !ok {
		panic("portainer: session accessed while not logged in")
	}
	return logged
}
