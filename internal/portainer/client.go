package portainer

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/WorldHealthOrganization/d2-portainer/internal/result"
)

// Client handles communication with the Portainer API. A client starts
// out NotLogged; Login returns a new instance carrying the Logged
// session while leaving the receiver untouched.
type Client struct {
	baseURL       string
	session       SessionState
	skipTLSVerify bool
	httpClient    *http.Client
}

// NewClient creates a new anonymous Portainer API client
func NewClient(baseURL string) *Client {
	return NewClientWithTLS(baseURL, true) // Default to skip TLS verify
}

// NewClientWithTLS creates a new Portainer API client with TLS verification control
func NewClientWithTLS(baseURL string, skipTLSVerify bool) *Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: skipTLSVerify,
		},
	}

	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		session:       NotLogged{},
		skipTLSVerify: skipTLSVerify,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// Login performs the two-step handshake: exchange credentials for a
// token, then resolve the endpoint name against the endpoints listing
// using that token. On success it returns a NEW client in the Logged
// state; the receiver keeps its current session. An unknown endpoint
// name is a business failure reported through the same error channel
// as network failures.
func (c *Client) Login(username, password, endpointName string) result.Result[*Client] {
	auth := decode[authResponse](c.request(http.MethodPost, "/auth", authRequest{
		Username: username,
		Password: password,
	}, ""))

	return result.FlatMap(auth, func(a authResponse) result.Result[*Client] {
		// The receiver is still NotLogged, so the fresh token is passed
		// as an explicit override.
		endpoints := decode[[]Endpoint](c.request(http.MethodGet, "/endpoints", nil, a.JWT))

		return result.FlatMap(endpoints, func(eps []Endpoint) result.Result[*Client] {
			for _, ep := range eps {
				if ep.Name == endpointName {
					return result.Ok(&Client{
						baseURL:       c.baseURL,
						session:       Logged{Token: a.JWT, EndpointID: ep.ID},
						skipTLSVerify: c.skipTLSVerify,
						httpClient:    c.httpClient,
					})
				}
			}
			return result.Err[*Client](fmt.Sprintf("Cannot find endpoint '%s'", endpointName))
		})
	})
}

// GetStacks retrieves the stacks scoped to the session endpoint. The
// listing endpoint has no server-side endpoint filter, so the exact
// EndpointId equality filter is applied here.
func (c *Client) GetStacks() result.Result[[]Stack] {
	endpointID := c.EndpointID()

	stacks := decode[[]Stack](c.request(http.MethodGet, "/stacks", nil, ""))
	return result.Map(stacks, func(all []Stack) []Stack {
		scoped := []Stack{}
		for _, stack := range all {
			if stack.EndpointID == endpointID {
				scoped = append(scoped, stack)
			}
		}
		return scoped
	})
}

// GetStack retrieves a single stack by id
func (c *Client) GetStack(id int) result.Result[Stack] {
	return decode[Stack](c.request(http.MethodGet, fmt.Sprintf("/stacks/%d", id), nil, ""))
}

// CreateStack creates a new git-repository stack on the session
// endpoint. The endpointId, method and type query parameters are
// structural constants of this deployment method and always travel
// together.
func (c *Client) CreateStack(req CreateStackRequest) result.Result[Stack] {
	path := fmt.Sprintf("/stacks?endpointId=%d&method=repository&type=2", c.EndpointID())
	return decode[Stack](c.request(http.MethodPost, path, req, ""))
}

// UpdateStack updates an existing stack on the session endpoint
func (c *Client) UpdateStack(id int, req UpdateStackRequest) result.Result[Stack] {
	path := fmt.Sprintf("/stacks/%d?endpointId=%d", id, c.EndpointID())
	return decode[Stack](c.request(http.MethodPut, path, req, ""))
}

// DeleteStacks deletes the given stacks one by one, in the order
// provided, stopping at the first failure. Callers must assume a
// failed batch left a strict prefix of the ids deleted and re-query to
// know which.
func (c *Client) DeleteStacks(ids []int) result.Result[result.Unit] {
	for _, id := range ids {
		res := c.request(http.MethodDelete, fmt.Sprintf("/stacks/%d", id), nil, "")
		if !res.IsOk() {
			return result.Err[result.Unit](res.Error())
		}
	}
	return result.OkUnit()
}

// SetPermission replaces the permission attached to a resource control
func (c *Client) SetPermission(resourceID int, permission Permission) result.Result[result.Unit] {
	path := fmt.Sprintf("/resource_controls/%d", resourceID)
	return discard(c.request(http.MethodPut, path, permission, ""))
}

// GetContainers lists the containers of the session endpoint through
// the Docker proxy. When all is false only running containers are
// returned.
func (c *Client) GetContainers(all bool) result.Result[[]Container] {
	allParam := 0
	if all {
		allParam = 1
	}
	path := fmt.Sprintf("/endpoints/%d/docker/containers/json?all=%d", c.EndpointID(), allParam)
	return decode[[]Container](c.request(http.MethodGet, path, nil, ""))
}

// GetStackContainers lists the containers belonging to a stack through
// the Docker proxy, matched on the compose project label.
func (c *Client) GetStackContainers(stackName string) result.Result[[]Container] {
	filters := map[string][]string{
		"label": {fmt.Sprintf("com.docker.compose.project=%s", stackName)},
	}
	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return result.Err[[]Container](fmt.Sprintf("failed to marshal filters: %v", err))
	}

	path := fmt.Sprintf("/endpoints/%d/docker/containers/json?all=1&filters=%s",
		c.EndpointID(), url.QueryEscape(string(filtersJSON)))
	return decode[[]Container](c.request(http.MethodGet, path, nil, ""))
}

// GetContainerLogs fetches the last tail lines of a container's stdout
// and stderr through the Docker proxy. The body is raw log text, not
// JSON.
func (c *Client) GetContainerLogs(containerID string, tail int) result.Result[string] {
	path := fmt.Sprintf("/endpoints/%d/docker/containers/%s/logs?stdout=true&stderr=true&timestamps=true&tail=%d",
		c.EndpointID(), containerID, tail)
	raw := c.request(http.MethodGet, path, nil, "")
	return result.Map(raw, func(data []byte) string { return string(data) })
}

// StartContainer starts a container by id on the session endpoint
func (c *Client) StartContainer(containerID string) result.Result[result.Unit] {
	path := fmt.Sprintf("/endpoints/%d/docker/containers/%s/start", c.EndpointID(), containerID)
	return discard(c.request(http.MethodPost, path, nil, ""))
}

// StopContainer stops a container by id on the session endpoint
func (c *Client) StopContainer(containerID string) result.Result[result.Unit] {
	path := fmt.Sprintf("/endpoints/%d/docker/containers/%s/stop", c.EndpointID(), containerID)
	return discard(c.request(http.MethodPost, path, nil, ""))
}

// GetTeams retrieves all teams
func (c *Client) GetTeams() result.Result[[]Team] {
	return decode[[]Team](c.request(http.MethodGet, "/teams", nil, ""))
}

// GetUsers retrieves all users
func (c *Client) GetUsers() result.Result[[]User] {
	return decode[[]User](c.request(http.MethodGet, "/users", nil, ""))
}

// request performs exactly one HTTP round trip. Statuses in [200,300)
// and 304 are successes carrying the raw body; everything else,
// including transport failures, becomes the error variant with a
// normalized message. The token argument overrides the session token;
// when both are absent the request is sent anonymously.
func (c *Client) request(method, path string, payload interface{}, token string) result.Result[[]byte] {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return result.Err[[]byte](fmt.Sprintf("failed to marshal request: %v", err))
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.resolveURL(path), body)
	if err != nil {
		return result.Err[[]byte](transportMessage(err))
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token == "" {
		if logged, ok := c.session.(Logged); ok {
			token = logged.Token
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return result.Err[[]byte](transportMessage(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return result.Err[[]byte](transportMessage(err))
	}

	if (resp.StatusCode >= 200 && resp.StatusCode < 300) || resp.StatusCode == http.StatusNotModified {
		return result.Ok(data)
	}

	return result.Err[[]byte](fmt.Sprintf("%d - %s", resp.StatusCode, normalizeErrorBody(data)))
}

// resolveURL resolves a relative path against the API base URL.
// Absolute URLs pass through untouched.
func (c *Client) resolveURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + "/api" + path
}

// normalizeErrorBody turns a non-2xx response body into a message. A
// structured body contributes its non-empty message and details joined
// with ": ", falling back to the serialized body when both are empty;
// a plain string body is used trimmed; an empty body means the API
// gave nothing usable.
func normalizeErrorBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "Unknown error"
	}

	if strings.HasPrefix(trimmed, "{") {
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil {
			parts := []string{}
			if apiErr.Message != "" {
				parts = append(parts, apiErr.Message)
			}
			if apiErr.Details != "" {
				parts = append(parts, apiErr.Details)
			}
			if len(parts) > 0 {
				return strings.Join(parts, ": ")
			}
		}
		return trimmed
	}

	// The API occasionally responds with a JSON-encoded string.
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return trimmed
}

func transportMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "Unknown error"
	}
	return err.Error()
}

// decode parses a raw success body into the typed payload
func decode[T any](r result.Result[[]byte]) result.Result[T] {
	return result.FlatMap(r, func(data []byte) result.Result[T] {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return result.Err[T](fmt.Sprintf("failed to decode response: %v", err))
		}
		return result.Ok(v)
	})
}

func discard(r result.Result[[]byte]) result.Result[result.Unit] {
	return result.Map(r, func([]byte) result.Unit { return result.Unit{} })
}

// ValidateURL checks if the provided URL is valid
func ValidateURL(urlStr string) error {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if parsedURL.Scheme == "" {
		return fmt.Errorf("URL must include scheme (http:// or https://)")
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("URL must include host")
	}

	return nil
}
