package stacks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WorldHealthOrganization/d2-portainer/internal/portainer"
)

var testSource = StackSource{
	RepositoryURL: "https://github.com/example/d2-stack",
	ReferenceName: "refs/heads/main",
	ComposeFile:   "docker-compose.yml",
}

func loggedRepository(t *testing.T, serverURL string) *Repository {
	t.Helper()
	repo := NewRepository(portainer.NewClient(serverURL), testSource)
	repo.RestoreSession(UserSession{Token: "test-token", EndpointID: 1})
	return repo
}

func TestRepository_Login_ReturnsNewRepository(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth":
			json.NewEncoder(w).Encode(map[string]string{"jwt": "issued-token"})
		case "/api/endpoints":
			json.NewEncoder(w).Encode([]portainer.Endpoint{{ID: 7, Name: "production"}})
		}
	}))
	defer server.Close()

	original := NewRepository(portainer.NewClient(server.URL), testSource)
	res := original.Login("admin", "s3cret", "production")

	require.True(t, res.IsOk(), res.Error())
	logged := res.Value()
	assert.NotSame(t, original, logged)
	assert.True(t, logged.IsLogged())
	assert.False(t, original.IsLogged())

	session := logged.Session()
	assert.Equal(t, "issued-token", session.Token)
	assert.Equal(t, 7, session.EndpointID)
}

func TestRepository_SessionRoundTrip(t *testing.T) {
	repo := NewRepository(portainer.NewClient("https://portainer.example.com"), testSource)
	repo.RestoreSession(UserSession{Token: "restored", EndpointID: 4})

	session := repo.Session()
	assert.Equal(t, "restored", session.Token)
	assert.Equal(t, 4, session.EndpointID)

	repo.ClearSession()
	assert.False(t, repo.IsLogged())
	assert.Panics(t, func() { repo.Session() })
}

func TestRepository_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]portainer.Stack{
			{
				ID: 1, Name: "dhis2-demo", EndpointID: 1, Status: 1,
				Env: []portainer.EnvVar{{Name: "DHIS2_PORT", Value: "8085"}},
			},
			{ID: 2, Name: "other-endpoint", EndpointID: 2},
		})
	}))
	defer server.Close()

	repo := loggedRepository(t, server.URL)
	res := repo.List()

	require.True(t, res.IsOk(), res.Error())
	instances := res.Value()
	require.Len(t, instances, 1)
	assert.Equal(t, "dhis2-demo", instances[0].Name)
	assert.Equal(t, 8085, instances[0].Port)
	assert.True(t, instances[0].Active)
}

func TestRepository_Deploy_AppliesPermission(t *testing.T) {
	var permissionBody portainer.Permission
	permissionCalls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/stacks" && r.Method == http.MethodPost:
			var req portainer.CreateStackRequest
			json.NewDecoder(r.Body).Decode(&req)
			assert.Equal(t, testSource.RepositoryURL, req.RepositoryURL)
			assert.Equal(t, testSource.ComposeFile, req.ComposeFilePathInRepository)

			json.NewEncoder(w).Encode(portainer.Stack{
				ID: 5, Name: req.Name, EndpointID: 1, Env: req.Env,
				ResourceControl: &portainer.ResourceControl{ID: 9},
			})
		case r.URL.Path == "/api/resource_controls/9" && r.Method == http.MethodPut:
			permissionCalls++
			json.NewDecoder(r.Body).Decode(&permissionBody)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	repo := loggedRepository(t, server.URL)
	res := repo.Deploy(D2Stack{
		Name:          "dhis2-demo",
		DataImage:     "dhis2/core:2.40",
		DatabaseImage: "postgis/postgis:15",
		Port:          8085,
		Access:        AccessRestricted,
		TeamIDs:       []int{2},
	})

	require.True(t, res.IsOk(), res.Error())
	assert.Equal(t, 5, res.Value().ID)
	assert.Equal(t, 9, res.Value().ResourceID)
	assert.Equal(t, 1, permissionCalls)
	assert.Equal(t, []int{2}, permissionBody.Teams)
	assert.False(t, permissionBody.Public)
}

func TestRepository_Deploy_SkipsPermissionWithoutResourceControl(t *testing.T) {
	permissionCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/stacks":
			json.NewEncoder(w).Encode(portainer.Stack{ID: 5, Name: "dhis2-demo", EndpointID: 1})
		default:
			permissionCalls++
		}
	}))
	defer server.Close()

	repo := loggedRepository(t, server.URL)
	res := repo.Deploy(D2Stack{Name: "dhis2-demo"})

	require.True(t, res.IsOk(), res.Error())
	assert.Zero(t, permissionCalls)
}

func TestRepository_Deploy_CreateFailureShortCircuits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "name already in use"})
	}))
	defer server.Close()

	repo := loggedRepository(t, server.URL)
	res := repo.Deploy(D2Stack{Name: "dhis2-demo"})

	require.False(t, res.IsOk())
	assert.Equal(t, "409 - name already in use", res.Error())
}

func TestRepository_Remove_DelegatesPrefixSemantics(t *testing.T) {
	var deleted []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deleted = append(deleted, r.URL.Path)
		if r.URL.Path == "/api/stacks/2" {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	repo := loggedRepository(t, server.URL)
	res := repo.Remove([]int{1, 2, 3})

	require.False(t, res.IsOk())
	assert.Equal(t, []string{"/api/stacks/1", "/api/stacks/2"}, deleted)
}

func TestRepository_InstanceContainers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/endpoints/1/docker/containers/json", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("filters"), "com.docker.compose.project=dhis2-demo")

		json.NewEncoder(w).Encode([]portainer.Container{
			{ID: "abc123", Names: []string{"/dhis2-demo_core_1"}},
		})
	}))
	defer server.Close()

	repo := loggedRepository(t, server.URL)
	res := repo.InstanceContainers("dhis2-demo")

	require.True(t, res.IsOk(), res.Error())
	require.Len(t, res.Value(), 1)
	assert.Equal(t, "abc123", res.Value()[0].ID)
}

func TestRepository_ContainerLogs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/endpoints/1/docker/containers/abc123/logs", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("tail"))
		w.Write([]byte("2026-01-01T12:00:00Z DHIS2 started\n"))
	}))
	defer server.Close()

	repo := loggedRepository(t, server.URL)
	res := repo.ContainerLogs("abc123", 25)

	require.True(t, res.IsOk(), res.Error())
	assert.Contains(t, res.Value(), "DHIS2 started")
}

func TestRepository_Share(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/resource_controls/9", r.URL.Path)

		var perm portainer.Permission
		json.NewDecoder(r.Body).Decode(&perm)
		assert.True(t, perm.Public)
	}))
	defer server.Close()

	repo := loggedRepository(t, server.URL)
	res := repo.Share(D2Stack{ResourceID: 9, Access: AccessOpen})

	assert.True(t, res.IsOk(), res.Error())
}
