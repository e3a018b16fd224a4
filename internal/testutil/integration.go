package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/WorldHealthOrganization/d2-portainer/internal/stacks"
	"github.com/stretchr/testify/require"
)

// IntegrationConfig represents the configuration for integration tests
type IntegrationConfig struct {
	PortainerURL  string `json:"portainer_url"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	EndpointName  string `json:"endpoint_name"`
	RepositoryURL string `json:"repository_url"`
	ReferenceName string `json:"reference_name"`
	ComposeFile   string `json:"compose_file"`
}

// Source returns the git source the integration instances deploy from.
func (c *IntegrationConfig) Source() stacks.StackSource {
	source := stacks.StackSource{
		RepositoryURL: c.RepositoryURL,
		ReferenceName: c.ReferenceName,
		ComposeFile:   c.ComposeFile,
	}
	if source.ReferenceName == "" {
		source.ReferenceName = "refs/heads/main"
	}
	if source.ComposeFile == "" {
		source.ComposeFile = "docker-compose.yml"
	}
	return source
}

// LoadIntegrationConfig loads the integration test configuration from integration_test_config.json
func LoadIntegrationConfig(t require.TestingT) *IntegrationConfig {
	cfg, err := LoadIntegrationConfigFrom("integration_test_config.json")
	require.NoError(t, err)
	return cfg
}

// LoadIntegrationConfigFrom loads the integration test configuration from the given path
func LoadIntegrationConfigFrom(configPath string) (*IntegrationConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("integration_test_config.json not found. Copy integration_test_config.json.example to integration_test_config.json and configure it")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read integration test config: %w", err)
	}

	var cfg IntegrationConfig
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse integration test config: %w", err)
	}

	if cfg.PortainerURL == "" {
		return nil, fmt.Errorf("portainer_url is required")
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if cfg.EndpointName == "" {
		return nil, fmt.Errorf("endpoint_name is required")
	}
	if cfg.RepositoryURL == "" {
		return nil, fmt.Errorf("repository_url is required")
	}

	return &cfg, nil
}

// GenerateTestInstanceName generates a unique instance name for integration tests
func GenerateTestInstanceName() string {
	return fmt.Sprintf("d2pctl-integration-test-%d", time.Now().Unix())
}

// TestInstance returns a small DHIS2 instance definition suitable for
// throwaway integration runs.
func TestInstance(name string) stacks.D2Stack {
	return stacks.D2Stack{
		Name:          name,
		DataImage:     "dhis2/core:41.0",
		DatabaseImage: "postgis/postgis:16-3.4",
		Port:          18080,
		Access:        stacks.AccessRestricted,
	}
}

// CleanupInstance removes an instance by name, ignoring failures. Instances
// left behind by earlier runs might already be gone.
func CleanupInstance(repo *stacks.Repository, name string) {
	listed := repo.List()
	if !listed.IsOk() {
		fmt.Printf("Warning: failed to list instances during cleanup: %s\n", listed.Error())
		return
	}

	for _, instance := range listed.Value() {
		if instance.Name != name {
			continue
		}
		removed := repo.Remove([]int{instance.ID})
		if !removed.IsOk() {
			fmt.Printf("Warning: failed to remove instance %s (ID: %d): %s\n", name, instance.ID, removed.Error())
		} else {
			fmt.Printf("Successfully removed instance %s (ID: %d)\n", name, instance.ID)
		}
		return
	}
}

// FindInstanceByName looks an instance up by name, returning nil when absent.
func FindInstanceByName(repo *stacks.Repository, name string) (*stacks.D2Stack, error) {
	listed := repo.List()
	if !listed.IsOk() {
		return nil, fmt.Errorf("failed to list instances: %s", listed.Error())
	}

	for _, instance := range listed.Value() {
		if instance.Name == name {
			found := instance
			return &found, nil
		}
	}
	return nil, nil
}
