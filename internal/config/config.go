package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the d2pctl configuration structure
type Config struct {
	PortainerURL  string         `yaml:"portainer_url"`
	EndpointName  string         `yaml:"endpoint_name"`
	SkipTLSVerify bool           `yaml:"skip_tls_verify"`
	StackSource   StackSource    `yaml:"stack_source"`
	Session       *SessionConfig `yaml:"session,omitempty"`
}

// StackSource holds the git repository every instance is deployed from
type StackSource struct {
	RepositoryURL string `yaml:"repository_url"`
	ReferenceName string `yaml:"reference_name"`
	ComposeFile   string `yaml:"compose_file"`
}

// SessionConfig is the persisted session restored between runs without
// re-authenticating
type SessionConfig struct {
	Token        string `yaml:"token"`
	EndpointID   int    `yaml:"endpoint_id"`
	EndpointName string `yaml:"endpoint_name"`
}

const (
	ConfigFileName       = "d2pctl.yml"
	DefaultReferenceName = "refs/heads/main"
	DefaultComposeFile   = "docker-compose.yml"
)

// Load reads and parses the d2pctl.yml configuration file
func Load() (*Config, error) {
	configPath := ConfigFileName

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file '%s' not found. Run 'd2pctl login' to create it", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	return &config, nil
}

// Save writes the configuration to d2pctl.yml
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	// The file carries the session token; keep it owner-only.
	if err := os.WriteFile(ConfigFileName, data, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	return nil
}

// Validate checks if all required configuration fields are present
func (c *Config) Validate() error {
	if c.PortainerURL == "" {
		return fmt.Errorf("portainer_url is required")
	}

	if c.EndpointName == "" {
		return fmt.Errorf("endpoint_name is required")
	}

	if c.StackSource.RepositoryURL == "" {
		return fmt.Errorf("stack_source.repository_url is required")
	}

	return nil
}

// RequireSession returns the persisted session or an error telling the
// user to log in
func (c *Config) RequireSession() (*SessionConfig, error) {
	if c.Session == nil || c.Session.Token == "" {
		return nil, fmt.Errorf("no active session. Run 'd2pctl login' first")
	}
	return c.Session, nil
}

// GetDefaultSkipTLSVerify returns the default value for skip_tls_verify
func GetDefaultSkipTLSVerify() bool {
	return true // Default to true for self-hosted environments
}
