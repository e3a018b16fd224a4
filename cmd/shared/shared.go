// Package shared holds the wiring every authenticated command needs:
// load the configuration, restore the persisted session and hand back
// the stacks repository.
package shared

import (
	"github.com/WorldHealthOrganization/d2-portainer/internal/config"
	"github.com/WorldHealthOrganization/d2-portainer/internal/portainer"
	"github.com/WorldHealthOrganization/d2-portainer/internal/stacks"
)

// Repository builds a stacks repository with the persisted session
// restored. It fails when there is no configuration or no session yet.
func Repository() (*stacks.Repository, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	session, err := cfg.RequireSession()
	if err != nil {
		return nil, nil, err
	}

	client := portainer.NewClientWithTLS(cfg.PortainerURL, cfg.SkipTLSVerify)
	repo := stacks.NewRepository(client, stacks.StackSource{
		RepositoryURL: cfg.StackSource.RepositoryURL,
		ReferenceName: cfg.StackSource.ReferenceName,
		ComposeFile:   cfg.StackSource.ComposeFile,
	})
	repo.RestoreSession(stacks.UserSession{
		Token:        session.Token,
		EndpointID:   session.EndpointID,
		EndpointName: session.EndpointName,
	})

	return repo, cfg, nil
}
