package login

import (
	"fmt"

	"github.com/WorldHealthOrganization/d2-portainer/internal/config"
	"github.com/WorldHealthOrganization/d2-portainer/internal/errors"
	"github.com/WorldHealthOrganization/d2-portainer/internal/portainer"
	"github.com/WorldHealthOrganization/d2-portainer/internal/spinner"
	"github.com/WorldHealthOrganization/d2-portainer/internal/stacks"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against Portainer and select an endpoint",
	Long: `Authenticate against the configured Portainer instance with your
username and password, resolve the configured endpoint by name, and
persist the resulting session so other commands can run without
re-authenticating.`,
	RunE:         runLogin,
	SilenceUsage: true,
}

func runLogin(cmd *cobra.Command, args []string) error {
	// Start from the existing configuration when there is one so the
	// URL and endpoint only need to be typed once.
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{
			SkipTLSVerify: config.GetDefaultSkipTLSVerify(),
			StackSource: config.StackSource{
				ReferenceName: config.DefaultReferenceName,
				ComposeFile:   config.DefaultComposeFile,
			},
		}
	}

	var formData struct {
		PortainerURL string
		EndpointName string
		Username     string
		Password     string
	}
	formData.PortainerURL = cfg.PortainerURL
	formData.EndpointName = cfg.EndpointName

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Portainer URL").
				Description("Enter your Portainer instance URL (e.g., https://portainer.example.com)").
				Value(&formData.PortainerURL).
				Validate(func(str string) error {
					if str == "" {
						return fmt.Errorf("Portainer URL is required")
					}
					return portainer.ValidateURL(str)
				}),

			huh.NewInput().
				Title("Endpoint").
				Description("Name of the Portainer endpoint to manage (exact match)").
				Value(&formData.EndpointName).
				Validate(func(str string) error {
					if str == "" {
						return fmt.Errorf("endpoint name is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Username").
				Value(&formData.Username).
				Validate(func(str string) error {
					if str == "" {
						return fmt.Errorf("username is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&formData.Password).
				Validate(func(str string) error {
					if str == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("failed to run form: %w", err)
	}

	client := portainer.NewClientWithTLS(formData.PortainerURL, cfg.SkipTLSVerify)
	repo := stacks.NewRepository(client, stacks.StackSource{
		RepositoryURL: cfg.StackSource.RepositoryURL,
		ReferenceName: cfg.StackSource.ReferenceName,
		ComposeFile:   cfg.StackSource.ComposeFile,
	})

	var logged *stacks.Repository
	err = spinner.RunWithSpinnerAndSuccess("Authenticating with Portainer...", "✓ Authenticated", func() error {
		res := repo.Login(formData.Username, formData.Password, formData.EndpointName)
		if !res.IsOk() {
			return fmt.Errorf("%s", res.Error())
		}
		logged = res.Value()
		return nil
	})
	if err != nil {
		fmt.Println()
		fmt.Println(errorStyle.Render("✗ Login failed"))
		fmt.Println()
		fmt.Println(errors.FormatError(err))
		fmt.Println()
		return nil // Exit cleanly without showing usage
	}

	session := logged.Session()
	cfg.PortainerURL = formData.PortainerURL
	cfg.EndpointName = formData.EndpointName
	cfg.Session = &config.SessionConfig{
		Token:        session.Token,
		EndpointID:   session.EndpointID,
		EndpointName: formData.EndpointName,
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Println(successStyle.Render("✓ Logged in successfully!"))
	fmt.Println()
	fmt.Println(infoStyle.Render("Session:"))
	fmt.Printf("  Portainer URL: %s\n", formData.PortainerURL)
	fmt.Printf("  Endpoint: %s (ID: %d)\n", formData.EndpointName, session.EndpointID)
	fmt.Println()
	fmt.Println(infoStyle.Render("You can now use 'd2pctl ls' to list instances or 'd2pctl deploy' to create one."))

	return nil
}
