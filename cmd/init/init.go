package init

import (
	"fmt"
	"os"

	"github.com/WorldHealthOrganization/d2-portainer/internal/config"
	"github.com/WorldHealthOrganization/d2-portainer/internal/portainer"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize d2pctl configuration",
	Long: `Create a d2pctl.yml configuration file with the Portainer server and
the git source instances are deployed from. No credentials are stored;
run 'd2pctl login' afterwards to open a session.`,
	RunE:         runInit,
	SilenceUsage: true,
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(config.ConfigFileName); err == nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Configuration file '%s' already exists.", config.ConfigFileName)))
		fmt.Println(infoStyle.Render("If you want to reconfigure, please delete the existing file first."))
		return nil
	}

	var formData struct {
		PortainerURL  string
		EndpointName  string
		RepositoryURL string
		ReferenceName string
		ComposeFile   string
	}

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
				Title("Endpoint Name").
				Description("Name of the Portainer endpoint instances are deployed to").
				Value(&formData.EndpointName).
				Validate(func(str string) error {
					if str == "" {
						return fmt.Errorf("endpoint name is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Stack Repository URL").
				Description("Git repository holding the DHIS2 compose definition").
				Value(&formData.RepositoryURL).
				Validate(func(str string) error {
					if str == "" {
						return fmt.Errorf("repository URL is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Reference Name").
				Description("Git reference to deploy from").
				Value(&formData.ReferenceName).
				Placeholder(config.DefaultReferenceName),

			huh.NewInput().
				Title("Compose File").
				Description("Path of the compose file inside the repository").
				Value(&formData.ComposeFile).
				Placeholder(config.DefaultComposeFile),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("failed to run form: %w", err)
	}

	if formData.ReferenceName == "" {
		formData.ReferenceName = config.DefaultReferenceName
	}
	if formData.ComposeFile == "" {
		formData.ComposeFile = config.DefaultComposeFile
	}

	cfg := &config.Config{
		PortainerURL:  formData.PortainerURL,
		EndpointName:  formData.EndpointName,
		SkipTLSVerify: config.GetDefaultSkipTLSVerify(),
		StackSource: config.StackSource{
			RepositoryURL: formData.RepositoryURL,
			ReferenceName: formData.ReferenceName,
			ComposeFile:   formData.ComposeFile,
		},
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Println(successStyle.Render("✓ Configuration saved successfully!"))
	fmt.Println()
	fmt.Println(infoStyle.Render("Configuration Summary:"))
	fmt.Printf("  Portainer URL: %s\n", formData.PortainerURL)
	fmt.Printf("  Endpoint: %s\n", formData.EndpointName)
	fmt.Printf("  Stack Repository: %s\n", formData.RepositoryURL)
	fmt.Printf("  Reference: %s\n", formData.ReferenceName)
	fmt.Printf("  Compose File: %s\n", formData.ComposeFile)
	fmt.Println()
	fmt.Println(infoStyle.Render("Run 'd2pctl login' to authenticate and start deploying instances."))

	return nil
}
