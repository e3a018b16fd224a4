package logout

import (
	"fmt"

	"github.com/WorldHealthOrganization/d2-portainer/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

var LogoutCmd = &cobra.Command{
	Use:          "logout",
	Short:        "Drop the persisted session",
	Long:         `Remove the persisted session from the configuration file. The rest of the configuration (URL, endpoint, stack source) is kept.`,
	RunE:         runLogout,
	SilenceUsage: true,
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(infoStyle.Render("No configuration found; nothing to do."))
		return nil
	}

	if cfg.Session == nil {
		fmt.Println(infoStyle.Render("No active session; nothing to do."))
		return nil
	}

	cfg.Session = nil
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println(successStyle.Render("✓ Logged out"))
	return nil
}
