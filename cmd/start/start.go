package start

import (
	"fmt"

	"github.com/WorldHealthOrganization/d2-portainer/cmd/shared"
	"github.com/WorldHealthOrganization/d2-portainer/internal/errors"
	"github.com/WorldHealthOrganization/d2-portainer/internal/spinner"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var StartCmd = &cobra.Command{
	Use:          "start <container-id>",
	Short:        "Start a container on the session endpoint",
	Args:         cobra.ExactArgs(1),
	RunE:         runStart,
	SilenceUsage: true,
}

func runStart(cmd *cobra.Command, args []string) error {
	containerID := args[0]

	repo, _, err := shared.Repository()
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		return nil // Exit cleanly without showing usage
	}

	err = spinner.RunWithSpinnerAndSuccess("Starting container...", "✓ Container started", func() error {
		res := repo.StartContainer(containerID)
		if !res.IsOk() {
			return fmt.Errorf("%s", res.Error())
		}
		return nil
	})
	if err != nil {
		fmt.Println()
		fmt.Println(errorStyle.Render("✗ Failed to start container"))
		fmt.Println()
		fmt.Println(errors.FormatError(err))
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Container %s started", containerID)))

	return nil
}
