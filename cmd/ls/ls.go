package ls

import (
	"fmt"
	"strings"

	"github.com/WorldHealthOrganization/d2-portainer/cmd/shared"
	"github.com/WorldHealthOrganization/d2-portainer/internal/errors"
	"github.com/WorldHealthOrganization/d2-portainer/internal/spinner"
	"github.com/WorldHealthOrganization/d2-portainer/internal/stacks"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
)

var LsCmd = &cobra.Command{
	Use:          "ls",
	Short:        "List DHIS2 instances on the session endpoint",
	Long:         `List the DHIS2 instances deployed on the endpoint selected at login, with their images, published port and access scope.`,
	RunE:         runLs,
	SilenceUsage: true,
}

func runLs(cmd *cobra.Command, args []string) error {
	repo, cfg, err := shared.Repository()
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		return nil // Exit cleanly without showing usage
	}

	var instances []stacks.D2Stack
	err = spinner.RunWithSpinnerAndSuccess("Fetching instances...", "✓ Instances loaded", func() error {
		res := repo.List()
		if !res.IsOk() {
			return fmt.Errorf("%s", res.Error())
		}
		instances = res.Value()
		return nil
	})
	if err != nil {
		fmt.Println()
		fmt.Println(errorStyle.Render("✗ Failed to list instances"))
		fmt.Println()
		fmt.Println(errors.FormatError(err))
		fmt.Println()
		return nil
	}

	fmt.Println()
	if len(instances) == 0 {
		fmt.Printf("No instances found on endpoint '%s'.\n", cfg.EndpointName)
		fmt.Println()
		fmt.Println(infoStyle.Render("Use 'd2pctl deploy' to create one."))
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Instances on '%s':", cfg.EndpointName)))
	fmt.Printf("%-5s %-25s %-30s %-7s %-11s %-8s\n",
		headerStyle.Render("ID"),
		headerStyle.Render("NAME"),
		headerStyle.Render("IMAGE"),
		headerStyle.Render("PORT"),
		headerStyle.Render("ACCESS"),
		headerStyle.Render("STATUS"))
	fmt.Println(strings.Repeat("─", 90))
	for _, instance := range instances {
		fmt.Printf("%-5d %-25s %-30s %-7d %-11s %-8s\n",
			instance.ID,
			truncate(instance.Name, 25),
			truncate(instance.DataImage, 30),
			instance.Port,
			instance.Access,
			statusText(instance))
	}

	return nil
}

func statusText(instance stacks.D2Stack) string {
	if instance.Active {
		return "active"
	}
	return "inactive"
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}
