package redeploy

import (
	"fmt"
	"strconv"

	"github.com/WorldHealthOrganization/d2-portainer/cmd/shared"
	"github.com/WorldHealthOrganization/d2-portainer/internal/errors"
	"github.com/WorldHealthOrganization/d2-portainer/internal/spinner"
	"github.com/WorldHealthOrganization/d2-portainer/internal/stacks"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

var RedeployCmd = &cobra.Command{
	Use:   "redeploy <instance-id>",
	Short: "Redeploy a DHIS2 instance from its source",
	Long: `Redeploy an existing instance from the configured git source, pulling
the latest images. The instance keeps its name, images, port and access
settings; use 'd2pctl update' to change them.`,
	Args:         cobra.ExactArgs(1),
	RunE:         runRedeploy,
	SilenceUsage: true,
}

func runRedeploy(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid instance id '%s'", args[0])
	}

	repo, _, err := shared.Repository()
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		return nil // Exit cleanly without showing usage
	}

	var instance stacks.D2Stack
	err = spinner.RunWithSpinnerAndSuccess("Redeploying instance...", "✓ Instance redeployed", func() error {
		fetched := repo.Get(id)
		if !fetched.IsOk() {
			return fmt.Errorf("%s", fetched.Error())
		}

		redeployed := repo.Update(fetched.Value())
		if !redeployed.IsOk() {
			return fmt.Errorf("%s", redeployed.Error())
		}
		instance = redeployed.Value()
		return nil
	})
	if err != nil {
		fmt.Println()
		fmt.Println(errorStyle.Render("✗ Failed to redeploy instance"))
		fmt.Println()
		fmt.Println(errors.FormatError(err))
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Println(successStyle.Render("✓ Instance redeployed successfully!"))
	fmt.Println()
	fmt.Println(infoStyle.Render("Instance Details:"))
	fmt.Printf("  ID: %d\n", instance.ID)
	fmt.Printf("  Name: %s\n", instance.Name)
	fmt.Printf("  DHIS2 Image: %s\n", instance.DataImage)
	fmt.Printf("  Database Image: %s\n", instance.DatabaseImage)
	fmt.Println()
	fmt.Println(infoStyle.Render("The instance has been updated and the latest images have been pulled."))

	return nil
}
