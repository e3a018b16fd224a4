package update

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

var (
	flagImage   string
	flagDBImage string
	flagPort    int
)

var UpdateCmd = &cobra.Command{
	Use:   "update <instance-id>",
	Short: "Update an existing DHIS2 instance",
	Long: `Update the images or published port of an existing instance. Fields
not overridden by a flag keep their current value. The stack is
redeployed with the new parameters and images are pulled.`,
	Args:         cobra.ExactArgs(1),
	RunE:         runUpdate,
	SilenceUsage: true,
}

func init() {
	UpdateCmd.Flags().StringVar(&flagImage, "image", "", "new DHIS2 core image reference")
	UpdateCmd.Flags().StringVar(&flagDBImage, "db-image", "", "new database image reference")
	UpdateCmd.Flags().IntVar(&flagPort, "port", 0, "new published port")
}

func runUpdate(cmd *cobra.Command, args []string) error {
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
	err = spinner.RunWithSpinnerAndSuccess("Fetching instance...", "✓ Instance found", func() error {
		res := repo.Get(id)
		if !res.IsOk() {
			return fmt.Errorf("%s", res.Error())
		}
		instance = res.Value()
		return nil
	})
	if err != nil {
		fmt.Println()
		fmt.Println(errorStyle.Render("✗ Failed to fetch instance"))
		fmt.Println()
		fmt.Println(errors.FormatError(err))
		fmt.Println()
		return nil
	}

	if flagImage != "" {
		instance.DataImage = flagImage
	}
	if flagDBImage != "" {
		instance.DatabaseImage = flagDBImage
	}
	if flagPort != 0 {
		instance.Port = flagPort
	}

	var updated stacks.D2Stack
	err = spinner.RunWithSpinnerAndSuccess("Updating instance...", "✓ Instance updated", func() error {
		res := repo.Update(instance)
		if !res.IsOk() {
			return fmt.Errorf("%s", res.Error())
		}
		updated = res.Value()
		return nil
	})
	if err != nil {
		fmt.Println()
		fmt.Println(errorStyle.Render("✗ Failed to update instance"))
		fmt.Println()
		fmt.Println(errors.FormatError(err))
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Println(successStyle.Render("✓ Instance updated successfully!"))
	fmt.Println()
	fmt.Println(infoStyle.Render("Instance Details:"))
	fmt.Printf("  ID: %d\n", updated.ID)
	fmt.Printf("  Name: %s\n", updated.Name)
	fmt.Printf("  Image: %s\n", updated.DataImage)
	fmt.Printf("  Database: %s\n", updated.DatabaseImage)
	fmt.Printf("  Port: %d\n", updated.Port)

	return nil
}
