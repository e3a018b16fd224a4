package rm

import (
	"fmt"
	"strconv"

	"github.com/WorldHealthOrganization/d2-portainer/cmd/shared"
	"github.com/WorldHealthOrganization/d2-portainer/internal/errors"
	"github.com/WorldHealthOrganization/d2-portainer/internal/spinner"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

var RmCmd = &cobra.Command{
	Use:   "rm <instance-id>...",
	Short: "Remove one or more DHIS2 instances",
	Long: `Remove the given instances in the order provided. Removal stops at the
first failure; instances listed before the failing one are already gone
at that point, instances after it are untouched.`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         runRm,
	SilenceUsage: true,
}

func runRm(cmd *cobra.Command, args []string) error {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid instance id '%s'", arg)
		}
		ids = append(ids, id)
	}

	repo, _, err := shared.Repository()
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		return nil // Exit cleanly without showing usage
	}

	err = spinner.RunWithSpinnerAndSuccess(
		fmt.Sprintf("Removing %d instance(s)...", len(ids)),
		"✓ Instances removed",
		func() error {
			res := repo.Remove(ids)
			if !res.IsOk() {
				return fmt.Errorf("%s", res.Error())
			}
			return nil
		})
	if err != nil {
		fmt.Println()
		fmt.Println(errorStyle.Render("✗ Failed to remove instances"))
		fmt.Println()
		fmt.Println(errors.FormatError(err))
		fmt.Println()
		fmt.Println(infoStyle.Render("Instances listed before the failing one were already removed."))
		fmt.Println(infoStyle.Render("Run 'd2pctl ls' to see what is left."))
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Removed %d instance(s)", len(ids))))

	return nil
}
