package share

import (
	"fmt"
	"strconv"

	"github.com/WorldHealthOrganization/d2-portainer/cmd/shared"
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

var ShareCmd = &cobra.Command{
	Use:   "share <instance-id>",
	Short: "Set who can access a DHIS2 instance",
	Long: `Replace the access permission of an instance. You pick the access
scope and the teams and users to grant; the previous permission is
replaced entirely, not merged.`,
	Args:         cobra.ExactArgs(1),
	RunE:         runShare,
	SilenceUsage: true,
}

func runShare(cmd *cobra.Command, args []string) error {
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
	var teams []portainer.Team
	var users []portainer.User
	err = spinner.RunWithSpinnerAndSuccess("Fetching instance, teams and users...", "✓ Loaded", func() error {
		instanceRes := repo.Get(id)
		if !instanceRes.IsOk() {
			return fmt.Errorf("%s", instanceRes.Error())
		}
		instance = instanceRes.Value()

		teamsRes := repo.Teams()
		if !teamsRes.IsOk() {
			return fmt.Errorf("%s", teamsRes.Error())
		}
		teams = teamsRes.Value()

		usersRes := repo.Users()
		if !usersRes.IsOk() {
			return fmt.Errorf("%s", usersRes.Error())
		}
		users = usersRes.Value()
		return nil
	})
	if err != nil {
		fmt.Println()
		fmt.Println(errorStyle.Render("✗ Failed to load sharing data"))
		fmt.Println()
		fmt.Println(errors.FormatError(err))
		fmt.Println()
		return nil
	}

	if instance.ResourceID == 0 {
		fmt.Println()
		fmt.Println(errorStyle.Render("✗ Instance has no resource control"))
		fmt.Println()
		fmt.Printf("Instance '%s' carries no permission object that could be replaced.\n", instance.Name)
		return nil
	}

	var teamOptions []huh.Option[int]
	for _, team := range teams {
		teamOptions = append(teamOptions, huh.NewOption(team.Name, team.ID).
			Selected(containsID(instance.TeamIDs, team.ID)))
	}

	var userOptions []huh.Option[int]
	for _, user := range users {
		userOptions = append(userOptions, huh.NewOption(user.Username, user.ID).
			Selected(containsID(instance.UserIDs, user.ID)))
	}

	access := instance.Access
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[stacks.AccessScope]().
				Title("Access scope").
				Description("Open instances are visible to everyone").
				Options(
					huh.NewOption("restricted", stacks.AccessRestricted),
					huh.NewOption("open", stacks.AccessOpen),
				).
				Value(&access),

			huh.NewMultiSelect[int]().
				Title("Teams").
				Description("Teams granted access").
				Options(teamOptions...).
				Value(&instance.TeamIDs),

			huh.NewMultiSelect[int]().
				Title("Users").
				Description("Users granted access").
				Options(userOptions...).
				Value(&instance.UserIDs),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("failed to run form: %w", err)
	}
	instance.Access = access

	err = spinner.RunWithSpinnerAndSuccess("Applying permission...", "✓ Permission applied", func() error {
		res := repo.Share(instance)
		if !res.IsOk() {
			return fmt.Errorf("%s", res.Error())
		}
		return nil
	})
	if err != nil {
		fmt.Println()
		fmt.Println(errorStyle.Render("✗ Failed to apply permission"))
		fmt.Println()
		fmt.Println(errors.FormatError(err))
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Println(successStyle.Render("✓ Permission updated!"))
	fmt.Println()
	fmt.Println(infoStyle.Render("Sharing:"))
	fmt.Printf("  Access: %s\n", instance.Access)
	fmt.Printf("  Teams: %d granted\n", len(instance.TeamIDs))
	fmt.Printf("  Users: %d granted\n", len(instance.UserIDs))

	return nil
}

func containsID(ids []int, id int) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
