package deploy

import (
	"fmt"

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
	flagName    string
	flagImage   string
	flagDBImage string
	flagPort    int
	flagOpen    bool
	flagTeams   []int
	flagUsers   []int
)

var DeployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy a new DHIS2 instance",
	Long: `Deploy a new DHIS2 instance on the session endpoint. The instance is
created as a stack from the configured stack repository, parameterized
with the given images, port and access scope.`,
	RunE:         runDeploy,
	SilenceUsage: true,
}

func init() {
	DeployCmd.Flags().StringVar(&flagName, "name", "", "instance name (required)")
	DeployCmd.Flags().StringVar(&flagImage, "image", "", "DHIS2 core image reference (required)")
	DeployCmd.Flags().StringVar(&flagDBImage, "db-image", "", "database image reference (required)")
	DeployCmd.Flags().IntVar(&flagPort, "port", 8080, "published port")
	DeployCmd.Flags().BoolVar(&flagOpen, "open", false, "make the instance visible to everyone")
	DeployCmd.Flags().IntSliceVar(&flagTeams, "team", nil, "team id granted access (repeatable)")
	DeployCmd.Flags().IntSliceVar(&flagUsers, "user", nil, "user id granted access (repeatable)")
	DeployCmd.MarkFlagRequired("name")
	DeployCmd.MarkFlagRequired("image")
	DeployCmd.MarkFlagRequired("db-image")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	repo, _, err := shared.Repository()
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		return nil // Exit cleanly without showing usage
	}

	access := stacks.AccessRestricted
	if flagOpen {
		access = stacks.AccessOpen
	}

	instance := stacks.D2Stack{
		Name:          flagName,
		DataImage:     flagImage,
		DatabaseImage: flagDBImage,
		Port:          flagPort,
		Access:        access,
		TeamIDs:       flagTeams,
		UserIDs:       flagUsers,
	}

	var deployed stacks.D2Stack
	err = spinner.RunWithSpinnerAndSuccess("Deploying instance...", "✓ Instance deployed", func() error {
		res := repo.Deploy(instance)
		if !res.IsOk() {
			return fmt.Errorf("%s", res.Error())
		}
		deployed = res.Value()
		return nil
	})
	if err != nil {
		fmt.Println()
		fmt.Println(errorStyle.Render("✗ Failed to deploy instance"))
		fmt.Println()
		fmt.Println(errors.FormatError(err))
		fmt.Println()
		fmt.Println(infoStyle.Render("Common issues:"))
		fmt.Println("  • Port conflicts - check if the port is already in use")
		fmt.Println("  • Name conflicts - an instance with this name may already exist")
		fmt.Println("  • Network issues - check Portainer connectivity")
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Println(successStyle.Render("✓ Instance deployed successfully!"))
	fmt.Println()
	fmt.Println(infoStyle.Render("Instance Details:"))
	fmt.Printf("  ID: %d\n", deployed.ID)
	fmt.Printf("  Name: %s\n", deployed.Name)
	fmt.Printf("  Image: %s\n", deployed.DataImage)
	fmt.Printf("  Database: %s\n", deployed.DatabaseImage)
	fmt.Printf("  Port: %d\n", deployed.Port)
	fmt.Printf("  Access: %s\n", deployed.Access)
	fmt.Println()
	fmt.Println(infoStyle.Render("Use 'd2pctl ps' to watch the containers come up."))

	return nil
}
