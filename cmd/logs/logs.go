package logs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/WorldHealthOrganization/d2-portainer/cmd/shared"
	"github.com/WorldHealthOrganization/d2-portainer/internal/errors"
	"github.com/WorldHealthOrganization/d2-portainer/internal/portainer"
	"github.com/WorldHealthOrganization/d2-portainer/internal/spinner"
	"github.com/WorldHealthOrganization/d2-portainer/internal/stacks"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	logStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

var (
	tailLines      int
	nonInteractive bool
)

var LogsCmd = &cobra.Command{
	Use:   "logs <instance-id>",
	Short: "View logs of a DHIS2 instance",
	Long: `Display logs from the containers of a DHIS2 instance.
By default, shows the last 50 lines from each container in an
interactive viewer.`,
	Args:         cobra.ExactArgs(1),
	RunE:         runLogs,
	SilenceUsage: true,
}

func init() {
	LogsCmd.Flags().IntVarP(&tailLines, "tail", "t", 50, "Number of lines to show from the end of logs")
	LogsCmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Print logs instead of opening the viewer")
}

func runLogs(cmd *cobra.Command, args []string) error {
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
	var containers []portainer.Container
	err = spinner.RunWithSpinner("Fetching container information...", func() error {
		instanceRes := repo.Get(id)
		if !instanceRes.IsOk() {
			return fmt.Errorf("%s", instanceRes.Error())
		}
		instance = instanceRes.Value()

		containersRes := repo.InstanceContainers(instance.Name)
		if !containersRes.IsOk() {
			return fmt.Errorf("%s", containersRes.Error())
		}
		containers = containersRes.Value()
		return nil
	})
	if err != nil {
		fmt.Println()
		fmt.Println(errorStyle.Render("✗ Failed to fetch container information"))
		fmt.Println()
		fmt.Println(errors.FormatError(err))
		fmt.Println()
		return nil
	}

	if len(containers) == 0 {
		fmt.Println()
		fmt.Printf("No containers found for instance '%s'\n", instance.Name)
		return nil
	}

	fmt.Println()
	return displayLogs(repo, containers)
}

func displayLogs(repo *stacks.Repository, containers []portainer.Container) error {
	var containerLogs []ContainerLogs

	for _, container := range containers {
		containerName := getPrimaryContainerName(container.Names)

		logsRes := repo.ContainerLogs(container.ID, tailLines)
		if !logsRes.IsOk() {
			// Keep the entry so the viewer preserves container order
			containerLogs = append(containerLogs, ContainerLogs{
				Name: containerName,
				Logs: fmt.Sprintf("Error fetching logs: %s", logsRes.Error()),
			})
			continue
		}

		containerLogs = append(containerLogs, ContainerLogs{
			Name: containerName,
			Logs: logsRes.Value(),
		})
	}

	if nonInteractive {
		return RunNonInteractiveViewer(containerLogs)
	}
	return RunViewer(containerLogs)
}

func getPrimaryContainerName(names []string) string {
	if len(names) == 0 {
		return "unknown"
	}

	name := strings.TrimPrefix(names[0], "/")
	if len(name) > 50 {
		name = name[:47] + "..."
	}
	return name
}
