package ps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/WorldHealthOrganization/d2-portainer/cmd/shared"
	"github.com/WorldHealthOrganization/d2-portainer/internal/errors"
	"github.com/WorldHealthOrganization/d2-portainer/internal/portainer"
	"github.com/WorldHealthOrganization/d2-portainer/internal/spinner"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
)

var flagAll bool

var PsCmd = &cobra.Command{
	Use:   "ps",
	Short: "Show containers on the session endpoint",
	Long: `Display the containers running on the endpoint selected at login.
Shows container names, images, status and exposed ports.`,
	RunE:         runPs,
	SilenceUsage: true,
}

func init() {
	PsCmd.Flags().BoolVarP(&flagAll, "all", "a", false, "include stopped containers")
}

func runPs(cmd *cobra.Command, args []string) error {
	repo, cfg, err := shared.Repository()
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		return nil // Exit cleanly without showing usage
	}

	var containers []portainer.Container
	err = spinner.RunWithSpinnerAndSuccess("Fetching container information...", "✓ Container information loaded", func() error {
		res := repo.Containers(flagAll)
		if !res.IsOk() {
			return fmt.Errorf("%s", res.Error())
		}
		containers = res.Value()
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

	fmt.Println()
	if len(containers) == 0 {
		fmt.Printf("No containers found on endpoint '%s'.\n", cfg.EndpointName)
		if !flagAll {
			fmt.Println(infoStyle.Render("Stopped containers are hidden; use 'd2pctl ps --all' to include them."))
		}
		return nil
	}

	displayContainers(containers)

	return nil
}

func displayContainers(containers []portainer.Container) {
	fmt.Println(headerStyle.Render("Containers:"))
	fmt.Printf("%-14s %-25s %-25s %-20s %-15s\n",
		headerStyle.Render("ID"),
		headerStyle.Render("NAME"),
		headerStyle.Render("IMAGE"),
		headerStyle.Render("STATUS"),
		headerStyle.Render("PORTS"))
	fmt.Println(strings.Repeat("─", 100))

	for _, container := range containers {
		id := container.ID
		if len(id) > 12 {
			id = id[:12]
		}

		image := container.Image
		if len(image) > 25 {
			image = image[:22] + "..."
		}

		fmt.Printf("%-14s %-25s %-25s %-20s %-15s\n",
			id,
			getPrimaryContainerName(container.Names),
			image,
			getContainerStatus(container),
			formatExposedPorts(container.Ports))
	}
}

func getContainerStatus(container portainer.Container) string {
	status := container.Status
	if container.State == "running" {
		// Try to extract uptime from status if available
		if strings.Contains(status, "Up") {
			return status
		}
		return "Up"
	}
	return status
}

func getPrimaryContainerName(names []string) string {
	if len(names) == 0 {
		return "unknown"
	}

	// Get the first name and remove leading slash
	name := strings.TrimPrefix(names[0], "/")

	// Truncate if too long
	if len(name) > 25 {
		name = name[:22] + "..."
	}

	return name
}

func formatExposedPorts(ports []portainer.Port) string {
	if len(ports) == 0 {
		return ""
	}

	// Use a map to track unique ports
	uniquePorts := make(map[int]bool)
	for _, port := range ports {
		// Only show ports that are exposed to the host (have PublicPort)
		if port.PublicPort > 0 {
			uniquePorts[port.PublicPort] = true
		}
	}

	if len(uniquePorts) == 0 {
		return "none"
	}

	// Convert map keys to slice and sort them
	var exposedPorts []string
	for port := range uniquePorts {
		exposedPorts = append(exposedPorts, fmt.Sprintf("%d", port))
	}

	// Sort ports for consistent display
	sort.Strings(exposedPorts)

	result := strings.Join(exposedPorts, ", ")
	if len(result) > 15 {
		result = result[:12] + "..."
	}
	return result
}
