package logs

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ContainerLogs holds the fetched log text of a single container
type ContainerLogs struct {
	Name string
	Logs string
}

// logViewer pages through the logs of an instance's containers, one
// container at a time.
type logViewer struct {
	viewport   viewport.Model
	containers []ContainerLogs
	currentIdx int
	ready      bool
	width      int

	titleStyle lipgloss.Style
	bodyStyle  lipgloss.Style
	helpStyle  lipgloss.Style
}

func newLogViewer(containers []ContainerLogs) *logViewer {
	return &logViewer{
		containers: containers,
		titleStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		bodyStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		helpStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
	}
}

func (m logViewer) Init() tea.Cmd {
	return nil
}

func (m logViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		// Header, help line and padding take a fixed share of the screen
		height := msg.Height - 8
		if height < 10 {
			height = 10
		}

		m.viewport = viewport.New(msg.Width, height)
		m.viewport.SetContent(m.currentContent())
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			m.viewport.LineDown(1)
		case "k", "up":
			m.viewport.LineUp(1)
		case "g":
			m.viewport.GotoTop()
		case "G":
			m.viewport.GotoBottom()
		case "pageup":
			m.viewport.PageUp()
		case "pagedown":
			m.viewport.PageDown()
		case "n", "right":
			if m.currentIdx < len(m.containers)-1 {
				m.currentIdx++
				m.viewport.SetContent(m.currentContent())
				m.viewport.GotoTop()
			}
		case "p", "left":
			if m.currentIdx > 0 {
				m.currentIdx--
				m.viewport.SetContent(m.currentContent())
				m.viewport.GotoTop()
			}
		}
	}

	if !m.ready {
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m logViewer) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := m.titleStyle.Render(fmt.Sprintf("Container: %s (%d/%d)",
		m.containers[m.currentIdx].Name, m.currentIdx+1, len(m.containers)))
	help := m.helpStyle.Render("↑/↓: scroll • n/p: next/prev container • g/G: top/bottom • q: quit")

	return title + "\n\n" + m.viewport.View() + "\n\n" + help
}

func (m logViewer) currentContent() string {
	if len(m.containers) == 0 {
		return "No logs available"
	}

	container := m.containers[m.currentIdx]
	if container.Logs == "" {
		return "(no logs available)"
	}

	width := m.width - 4

	var styled []string
	for _, line := range strings.Split(strings.TrimSpace(container.Logs), "\n") {
		if line == "" {
			continue
		}
		for _, wrapped := range wrapText(stripStreamHeader(line), width) {
			styled = append(styled, m.bodyStyle.Render(wrapped))
		}
	}
	return strings.Join(styled, "\n")
}

// stripStreamHeader drops the 8-byte multiplexed stream header Docker
// prepends to each log line, keeping the line intact when the header is
// not there (TTY-attached containers do not multiplex).
func stripStreamHeader(line string) string {
	if len(line) < 8 {
		return line
	}

	content := line[8:]
	// After the header the line starts with an RFC 3339 timestamp
	if len(content) > 26 && content[0] == '2' && content[4] == '-' && content[7] == '-' {
		return content
	}
	return line
}

// wrapText wraps text on word boundaries to fit the given width,
// force-breaking words longer than a full line.
func wrapText(text string, width int) []string {
	if width <= 0 || utf8.RuneCountInString(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range words {
		switch {
		case current == "":
			current = word
		case utf8.RuneCountInString(current+" "+word) > width:
			lines = append(lines, current)
			current = word
		default:
			current += " " + word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	if len(lines) == 1 && utf8.RuneCountInString(lines[0]) > width {
		runes := []rune(lines[0])
		lines = nil
		for i := 0; i < len(runes); i += width {
			end := i + width
			if end > len(runes) {
				end = len(runes)
			}
			lines = append(lines, string(runes[i:end]))
		}
	}

	return lines
}

// RunViewer starts the interactive viewer, falling back to plain output
// when no terminal is attached.
func RunViewer(containers []ContainerLogs) error {
	if !isInteractive() {
		return RunNonInteractiveViewer(containers)
	}

	p := tea.NewProgram(newLogViewer(containers), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run logs viewer: %w", err)
	}
	return nil
}

func isInteractive() bool {
	_, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	return err == nil
}

// RunNonInteractiveViewer prints each container's logs sequentially
func RunNonInteractiveViewer(containers []ContainerLogs) error {
	width := 80
	if columns := os.Getenv("COLUMNS"); columns != "" {
		var w int
		if n, err := fmt.Sscanf(columns, "%d", &w); err == nil && n == 1 && w > 0 {
			width = w
		}
	}

	for i, container := range containers {
		if i > 0 {
			fmt.Println()
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("=== %s ===", container.Name)))

		if container.Logs == "" {
			fmt.Println("(no logs available)")
			continue
		}

		for _, line := range strings.Split(strings.TrimSpace(container.Logs), "\n") {
			if line == "" {
				continue
			}
			for _, wrapped := range wrapText(stripStreamHeader(line), width-4) {
				fmt.Println(logStyle.Render(wrapped))
			}
		}
	}

	return nil
}
