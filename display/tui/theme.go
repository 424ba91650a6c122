package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for the monitoring dashboard theme.
const (
	colorPrimary = lipgloss.Color("#06B6D4") // Cyan
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

// Styles used throughout the TUI.
var (
	styleHeader   lipgloss.Style
	styleFooter   lipgloss.Style
	styleContent  lipgloss.Style
	styleTitle    lipgloss.Style
	stylePanel    lipgloss.Style
	styleMuted    lipgloss.Style
	stylePausedTag lipgloss.Style
)

func init() {
	styleHeader = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(colorMuted).
		MarginBottom(1)

	styleFooter = lipgloss.NewStyle().
		Foreground(colorMuted).
		MarginTop(1)

	styleContent = lipgloss.NewStyle().
		Padding(0, 2)

	styleTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary)

	stylePanel = lipgloss.NewStyle().
		MarginBottom(1)

	styleMuted = lipgloss.NewStyle().
		Foreground(colorMuted)

	stylePausedTag = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#EAB308"))
}
