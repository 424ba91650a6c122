package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/rkmon/status"
)

// Tier colors shared by the gauges and panels.
var (
	ColorNormal      = lipgloss.Color("#22C55E")
	ColorWarning     = lipgloss.Color("#EAB308")
	ColorCritical    = lipgloss.Color("#EF4444")
	ColorUnavailable = lipgloss.Color("#6B7280")
)

// TierColor returns the display color for a severity tier.
func TierColor(t status.Tier) lipgloss.Color {
	switch t {
	case status.TierCritical:
		return ColorCritical
	case status.TierWarning:
		return ColorWarning
	case status.TierUnavailable:
		return ColorUnavailable
	default:
		return ColorNormal
	}
}

// GaugeConfig controls the appearance and behavior of a horizontal bar gauge.
type GaugeConfig struct {
	// Width is the total character width of the gauge bar.
	Width int
	// Percent is the value from 0 to 100.
	Percent float64
	// Tier selects the bar color.
	Tier status.Tier
	// Label is optional text shown to the left of the bar.
	Label string
	// ShowPercent controls whether "XX%" is shown to the right.
	ShowPercent bool
	// FilledChar is the character for the filled portion (default: "█").
	FilledChar string
	// EmptyChar is the character for the empty portion (default: "░").
	EmptyChar string
}

// RenderGauge renders a horizontal bar gauge colored by severity tier.
// Format: [Label] [████████░░░░] [XX%]
func RenderGauge(cfg GaugeConfig) string {
	percent := math.Max(0, math.Min(100, cfg.Percent))

	filledChar := cfg.FilledChar
	if filledChar == "" {
		filledChar = "█"
	}
	emptyChar := cfg.EmptyChar
	if emptyChar == "" {
		emptyChar = "░"
	}

	width := cfg.Width
	if width <= 0 {
		width = 20
	}

	filledCount := int(math.Round(percent / 100.0 * float64(width)))
	if filledCount > width {
		filledCount = width
	}

	color := TierColor(cfg.Tier)
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(filledChar, filledCount)) +
		strings.Repeat(emptyChar, width-filledCount)

	var parts []string
	if cfg.Label != "" {
		parts = append(parts, cfg.Label)
	}
	parts = append(parts, bar)
	if cfg.ShowPercent {
		parts = append(parts, fmt.Sprintf("%3.0f%%", percent))
	}

	return strings.Join(parts, " ")
}
