package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/rkmon/snapshot"
)

// SnapshotProvider supplies the most recent sampling snapshot. The sampler
// engine satisfies this interface; tests substitute a stub.
type SnapshotProvider interface {
	Latest() *snapshot.Snapshot
}

// Options configures the dashboard presentation.
type Options struct {
	// Refresh is the interval between display updates. The display reads
	// whatever snapshot is current; it never blocks on sampling.
	Refresh time.Duration
	// GraphWidth is the character width of sparkline charts.
	GraphWidth int
	// ShowHistory controls whether sparkline charts are rendered.
	ShowHistory bool
}

// tickMsg signals that the display refresh interval has elapsed.
type tickMsg time.Time

// tickCmd returns a command that delivers a tickMsg after the refresh interval.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the top-level Bubbletea model for the rkmon dashboard.
type Model struct {
	provider SnapshotProvider
	opts     Options
	snap     *snapshot.Snapshot
	help     help.Model
	width    int
	height   int
	paused   bool
	showHelp bool
	ready    bool
}

// NewModel returns an initialized Model reading from the given provider.
func NewModel(provider SnapshotProvider, opts Options) Model {
	if opts.Refresh <= 0 {
		opts.Refresh = time.Second
	}
	if opts.GraphWidth <= 0 {
		opts.GraphWidth = 30
	}
	return Model{
		provider: provider,
		opts:     opts,
		help:     help.New(),
	}
}

// Init implements tea.Model. It starts the display refresh loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Refresh)
}

// Update implements tea.Model. It handles key presses, window resizes, and
// display refresh ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, keys.Refresh):
			m.snap = m.provider.Latest()
		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

	case tickMsg:
		if !m.paused {
			m.snap = m.provider.Latest()
		}
		return m, tickCmd(m.opts.Refresh)
	}

	return m, nil
}

// View implements tea.Model. It renders the header, metric panels, and footer.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	content := m.renderPanels()
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// renderHeader renders the title bar with the overall status badge, system
// uptime, and the current sampling tick.
func (m Model) renderHeader() string {
	title := styleTitle.Render("RK3588 Monitor")

	var badge, tick string
	if m.snap != nil {
		badge = renderTierBadge(m.snap.Overall())
		tick = styleMuted.Render(fmt.Sprintf("tick #%d @ %s",
			m.snap.Seq, m.snap.Taken.Format("15:04:05")))
	} else {
		badge = styleMuted.Render("waiting for first sample")
	}

	var paused string
	if m.paused {
		paused = stylePausedTag.Render("  PAUSED")
	}

	var up string
	if d := systemUptime(); d > 0 {
		up = styleMuted.Render("  up " + formatUptime(d))
	}

	line := title + "  " + badge + paused + up
	if tick != "" {
		line += "  " + tick
	}
	return styleHeader.Width(m.width).Render(line)
}

// renderFooter renders the key binding help.
func (m Model) renderFooter() string {
	if m.showHelp {
		return styleFooter.Width(m.width).Render(m.help.FullHelpView(keys.FullHelp()))
	}
	return styleFooter.Width(m.width).Render(m.help.ShortHelpView(keys.ShortHelp()))
}

// formatUptime renders a duration as a compact "3d 4h 12m" style string.
func formatUptime(d time.Duration) string {
	d = d.Round(time.Minute)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
