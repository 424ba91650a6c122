package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/rkmon/display/widgets"
	"gitlab.com/tinyland/lab/rkmon/history"
	"gitlab.com/tinyland/lab/rkmon/metrics"
	"gitlab.com/tinyland/lab/rkmon/status"
)

// Panel row ordering. Metrics absent from the snapshot (disabled sensors)
// are skipped, so each panel shrinks to what is actually sampled.
var (
	tempOrder = []metrics.ID{
		metrics.TempSoCCenter,
		metrics.TempBigCore0,
		metrics.TempBigCore1,
		metrics.TempLittleCore,
		metrics.TempCenter,
		metrics.TempGPU,
		metrics.TempNPU,
	}
	usageOrder = []metrics.ID{
		metrics.CPUUsage,
		metrics.MemUsedPercent,
	}
	npuOrder = []metrics.ID{
		metrics.NPUCore0,
		metrics.NPUCore1,
		metrics.NPUCore2,
	}
)

// labelWidth pads metric labels so values line up within a panel.
const labelWidth = 17

// renderPanels renders all metric panels for the current snapshot.
func (m Model) renderPanels() string {
	if m.snap == nil {
		return styleContent.Render(styleMuted.Render("No data yet."))
	}

	var panels []string
	if p := m.renderTempPanel(); p != "" {
		panels = append(panels, p)
	}
	if p := m.renderUsagePanel(); p != "" {
		panels = append(panels, p)
	}
	if p := m.renderNPUPanel(); p != "" {
		panels = append(panels, p)
	}

	return styleContent.Render(lipgloss.JoinVertical(lipgloss.Left, panels...))
}

// renderTempPanel renders one row per thermal zone: label, current value,
// history sparkline, and min/max over the window.
func (m Model) renderTempPanel() string {
	var rows []string
	for _, id := range tempOrder {
		r, ok := m.snap.Readings[id]
		if !ok {
			continue
		}
		tier := m.snap.Tiers[id]

		value := styleMuted.Render("   n/a ")
		if r.Available {
			value = lipgloss.NewStyle().
				Foreground(widgets.TierColor(tier)).
				Render(fmt.Sprintf("%5.1f°C", r.Value))
		}

		row := padLabel(id.Label()) + " " + value
		if m.opts.ShowHistory {
			if spark := m.renderTempSparkline(id, tier); spark != "" {
				row += "  " + spark
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return ""
	}
	return m.panel("Temperatures", rows)
}

// renderUsagePanel renders CPU and memory utilization gauges.
func (m Model) renderUsagePanel() string {
	rows := m.gaugeRows(usageOrder)
	if len(rows) == 0 {
		return ""
	}
	return m.panel("CPU / Memory", rows)
}

// renderNPUPanel renders one gauge per NPU core.
func (m Model) renderNPUPanel() string {
	rows := m.gaugeRows(npuOrder)
	if len(rows) == 0 {
		return ""
	}
	return m.panel("NPU", rows)
}

// gaugeRows renders a percent gauge row for each metric in order that is
// present in the snapshot, with an optional history sparkline.
func (m Model) gaugeRows(order []metrics.ID) []string {
	var rows []string
	for _, id := range order {
		r, ok := m.snap.Readings[id]
		if !ok {
			continue
		}
		tier := m.snap.Tiers[id]

		var row string
		if r.Available {
			row = widgets.RenderGauge(widgets.GaugeConfig{
				Width:       20,
				Percent:     r.Value,
				Tier:        tier,
				Label:       padLabel(id.Label()),
				ShowPercent: true,
			})
		} else {
			row = padLabel(id.Label()) + " " + styleMuted.Render("n/a")
		}

		if m.opts.ShowHistory {
			if spark := m.renderPercentSparkline(id, tier); spark != "" {
				row += "  " + spark
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// renderTempSparkline renders the thermal history for a metric, auto-scaled
// to the window, annotated with window min/max.
func (m Model) renderTempSparkline(id metrics.ID, tier status.Tier) string {
	vals := historyValues(m.snap.History[id])
	if len(vals) == 0 {
		return ""
	}
	spark := widgets.RenderSparkline(widgets.SparklineConfig{
		Data:  vals,
		Width: m.opts.GraphWidth,
		Color: widgets.TierColor(tier),
	})
	st := m.snap.Stats[id]
	return spark + styleMuted.Render(fmt.Sprintf("  %.0f-%.0f°C", st.Min, st.Max))
}

// renderPercentSparkline renders utilization history on a fixed 0-100 scale
// so bar heights are comparable across ticks.
func (m Model) renderPercentSparkline(id metrics.ID, tier status.Tier) string {
	vals := historyValues(m.snap.History[id])
	if len(vals) == 0 {
		return ""
	}
	return widgets.RenderSparkline(widgets.SparklineConfig{
		Data:  vals,
		Width: m.opts.GraphWidth,
		Min:   0,
		Max:   100,
		Color: widgets.TierColor(tier),
	})
}

// panel renders a titled section with one row per line.
func (m Model) panel(title string, rows []string) string {
	return stylePanel.Render(
		styleTitle.Render(title) + "\n" + strings.Join(rows, "\n"))
}

// renderTierBadge renders a colored uppercase severity badge.
func renderTierBadge(t status.Tier) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(widgets.TierColor(t)).
		Render(strings.ToUpper(t.String()))
}

// padLabel right-pads a metric label to the shared column width.
func padLabel(s string) string {
	if len([]rune(s)) >= labelWidth {
		return s
	}
	return s + strings.Repeat(" ", labelWidth-len([]rune(s)))
}

// historyValues extracts the value series from a history window.
func historyValues(points []history.Point) []float64 {
	if len(points) == 0 {
		return nil
	}
	vals := make([]float64, len(points))
	for i, p := range points {
		vals[i] = p.Value
	}
	return vals
}
