package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/term"

	"gitlab.com/tinyland/lab/rkmon/cache"
	"gitlab.com/tinyland/lab/rkmon/config"
	"gitlab.com/tinyland/lab/rkmon/metrics"
	"gitlab.com/tinyland/lab/rkmon/snapshot"
)

// classLine is the per-class reduction of a status summary: the worst tier
// in the class and the value of its hottest (or busiest) metric.
type classLine struct {
	class metrics.Class
	label string
	value float64
	ok    bool
	tier  string
}

// statusClassOrder fixes the left-to-right order of the status line.
var statusClassOrder = []metrics.Class{
	metrics.ClassTemp,
	metrics.ClassCPU,
	metrics.ClassMemory,
	metrics.ClassNPU,
}

// runStatus prints a one-line summary from the status cache. It never runs
// the sampler; a missing cache entry prints nothing so shell prompts can
// embed the output unconditionally.
func runStatus(cfg *config.Config, width int) error {
	if cfg.Status.CacheDir == "" {
		return nil
	}

	store, err := cache.NewStore(cfg.Status.CacheDir, nil)
	if err != nil {
		return fmt.Errorf("open status cache: %w", err)
	}

	sum, err := cache.GetTyped[snapshot.StatusSummary](store, statusCacheKey)
	if err != nil || sum == nil {
		return nil
	}

	if width <= 0 {
		width = detectTerminalWidth()
	}

	line := renderStatusLine(sum, width)
	if line != "" {
		fmt.Println(line)
	}
	return nil
}

// renderStatusLine formats a summary to fit maxWidth, falling back through
// progressively more compact formats:
//
//  1. Full: overall tier plus one labeled segment per metric class
//  2. Condensed: overall tier plus bare values
//  3. Problems-only: overall tier plus the classes that are not normal
func renderStatusLine(sum *snapshot.StatusSummary, maxWidth int) string {
	lines := reduceClasses(sum)
	if len(lines) == 0 {
		return strings.ToUpper(sum.Overall)
	}

	full := formatFullStatus(sum.Overall, lines)
	if len([]rune(full)) <= maxWidth {
		return full
	}

	condensed := formatCondensedStatus(sum.Overall, lines)
	if len([]rune(condensed)) <= maxWidth {
		return condensed
	}

	return formatProblemsStatus(sum.Overall, lines)
}

// reduceClasses folds summary entries into one line per metric class,
// keeping the highest value per class and the worst tier seen. A class whose
// every entry is unavailable reduces to an unavailable line.
func reduceClasses(sum *snapshot.StatusSummary) []classLine {
	byClass := make(map[metrics.Class]*classLine)
	for _, e := range sum.Entries {
		c := e.Metric.Class()
		line, seen := byClass[c]
		if !seen {
			line = &classLine{class: c, tier: e.Tier}
			byClass[c] = line
		}
		if tierRank(e.Tier) > tierRank(line.tier) {
			line.tier = e.Tier
		}
		if e.Available && (!line.ok || e.Value > line.value) {
			line.ok = true
			line.value = e.Value
			line.label = e.Label
		}
	}

	var lines []classLine
	for _, c := range statusClassOrder {
		if line, seen := byClass[c]; seen {
			lines = append(lines, *line)
		}
	}
	return lines
}

// tierRank orders tiers by display urgency for per-class reduction.
func tierRank(tier string) int {
	switch tier {
	case "critical":
		return 3
	case "warning":
		return 2
	case "unavailable":
		return 1
	default:
		return 0
	}
}

func formatFullStatus(overall string, lines []classLine) string {
	parts := []string{strings.ToUpper(overall)}
	for _, l := range lines {
		parts = append(parts, l.label+" "+classValue(l))
	}
	return strings.Join(parts, " | ")
}

func formatCondensedStatus(overall string, lines []classLine) string {
	parts := []string{strings.ToUpper(overall)}
	for _, l := range lines {
		parts = append(parts, classValue(l))
	}
	return strings.Join(parts, " ")
}

func formatProblemsStatus(overall string, lines []classLine) string {
	parts := []string{strings.ToUpper(overall)}
	for _, l := range lines {
		if l.tier == "warning" || l.tier == "critical" {
			parts = append(parts, classValue(l))
		}
	}
	return strings.Join(parts, " ")
}

// classValue renders a class's representative value with its unit.
func classValue(l classLine) string {
	if !l.ok {
		return "?"
	}
	if l.class == metrics.ClassTemp {
		return fmt.Sprintf("%.0f°C", l.value)
	}
	return fmt.Sprintf("%.0f%%", l.value)
}

// detectTerminalWidth returns the terminal width, falling back to the
// COLUMNS environment variable and finally to 120 columns.
func detectTerminalWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil && w > 0 {
			return w
		}
	}
	return 120
}
