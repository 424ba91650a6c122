package tui

import (
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/rkmon/history"
	"gitlab.com/tinyland/lab/rkmon/status"
)

func TestRenderTierBadge(t *testing.T) {
	if got := renderTierBadge(status.TierCritical); !strings.Contains(got, "CRITICAL") {
		t.Errorf("expected CRITICAL badge, got %q", got)
	}
	if got := renderTierBadge(status.TierNormal); !strings.Contains(got, "NORMAL") {
		t.Errorf("expected NORMAL badge, got %q", got)
	}
}

func TestPadLabel(t *testing.T) {
	if got := padLabel("GPU"); len([]rune(got)) != labelWidth {
		t.Errorf("expected padded width %d, got %d", labelWidth, len([]rune(got)))
	}
	long := strings.Repeat("x", labelWidth+3)
	if got := padLabel(long); got != long {
		t.Error("expected over-width label to pass through unchanged")
	}
}

func TestHistoryValues(t *testing.T) {
	if historyValues(nil) != nil {
		t.Error("expected nil for empty window")
	}
	got := historyValues([]history.Point{{Value: 1.5}, {Value: 2.5}})
	if len(got) != 2 || got[0] != 1.5 || got[1] != 2.5 {
		t.Errorf("unexpected values: %v", got)
	}
}
