package snapshot

import (
	"testing"
	"time"

	"gitlab.com/tinyland/lab/rkmon/history"
	"gitlab.com/tinyland/lab/rkmon/metrics"
	"gitlab.com/tinyland/lab/rkmon/status"
)

func newTestAssembler() (*Assembler, *history.Store) {
	store := history.NewStore(map[metrics.ID]int{
		metrics.CPUUsage: 10,
		metrics.TempGPU:  10,
	})
	eval := status.NewEvaluator(nil, nil)
	return NewAssembler(store, eval), store
}

// TestBuildCompleteSet verifies every reading appears in the snapshot with a
// tier, including Unavailable ones.
func TestBuildCompleteSet(t *testing.T) {
	a, store := newTestAssembler()
	now := time.Now()

	store.Append(metrics.Available(metrics.CPUUsage, 50, now))
	readings := map[metrics.ID]metrics.Reading{
		metrics.CPUUsage: metrics.Available(metrics.CPUUsage, 50, now),
		metrics.TempGPU:  metrics.Unavailable(metrics.TempGPU, now),
	}

	snap := a.Build(7, now, readings)

	if snap.Seq != 7 {
		t.Errorf("seq = %d, want 7", snap.Seq)
	}
	if len(snap.Readings) != 2 || len(snap.Tiers) != 2 {
		t.Fatalf("incomplete snapshot: %d readings, %d tiers", len(snap.Readings), len(snap.Tiers))
	}
	if snap.Tiers[metrics.TempGPU] != status.TierUnavailable {
		t.Errorf("unavailable metric tier = %s, want %s",
			snap.Tiers[metrics.TempGPU], status.TierUnavailable)
	}
	if snap.Tiers[metrics.CPUUsage] != status.TierNormal {
		t.Errorf("cpu tier = %s, want %s", snap.Tiers[metrics.CPUUsage], status.TierNormal)
	}
	if got := len(snap.History[metrics.CPUUsage]); got != 1 {
		t.Errorf("cpu history len = %d, want 1", got)
	}
}

// TestSnapshotIsolation verifies mutating a built snapshot's history does
// not affect the store.
func TestSnapshotIsolation(t *testing.T) {
	a, store := newTestAssembler()
	now := time.Now()
	store.Append(metrics.Available(metrics.CPUUsage, 42, now))

	snap := a.Build(1, now, map[metrics.ID]metrics.Reading{
		metrics.CPUUsage: metrics.Available(metrics.CPUUsage, 42, now),
	})
	snap.History[metrics.CPUUsage][0].Value = -1

	if got := store.Window(metrics.CPUUsage)[0].Value; got != 42 {
		t.Errorf("store mutated through snapshot: %f", got)
	}
}

// TestOverall verifies the worst-tier aggregation.
func TestOverall(t *testing.T) {
	a, _ := newTestAssembler()
	now := time.Now()

	snap := a.Build(1, now, map[metrics.ID]metrics.Reading{
		metrics.CPUUsage: metrics.Available(metrics.CPUUsage, 95, now), // critical
		metrics.TempGPU:  metrics.Available(metrics.TempGPU, 40, now),  // normal
	})
	if got := snap.Overall(); got != status.TierCritical {
		t.Errorf("overall = %s, want %s", got, status.TierCritical)
	}

	empty := &Snapshot{}
	if got := empty.Overall(); got != status.TierUnavailable {
		t.Errorf("empty overall = %s, want %s", got, status.TierUnavailable)
	}
}

// TestSummary verifies the cacheable reduction is sorted and history-free.
func TestSummary(t *testing.T) {
	a, _ := newTestAssembler()
	now := time.Now()

	snap := a.Build(3, now, map[metrics.ID]metrics.Reading{
		metrics.TempGPU:  metrics.Available(metrics.TempGPU, 55, now),
		metrics.CPUUsage: metrics.Unavailable(metrics.CPUUsage, now),
	})

	sum := snap.Summary()
	if sum.Seq != 3 {
		t.Errorf("summary seq = %d, want 3", sum.Seq)
	}
	if len(sum.Entries) != 2 {
		t.Fatalf("summary has %d entries, want 2", len(sum.Entries))
	}
	// Sorted by metric ID: cpu.usage before temp.gpu.
	if sum.Entries[0].Metric != metrics.CPUUsage {
		t.Errorf("first entry = %s, want %s", sum.Entries[0].Metric, metrics.CPUUsage)
	}
	if sum.Entries[0].Tier != "unavailable" {
		t.Errorf("cpu tier = %q, want %q", sum.Entries[0].Tier, "unavailable")
	}
	if sum.Overall != "unavailable" {
		t.Errorf("overall = %q, want %q", sum.Overall, "unavailable")
	}
}
