// Package snapshot assembles the per-tick view handed to rendering
// consumers. A Snapshot is immutable once built: every tick produces a fresh
// one with copied history windows, so a concurrently rendering reader can
// never observe a torn or half-assembled state.
package snapshot

import (
	"time"

	"gitlab.com/tinyland/lab/rkmon/history"
	"gitlab.com/tinyland/lab/rkmon/metrics"
	"gitlab.com/tinyland/lab/rkmon/status"
)

// Snapshot is the point-in-time aggregate of one completed tick: the full
// sample set (including Unavailable readings), history windows and summary
// stats for chart scaling, and the severity tier per metric. Seq equals the
// sampler's tick counter, letting consumers detect skipped ticks.
type Snapshot struct {
	Seq      uint64                        `json:"seq"`
	Taken    time.Time                     `json:"taken"`
	Readings map[metrics.ID]metrics.Reading `json:"readings"`
	History  map[metrics.ID][]history.Point `json:"history"`
	Stats    map[metrics.ID]history.Stats   `json:"stats"`
	Tiers    map[metrics.ID]status.Tier     `json:"tiers"`
}

// Reading returns the tick's reading for a metric.
func (s *Snapshot) Reading(id metrics.ID) (metrics.Reading, bool) {
	r, ok := s.Readings[id]
	return r, ok
}

// Overall returns the worst tier across all metrics in the snapshot.
// An empty snapshot is TierUnavailable.
func (s *Snapshot) Overall() status.Tier {
	if len(s.Tiers) == 0 {
		return status.TierUnavailable
	}
	overall := status.TierNormal
	for _, t := range s.Tiers {
		overall = status.WorstTier(overall, t)
	}
	return overall
}

// Assembler combines a tick's sample set with history views and severity
// tiers into one Snapshot.
type Assembler struct {
	store *history.Store
	eval  *status.Evaluator
}

// NewAssembler creates an Assembler reading history from store and tiers
// from eval.
func NewAssembler(store *history.Store, eval *status.Evaluator) *Assembler {
	return &Assembler{store: store, eval: eval}
}

// Build assembles a Snapshot for one tick. The readings map is copied, and
// history windows come from Store.Window which already returns copies, so
// the result shares no mutable state with the sampler.
func (a *Assembler) Build(seq uint64, taken time.Time, readings map[metrics.ID]metrics.Reading) *Snapshot {
	snap := &Snapshot{
		Seq:      seq,
		Taken:    taken,
		Readings: make(map[metrics.ID]metrics.Reading, len(readings)),
		History:  make(map[metrics.ID][]history.Point, len(readings)),
		Stats:    make(map[metrics.ID]history.Stats, len(readings)),
		Tiers:    make(map[metrics.ID]status.Tier, len(readings)),
	}

	for id, r := range readings {
		snap.Readings[id] = r
		snap.History[id] = a.store.Window(id)
		snap.Stats[id] = a.store.Stats(id)
		snap.Tiers[id] = a.eval.Evaluate(r)
	}

	return snap
}
