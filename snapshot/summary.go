package snapshot

import (
	"sort"
	"time"

	"gitlab.com/tinyland/lab/rkmon/metrics"
)

// SummaryEntry is one metric's current value and tier, without history.
type SummaryEntry struct {
	Metric    metrics.ID `json:"metric"`
	Label     string     `json:"label"`
	Value     float64    `json:"value"`
	Available bool       `json:"available"`
	Tier      string     `json:"tier"`
}

// StatusSummary is the compact form of a Snapshot written to the status
// cache for prompt-line consumers. It carries current values and tiers only;
// history stays in-process.
type StatusSummary struct {
	Seq     uint64         `json:"seq"`
	Taken   time.Time      `json:"taken"`
	Overall string         `json:"overall"`
	Entries []SummaryEntry `json:"entries"`
}

// Summary reduces the snapshot to its cacheable form. Entries are sorted by
// metric ID for stable output.
func (s *Snapshot) Summary() *StatusSummary {
	sum := &StatusSummary{
		Seq:     s.Seq,
		Taken:   s.Taken,
		Overall: s.Overall().String(),
		Entries: make([]SummaryEntry, 0, len(s.Readings)),
	}

	for id, r := range s.Readings {
		sum.Entries = append(sum.Entries, SummaryEntry{
			Metric:    id,
			Label:     id.Label(),
			Value:     r.Value,
			Available: r.Available,
			Tier:      s.Tiers[id].String(),
		})
	}

	sort.Slice(sum.Entries, func(i, j int) bool {
		return sum.Entries[i].Metric < sum.Entries[j].Metric
	})

	return sum
}
