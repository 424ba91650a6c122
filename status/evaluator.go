// Package status maps metric values to severity tiers against configured
// per-class thresholds. Evaluation is a pure function of the reading and the
// thresholds; tiers are recomputed every tick and carry no state.
package status

import (
	"io"
	"log/slog"

	"gitlab.com/tinyland/lab/rkmon/metrics"
)

// Tier represents the severity of one metric value.
type Tier int

const (
	TierNormal   Tier = iota // Below the warning threshold
	TierWarning              // Needs attention
	TierCritical             // Immediate attention needed
	// TierUnavailable marks a metric whose reading could not be obtained.
	// It is deliberately distinct from TierNormal so a broken sensor is
	// never displayed as healthy.
	TierUnavailable
)

// String returns the human-readable name for a Tier.
func (t Tier) String() string {
	switch t {
	case TierNormal:
		return "normal"
	case TierWarning:
		return "warning"
	case TierCritical:
		return "critical"
	case TierUnavailable:
		return "unavailable"
	default:
		return "unavailable"
	}
}

// tierSeverity returns the sort order for tiers. Higher is worse.
// Critical > Warning > Unavailable > Normal.
func tierSeverity(t Tier) int {
	switch t {
	case TierNormal:
		return 0
	case TierUnavailable:
		return 1
	case TierWarning:
		return 2
	case TierCritical:
		return 3
	default:
		return 1
	}
}

// WorstTier returns whichever Tier is more severe.
func WorstTier(a, b Tier) Tier {
	if tierSeverity(a) >= tierSeverity(b) {
		return a
	}
	return b
}

// Thresholds is a warning/critical pair for one metric class. Severity
// escalates as the value increases: value > Critical is critical, value >
// Warning is warning.
type Thresholds struct {
	Warning  float64
	Critical float64
}

// Normalized returns the pair with Warning <= Critical, swapping a reversed
// pair rather than letting it silently misclassify. The second return value
// reports whether a swap happened.
func (t Thresholds) Normalized() (Thresholds, bool) {
	if t.Warning > t.Critical {
		return Thresholds{Warning: t.Critical, Critical: t.Warning}, true
	}
	return t, false
}

// DefaultThresholds returns the per-class thresholds matching the RK3588
// platform defaults.
func DefaultThresholds() map[metrics.Class]Thresholds {
	return map[metrics.Class]Thresholds{
		metrics.ClassTemp:   {Warning: 60.0, Critical: 70.0},
		metrics.ClassCPU:    {Warning: 70.0, Critical: 90.0},
		metrics.ClassMemory: {Warning: 80.0, Critical: 95.0},
		metrics.ClassNPU:    {Warning: 70.0, Critical: 90.0},
	}
}

// Evaluator holds normalized per-class thresholds.
type Evaluator struct {
	thresholds map[metrics.Class]Thresholds
}

// NewEvaluator creates an Evaluator from per-class thresholds, normalizing
// reversed pairs and logging each swap once. Classes missing from the map
// fall back to the platform defaults. If logger is nil, a no-op logger is
// used.
func NewEvaluator(thresholds map[metrics.Class]Thresholds, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	normalized := DefaultThresholds()
	for class, t := range thresholds {
		fixed, swapped := t.Normalized()
		if swapped {
			logger.Warn("status: thresholds out of order, swapping",
				"class", string(class),
				"warning", fixed.Warning,
				"critical", fixed.Critical,
			)
		}
		normalized[class] = fixed
	}

	return &Evaluator{thresholds: normalized}
}

// Thresholds returns the normalized pair for a metric's class.
func (e *Evaluator) Thresholds(id metrics.ID) Thresholds {
	return e.thresholds[id.Class()]
}

// Evaluate maps a reading to its severity tier. The same reading and
// thresholds always yield the same tier.
func (e *Evaluator) Evaluate(r metrics.Reading) Tier {
	if !r.Available {
		return TierUnavailable
	}

	t := e.thresholds[r.Metric.Class()]
	switch {
	case r.Value > t.Critical:
		return TierCritical
	case r.Value > t.Warning:
		return TierWarning
	default:
		return TierNormal
	}
}
