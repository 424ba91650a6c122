package status

import (
	"testing"
	"time"

	"gitlab.com/tinyland/lab/rkmon/metrics"
)

// TestEvaluate verifies tier boundaries against per-class thresholds.
func TestEvaluate(t *testing.T) {
	e := NewEvaluator(map[metrics.Class]Thresholds{
		metrics.ClassTemp: {Warning: 60, Critical: 70},
		metrics.ClassCPU:  {Warning: 70, Critical: 90},
	}, nil)

	now := time.Now()
	tests := []struct {
		name    string
		reading metrics.Reading
		want    Tier
	}{
		{"temp below warning", metrics.Available(metrics.TempGPU, 45, now), TierNormal},
		{"temp at warning boundary", metrics.Available(metrics.TempGPU, 60, now), TierNormal},
		{"temp above warning", metrics.Available(metrics.TempGPU, 60.1, now), TierWarning},
		{"temp at critical boundary", metrics.Available(metrics.TempGPU, 70, now), TierWarning},
		{"temp above critical", metrics.Available(metrics.TempGPU, 70.1, now), TierCritical},
		{"cpu uses its own thresholds", metrics.Available(metrics.CPUUsage, 75, now), TierWarning},
		{"unavailable is never normal", metrics.Unavailable(metrics.TempGPU, now), TierUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Evaluate(tt.reading); got != tt.want {
				t.Errorf("Evaluate() = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestEvaluateDeterministic verifies evaluation is pure: repeated calls with
// the same reading yield the same tier.
func TestEvaluateDeterministic(t *testing.T) {
	e := NewEvaluator(nil, nil)
	r := metrics.Available(metrics.NPUCore1, 85, time.Now())

	first := e.Evaluate(r)
	for i := 0; i < 100; i++ {
		if got := e.Evaluate(r); got != first {
			t.Fatalf("evaluation not deterministic: %s then %s", first, got)
		}
	}
}

// TestNormalized verifies reversed threshold pairs are swapped.
func TestNormalized(t *testing.T) {
	fixed, swapped := Thresholds{Warning: 90, Critical: 70}.Normalized()
	if !swapped {
		t.Fatalf("reversed pair not reported as swapped")
	}
	if fixed.Warning != 70 || fixed.Critical != 90 {
		t.Errorf("normalized = %+v, want warning 70 critical 90", fixed)
	}

	same, swapped := Thresholds{Warning: 70, Critical: 90}.Normalized()
	if swapped || same.Warning != 70 {
		t.Errorf("in-order pair changed: %+v swapped=%v", same, swapped)
	}
}

// TestNewEvaluatorNormalizes verifies reversed config pairs are repaired at
// construction instead of misclassifying.
func TestNewEvaluatorNormalizes(t *testing.T) {
	e := NewEvaluator(map[metrics.Class]Thresholds{
		metrics.ClassNPU: {Warning: 90, Critical: 70},
	}, nil)

	th := e.Thresholds(metrics.NPUCore0)
	if th.Warning != 70 || th.Critical != 90 {
		t.Errorf("thresholds = %+v, want swapped to 70/90", th)
	}

	// 80 sits between the normalized pair: warning, not critical.
	if got := e.Evaluate(metrics.Available(metrics.NPUCore0, 80, time.Now())); got != TierWarning {
		t.Errorf("Evaluate(80) = %s, want %s", got, TierWarning)
	}
}

// TestWorstTier verifies severity ordering.
func TestWorstTier(t *testing.T) {
	tests := []struct {
		a, b, want Tier
	}{
		{TierNormal, TierWarning, TierWarning},
		{TierWarning, TierCritical, TierCritical},
		{TierNormal, TierUnavailable, TierUnavailable},
		{TierUnavailable, TierWarning, TierWarning},
		{TierNormal, TierNormal, TierNormal},
	}
	for _, tt := range tests {
		if got := WorstTier(tt.a, tt.b); got != tt.want {
			t.Errorf("WorstTier(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}
