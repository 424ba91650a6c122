package history

import (
	"math"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/rkmon/metrics"
)

func newTestStore(capacity int) *Store {
	return NewStore(map[metrics.ID]int{
		metrics.CPUUsage:      capacity,
		metrics.TempSoCCenter: capacity,
	})
}

// TestAppendCapacityBound verifies the window never exceeds capacity for any
// append sequence, and eviction is strict FIFO.
func TestAppendCapacityBound(t *testing.T) {
	s := newTestStore(3)
	base := time.Now()

	for i := 0; i < 10; i++ {
		s.Append(metrics.Available(metrics.CPUUsage, float64(i), base.Add(time.Duration(i)*time.Second)))
		if got := s.Len(metrics.CPUUsage); got > 3 {
			t.Fatalf("after %d appends len = %d, exceeds capacity 3", i+1, got)
		}
	}

	w := s.Window(metrics.CPUUsage)
	if len(w) != 3 {
		t.Fatalf("window len = %d, want 3", len(w))
	}
	// Oldest entries evicted first: 7, 8, 9 remain in chronological order.
	for i, want := range []float64{7, 8, 9} {
		if w[i].Value != want {
			t.Errorf("window[%d] = %f, want %f", i, w[i].Value, want)
		}
	}
}

// TestAppendUnavailableNoOp verifies Unavailable readings change nothing.
func TestAppendUnavailableNoOp(t *testing.T) {
	s := newTestStore(5)
	s.Append(metrics.Available(metrics.CPUUsage, 50, time.Now()))

	before := s.Stats(metrics.CPUUsage)
	s.Append(metrics.Unavailable(metrics.CPUUsage, time.Now()))

	if got := s.Len(metrics.CPUUsage); got != 1 {
		t.Errorf("len = %d after unavailable append, want 1", got)
	}
	after := s.Stats(metrics.CPUUsage)
	if before != after {
		t.Errorf("stats changed by unavailable append: %+v → %+v", before, after)
	}
}

// TestAppendUntrackedMetric verifies appends for unknown metrics are dropped.
func TestAppendUntrackedMetric(t *testing.T) {
	s := newTestStore(5)
	s.Append(metrics.Available(metrics.NPUCore0, 10, time.Now()))
	if w := s.Window(metrics.NPUCore0); w != nil {
		t.Errorf("window for untracked metric = %v, want nil", w)
	}
}

// TestStats verifies min/max/avg ordering and the empty-window zero value.
func TestStats(t *testing.T) {
	s := newTestStore(10)

	if st := s.Stats(metrics.CPUUsage); st.Count != 0 {
		t.Fatalf("empty stats count = %d, want 0", st.Count)
	}

	now := time.Now()
	for _, v := range []float64{42.0, 17.5, 88.2, 61.0} {
		s.Append(metrics.Available(metrics.CPUUsage, v, now))
	}

	st := s.Stats(metrics.CPUUsage)
	if st.Count != 4 {
		t.Errorf("count = %d, want 4", st.Count)
	}
	if st.Min != 17.5 || st.Max != 88.2 {
		t.Errorf("min/max = %f/%f, want 17.5/88.2", st.Min, st.Max)
	}
	wantAvg := (42.0 + 17.5 + 88.2 + 61.0) / 4
	if math.Abs(st.Avg-wantAvg) > 1e-9 {
		t.Errorf("avg = %f, want %f", st.Avg, wantAvg)
	}
	if !(st.Max >= st.Avg && st.Avg >= st.Min) {
		t.Errorf("ordering violated: max %f >= avg %f >= min %f", st.Max, st.Avg, st.Min)
	}
}

// TestWindowIsCopy verifies mutating a returned window does not affect the store.
func TestWindowIsCopy(t *testing.T) {
	s := newTestStore(5)
	s.Append(metrics.Available(metrics.TempSoCCenter, 45.0, time.Now()))

	w := s.Window(metrics.TempSoCCenter)
	w[0].Value = -999

	if got := s.Window(metrics.TempSoCCenter)[0].Value; got != 45.0 {
		t.Errorf("store mutated through window copy: %f", got)
	}
}

// TestPerMetricCapacities verifies independent capacities per metric.
func TestPerMetricCapacities(t *testing.T) {
	s := NewStore(map[metrics.ID]int{
		metrics.CPUUsage:      2,
		metrics.TempSoCCenter: 4,
	})

	now := time.Now()
	for i := 0; i < 6; i++ {
		s.Append(metrics.Available(metrics.CPUUsage, float64(i), now))
		s.Append(metrics.Available(metrics.TempSoCCenter, float64(i), now))
	}

	if got := s.Len(metrics.CPUUsage); got != 2 {
		t.Errorf("cpu len = %d, want 2", got)
	}
	if got := s.Len(metrics.TempSoCCenter); got != 4 {
		t.Errorf("temp len = %d, want 4", got)
	}
}

// TestNonPositiveCapacity verifies a degenerate capacity still retains the
// latest value.
func TestNonPositiveCapacity(t *testing.T) {
	s := NewStore(map[metrics.ID]int{metrics.CPUUsage: 0})
	s.Append(metrics.Available(metrics.CPUUsage, 1, time.Now()))
	s.Append(metrics.Available(metrics.CPUUsage, 2, time.Now()))

	w := s.Window(metrics.CPUUsage)
	if len(w) != 1 || w[0].Value != 2 {
		t.Errorf("window = %v, want single latest value 2", w)
	}
}
