// Package history maintains bounded per-metric sample buffers for chart
// rendering. The store is written by the sampler only (single-writer
// discipline); the render side reads concurrently through copying accessors.
package history

import (
	"sync"
	"time"

	"gitlab.com/tinyland/lab/rkmon/metrics"
)

// Point is one stored observation.
type Point struct {
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats summarizes the current window of one metric. Count is zero when the
// window is empty, in which case Min/Max/Avg carry no meaning.
type Stats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

// Store holds a fixed-capacity FIFO buffer per metric. Buffers are created
// once at construction and live for the process lifetime, growing until
// capacity then cycling oldest-first.
type Store struct {
	mu         sync.RWMutex
	capacities map[metrics.ID]int
	buffers    map[metrics.ID][]Point
}

// NewStore creates a store tracking the given metrics with per-metric
// capacities. Metrics with a non-positive capacity are tracked with a
// capacity of 1 so the latest value is always retained.
func NewStore(capacities map[metrics.ID]int) *Store {
	caps := make(map[metrics.ID]int, len(capacities))
	buffers := make(map[metrics.ID][]Point, len(capacities))
	for id, c := range capacities {
		if c < 1 {
			c = 1
		}
		caps[id] = c
		buffers[id] = make([]Point, 0, c)
	}
	return &Store{capacities: caps, buffers: buffers}
}

// Append stores a reading in its metric's buffer, evicting the oldest entry
// at capacity. Unavailable readings are dropped so they cannot distort
// stats or chart scaling; so are readings for untracked metrics.
func (s *Store) Append(r metrics.Reading) {
	if !r.Available {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.buffers[r.Metric]
	if !ok {
		return
	}

	buf = append(buf, Point{Value: r.Value, Timestamp: r.Timestamp})
	if max := s.capacities[r.Metric]; len(buf) > max {
		buf = buf[len(buf)-max:]
	}
	s.buffers[r.Metric] = buf
}

// Window returns the metric's stored points, oldest to newest. The returned
// slice is a copy; callers may retain or mutate it freely.
func (s *Store) Window(id metrics.ID) []Point {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buf := s.buffers[id]
	if len(buf) == 0 {
		return nil
	}
	out := make([]Point, len(buf))
	copy(out, buf)
	return out
}

// Stats computes min, max, and average over the metric's current window.
func (s *Store) Stats(id metrics.ID) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buf := s.buffers[id]
	if len(buf) == 0 {
		return Stats{}
	}

	st := Stats{Min: buf[0].Value, Max: buf[0].Value, Count: len(buf)}
	var sum float64
	for _, p := range buf {
		if p.Value < st.Min {
			st.Min = p.Value
		}
		if p.Value > st.Max {
			st.Max = p.Value
		}
		sum += p.Value
	}
	st.Avg = sum / float64(len(buf))
	return st
}

// Len returns the number of stored points for a metric.
func (s *Store) Len(id metrics.ID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buffers[id])
}

// Capacity returns the configured capacity for a metric, or 0 if untracked.
func (s *Store) Capacity(id metrics.ID) int {
	return s.capacities[id]
}

// Metrics returns the tracked metric IDs in unspecified order.
func (s *Store) Metrics() []metrics.ID {
	ids := make([]metrics.ID, 0, len(s.buffers))
	for id := range s.buffers {
		ids = append(ids, id)
	}
	return ids
}
