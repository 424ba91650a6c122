// Package metrics provides the metric source interface and the fixed metric
// registry for rkmon telemetry sampling. Each source reads one raw data
// origin exposed by the OS (a thermal zone file, /proc counters, the rknpu
// debug interface) and normalizes it into typed readings.
package metrics

import (
	"context"
	"strings"
	"time"
)

// ID is a stable identifier for a single metric (e.g. "temp.soc_center",
// "cpu.usage"). All samples and history buffers are keyed by ID, and every
// ID is drawn from the fixed set registered at startup.
type ID string

// The full metric set for the RK3588 platform.
const (
	TempSoCCenter  ID = "temp.soc_center"
	TempBigCore0   ID = "temp.bigcore0"
	TempBigCore1   ID = "temp.bigcore1"
	TempLittleCore ID = "temp.littlecore"
	TempCenter     ID = "temp.center"
	TempGPU        ID = "temp.gpu"
	TempNPU        ID = "temp.npu"
	CPUUsage       ID = "cpu.usage"
	MemUsedPercent ID = "mem.used_percent"
	NPUCore0       ID = "npu.core0"
	NPUCore1       ID = "npu.core1"
	NPUCore2       ID = "npu.core2"
)

// Class groups metrics that share thresholds and history sizing.
type Class string

// Metric classes. Thresholds and history capacities are configured per class.
const (
	ClassTemp   Class = "temp"
	ClassCPU    Class = "cpu"
	ClassMemory Class = "memory"
	ClassNPU    Class = "npu"
)

// Class returns the metric's class, derived from the ID prefix.
func (id ID) Class() Class {
	switch {
	case strings.HasPrefix(string(id), "temp."):
		return ClassTemp
	case strings.HasPrefix(string(id), "cpu."):
		return ClassCPU
	case strings.HasPrefix(string(id), "mem."):
		return ClassMemory
	case strings.HasPrefix(string(id), "npu."):
		return ClassNPU
	default:
		return ClassCPU
	}
}

// labels maps each metric to its display label. Thermal zone labels follow
// the RK3588 sensor layout.
var labels = map[ID]string{
	TempSoCCenter:  "SoC center",
	TempBigCore0:   "A76 0/1 (cpu4/5)",
	TempBigCore1:   "A76 2/3 (cpu6/7)",
	TempLittleCore: "A55 (cpu0-3)",
	TempCenter:     "PD center",
	TempGPU:        "GPU",
	TempNPU:        "NPU",
	CPUUsage:       "CPU usage",
	MemUsedPercent: "Memory used",
	NPUCore0:       "NPU core 0",
	NPUCore1:       "NPU core 1",
	NPUCore2:       "NPU core 2",
}

// Label returns the human-readable label for a metric. Falls back to the
// raw ID for metrics without a registered label.
func (id ID) Label() string {
	if l, ok := labels[id]; ok {
		return l
	}
	return string(id)
}

// Reading is one observation of one metric. A Reading is either available
// with a numeric value, or Unavailable: the source file was missing,
// unreadable, or failed to parse this tick. Unavailable is a valid terminal
// state for a tick, not an error.
type Reading struct {
	Metric    ID        `json:"metric"`
	Value     float64   `json:"value"`
	Available bool      `json:"available"`
	Timestamp time.Time `json:"timestamp"`
}

// Available constructs a reading carrying a valid value.
func Available(id ID, value float64, ts time.Time) Reading {
	return Reading{Metric: id, Value: value, Available: true, Timestamp: ts}
}

// Unavailable constructs a reading for a metric that could not be observed
// this tick.
func Unavailable(id ID, ts time.Time) Reading {
	return Reading{Metric: id, Available: false, Timestamp: ts}
}

// Source is the interface all metric sources implement. A source owns one
// raw data origin and produces one reading per metric it declares, every
// tick. Read must never fail: any underlying problem (missing file,
// permission denied, malformed content) maps to Unavailable readings for
// the affected metrics only.
type Source interface {
	// Name returns the source's unique identifier (e.g. "thermal_zone0",
	// "cpu", "npu"). Names must be unique within a Registry.
	Name() string

	// Metrics returns the IDs this source produces. The set is fixed for
	// the source's lifetime; Read returns exactly one reading per entry.
	Metrics() []ID

	// Read observes the source's metrics. The context should be respected
	// for cancellation, though sources are also externally bounded by the
	// sampler's per-source timeout.
	Read(ctx context.Context) []Reading
}

// Registry holds the fixed set of sources constructed at startup.
type Registry struct {
	sources []Source
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{sources: make([]Source, 0)}
}

// Register adds a source to the registry. A source with a duplicate name
// replaces the existing entry.
func (r *Registry) Register(s Source) {
	for i, existing := range r.sources {
		if existing.Name() == s.Name() {
			r.sources[i] = s
			return
		}
	}
	r.sources = append(r.sources, s)
}

// All returns all registered sources.
func (r *Registry) All() []Source {
	result := make([]Source, len(r.sources))
	copy(result, r.sources)
	return result
}

// Metrics returns the union of all registered sources' metric IDs, in
// registration order.
func (r *Registry) Metrics() []ID {
	var ids []ID
	seen := make(map[ID]bool)
	for _, s := range r.sources {
		for _, id := range s.Metrics() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
