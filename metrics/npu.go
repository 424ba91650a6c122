package metrics

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// NPULoadPath is the rknpu debug interface. Reading it typically
	// requires elevated privileges.
	NPULoadPath = "/sys/kernel/debug/rknpu/load"

	// npuLoadMarker prefixes the per-core load list in the debug output.
	npuLoadMarker = "NPU load:"
)

// npuCoreMetrics maps the rknpu core index to its metric.
var npuCoreMetrics = []ID{NPUCore0, NPUCore1, NPUCore2}

// NPUSource reads per-core NPU utilization from the rknpu debug interface.
// The format is a single line such as
//
//	NPU load:  Core0: 12%, Core1: 0%, Core2: 5%,
//
// Parsing is tolerant of whitespace and trailing-comma drift; token
// extraction is by core name, not position. Permission failures and parse
// mismatches report all three cores Unavailable rather than failing the tick.
type NPUSource struct {
	logger *slog.Logger

	// readFile is overridable for testing.
	readFile func(path string) ([]byte, error)
}

// NewNPUSource creates an NPU load source.
// If logger is nil, a no-op logger is used.
func NewNPUSource(logger *slog.Logger) *NPUSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &NPUSource{
		logger:   logger,
		readFile: os.ReadFile,
	}
}

// Name returns the source's unique identifier.
func (s *NPUSource) Name() string {
	return "npu"
}

// Metrics returns the three per-core metrics this source produces.
func (s *NPUSource) Metrics() []ID {
	ids := make([]ID, len(npuCoreMetrics))
	copy(ids, npuCoreMetrics)
	return ids
}

// Read parses the rknpu load line into one reading per core.
func (s *NPUSource) Read(ctx context.Context) []Reading {
	now := time.Now()

	raw, err := s.readFile(NPULoadPath)
	if err != nil {
		// Missing debugfs entry or permission denied. Both are expected
		// on unprivileged runs.
		s.logger.Debug("npu: read load file", "error", err)
		return s.allUnavailable(now)
	}

	loads, ok := parseNPULoad(string(raw))
	if !ok {
		s.logger.Debug("npu: unrecognized load format",
			"raw", strings.TrimSpace(string(raw)),
		)
		return s.allUnavailable(now)
	}

	readings := make([]Reading, 0, len(npuCoreMetrics))
	for i, id := range npuCoreMetrics {
		if load, found := loads[i]; found {
			readings = append(readings, Available(id, load, now))
		} else {
			readings = append(readings, Unavailable(id, now))
		}
	}
	return readings
}

// allUnavailable returns an Unavailable reading for every core.
func (s *NPUSource) allUnavailable(now time.Time) []Reading {
	readings := make([]Reading, 0, len(npuCoreMetrics))
	for _, id := range npuCoreMetrics {
		readings = append(readings, Unavailable(id, now))
	}
	return readings
}

// parseNPULoad extracts per-core percentages from the rknpu load line.
// Returns a map of core index to load, and whether the marker was found.
func parseNPULoad(output string) (map[int]float64, bool) {
	idx := strings.Index(output, npuLoadMarker)
	if idx < 0 {
		return nil, false
	}

	loads := make(map[int]float64)
	rest := output[idx+len(npuLoadMarker):]

	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}

		name = strings.TrimSpace(name)
		if !strings.HasPrefix(name, "Core") {
			continue
		}
		core, err := strconv.Atoi(strings.TrimPrefix(name, "Core"))
		if err != nil || core < 0 {
			continue
		}

		value = strings.TrimSuffix(strings.TrimSpace(value), "%")
		load, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			continue
		}

		loads[core] = load
	}

	return loads, true
}

// Compile-time interface compliance check.
var _ Source = (*NPUSource)(nil)
