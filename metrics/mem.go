package metrics

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// MemSource reads memory usage from /proc/meminfo. Usage is a point-in-time
// measurement, (MemTotal - MemAvailable) / MemTotal, with no delta required.
type MemSource struct {
	logger *slog.Logger

	// openProcMeminfo is overridable for testing.
	openProcMeminfo func() (io.ReadCloser, error)
}

// NewMemSource creates a memory usage source.
// If logger is nil, a no-op logger is used.
func NewMemSource(logger *slog.Logger) *MemSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &MemSource{
		logger: logger,
		openProcMeminfo: func() (io.ReadCloser, error) {
			return os.Open("/proc/meminfo")
		},
	}
}

// Name returns the source's unique identifier.
func (s *MemSource) Name() string {
	return "mem"
}

// Metrics returns the single metric this source produces.
func (s *MemSource) Metrics() []ID {
	return []ID{MemUsedPercent}
}

// Read computes the used-memory percentage from MemTotal and MemAvailable.
func (s *MemSource) Read(ctx context.Context) []Reading {
	now := time.Now()

	f, err := s.openProcMeminfo()
	if err != nil {
		s.logger.Debug("mem: open /proc/meminfo", "error", err)
		return []Reading{Unavailable(MemUsedPercent, now)}
	}
	defer f.Close()

	var memTotal, memAvailable uint64
	var foundTotal, foundAvailable bool

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "MemTotal:"):
			val, err := parseMemInfoLine(line)
			if err != nil {
				s.logger.Debug("mem: parse MemTotal", "error", err)
				return []Reading{Unavailable(MemUsedPercent, now)}
			}
			memTotal = val
			foundTotal = true
		case strings.HasPrefix(line, "MemAvailable:"):
			val, err := parseMemInfoLine(line)
			if err != nil {
				s.logger.Debug("mem: parse MemAvailable", "error", err)
				return []Reading{Unavailable(MemUsedPercent, now)}
			}
			memAvailable = val
			foundAvailable = true
		}

		if foundTotal && foundAvailable {
			break
		}
	}

	if !foundTotal || !foundAvailable || memTotal == 0 {
		s.logger.Debug("mem: incomplete /proc/meminfo",
			"found_total", foundTotal,
			"found_available", foundAvailable,
		)
		return []Reading{Unavailable(MemUsedPercent, now)}
	}

	used := memTotal - memAvailable
	pct := float64(used) / float64(memTotal) * 100.0
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	return []Reading{Available(MemUsedPercent, pct, now)}
}

// parseMemInfoLine extracts the numeric kB value from a /proc/meminfo line.
// Format: "MemTotal:       16384000 kB"
func parseMemInfoLine(line string) (uint64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, fmt.Errorf("too few fields: %q", line)
	}
	return strconv.ParseUint(fields[1], 10, 64)
}

// Compile-time interface compliance check.
var _ Source = (*MemSource)(nil)
