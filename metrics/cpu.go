package metrics

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// CPUSource computes aggregate CPU utilization from /proc/stat. Usage is the
// busy delta over the total delta between two consecutive reads of the
// cumulative tick counters. The very first read has no prior counters and
// reports Unavailable for exactly one tick while it seeds them.
type CPUSource struct {
	logger *slog.Logger

	// mu guards the counter state. A read abandoned on timeout may still
	// be finishing when the next tick's read starts on the same source.
	mu        sync.Mutex
	prevBusy  uint64
	prevTotal uint64
	seeded    bool

	// openProcStat is overridable for testing.
	openProcStat func() (io.ReadCloser, error)
}

// NewCPUSource creates a CPU utilization source.
// If logger is nil, a no-op logger is used.
func NewCPUSource(logger *slog.Logger) *CPUSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CPUSource{
		logger: logger,
		openProcStat: func() (io.ReadCloser, error) {
			return os.Open("/proc/stat")
		},
	}
}

// Name returns the source's unique identifier.
func (s *CPUSource) Name() string {
	return "cpu"
}

// Metrics returns the single metric this source produces.
func (s *CPUSource) Metrics() []ID {
	return []ID{CPUUsage}
}

// Read computes CPU usage from the aggregate "cpu" line of /proc/stat.
func (s *CPUSource) Read(ctx context.Context) []Reading {
	now := time.Now()

	busy, total, ok := s.readCounters()
	if !ok {
		return []Reading{Unavailable(CPUUsage, now)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seeded {
		s.prevBusy = busy
		s.prevTotal = total
		s.seeded = true
		return []Reading{Unavailable(CPUUsage, now)}
	}

	deltaBusy := busy - s.prevBusy
	deltaTotal := total - s.prevTotal
	s.prevBusy = busy
	s.prevTotal = total

	// Counters did not advance (a suspend/resume stall or a duplicate
	// read within one jiffy). No meaningful usage can be derived.
	if deltaTotal == 0 {
		return []Reading{Unavailable(CPUUsage, now)}
	}

	pct := float64(deltaBusy) / float64(deltaTotal) * 100.0
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	return []Reading{Available(CPUUsage, pct, now)}
}

// readCounters parses the aggregate cpu line into cumulative busy and total
// tick counts. The idle field (index 4) counts as idle; everything else on
// the line counts as busy.
func (s *CPUSource) readCounters() (busy, total uint64, ok bool) {
	f, err := s.openProcStat()
	if err != nil {
		s.logger.Debug("cpu: open /proc/stat", "error", err)
		return 0, 0, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			s.logger.Debug("cpu: /proc/stat cpu line too short", "line", line)
			return 0, 0, false
		}

		var idle uint64
		for i := 1; i < len(fields); i++ {
			val, err := strconv.ParseUint(fields[i], 10, 64)
			if err != nil {
				s.logger.Debug("cpu: parse /proc/stat field", "field", i, "error", err)
				return 0, 0, false
			}
			total += val
			if i == 4 {
				idle = val
			}
		}

		return total - idle, total, true
	}

	s.logger.Debug("cpu: cpu line not found in /proc/stat")
	return 0, 0, false
}

// Compile-time interface compliance check.
var _ Source = (*CPUSource)(nil)
