package metrics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// thermalPathFormat is the sysfs location of a thermal zone reading.
	thermalPathFormat = "/sys/class/thermal/thermal_zone%d/temp"

	// maxSaneTempC is the sanity ceiling for a zone reading in °C. Values
	// above it (or below zero) are treated as sensor garbage and reported
	// Unavailable rather than propagated.
	maxSaneTempC = 150.0
)

// ThermalZonePath returns the sysfs reading path for a zone index.
func ThermalZonePath(zone int) string {
	return fmt.Sprintf(thermalPathFormat, zone)
}

// DefaultThermalZones maps RK3588 thermal zone indices to their metrics.
var DefaultThermalZones = map[int]ID{
	0: TempSoCCenter,
	1: TempBigCore0,
	2: TempBigCore1,
	3: TempLittleCore,
	4: TempCenter,
	5: TempGPU,
	6: TempNPU,
}

// ThermalSource reads one thermal zone. The raw value is an integer in
// millidegrees Celsius.
type ThermalSource struct {
	zone   int
	metric ID
	logger *slog.Logger

	// readFile is overridable for testing.
	readFile func(path string) ([]byte, error)
}

// NewThermalSource creates a source for the given zone index and metric.
// If logger is nil, a no-op logger is used.
func NewThermalSource(zone int, metric ID, logger *slog.Logger) *ThermalSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ThermalSource{
		zone:     zone,
		metric:   metric,
		logger:   logger,
		readFile: os.ReadFile,
	}
}

// Name returns the source's unique identifier.
func (s *ThermalSource) Name() string {
	return fmt.Sprintf("thermal_zone%d", s.zone)
}

// Metrics returns the single metric this zone produces.
func (s *ThermalSource) Metrics() []ID {
	return []ID{s.metric}
}

// Read reads the zone's temperature and scales millidegrees to °C.
// Missing files, parse failures, and out-of-range values all map to an
// Unavailable reading.
func (s *ThermalSource) Read(ctx context.Context) []Reading {
	now := time.Now()

	raw, err := s.readFile(ThermalZonePath(s.zone))
	if err != nil {
		return []Reading{Unavailable(s.metric, now)}
	}

	milli, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		s.logger.Debug("thermal: unparsable zone reading",
			"zone", s.zone,
			"raw", strings.TrimSpace(string(raw)),
		)
		return []Reading{Unavailable(s.metric, now)}
	}

	temp := float64(milli) / 1000.0
	if temp < 0 || temp > maxSaneTempC {
		s.logger.Debug("thermal: reading outside sane range",
			"zone", s.zone,
			"temp_c", temp,
		)
		return []Reading{Unavailable(s.metric, now)}
	}

	return []Reading{Available(s.metric, temp, now)}
}

// Compile-time interface compliance check.
var _ Source = (*ThermalSource)(nil)
