// Package config provides configuration parsing for rkmon.
package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the rkmon configuration.
type Config struct {
	// Monitor holds sampling loop settings.
	Monitor MonitorConfig `yaml:"monitor"`

	// Sensors holds per-source enable flags.
	Sensors SensorsConfig `yaml:"sensors"`

	// Thresholds holds warning/critical pairs per metric class.
	Thresholds ThresholdsConfig `yaml:"thresholds"`

	// Display holds TUI rendering settings.
	Display DisplayConfig `yaml:"display"`

	// Status holds status-line cache settings.
	Status StatusConfig `yaml:"status"`
}

// MonitorConfig holds sampling loop settings.
type MonitorConfig struct {
	// TickInterval is a duration string (e.g. "1s") between sampling passes.
	TickInterval string `yaml:"tick_interval"`
	// SourceTimeout is a duration string bounding each source read within a
	// tick. Empty means half the tick interval.
	SourceTimeout string `yaml:"source_timeout"`
	// HistoryLength is the number of samples retained per metric.
	HistoryLength int `yaml:"history_length"`
	// TempHistoryLength overrides HistoryLength for temperature metrics.
	// Zero means use HistoryLength.
	TempHistoryLength int `yaml:"temp_history_length"`
}

// SensorsConfig holds per-source enable flags. CPU and memory sampling are
// always on; only the optional sensor groups can be disabled.
type SensorsConfig struct {
	// EnableTemperature controls the thermal zone sources.
	EnableTemperature bool `yaml:"enable_temperature"`
	// EnableNPU controls the rknpu load source, which needs elevated
	// privileges to read.
	EnableNPU bool `yaml:"enable_npu"`
}

// ThresholdPair is a warning/critical threshold pair for one metric class.
type ThresholdPair struct {
	Warning  float64 `yaml:"warning"`
	Critical float64 `yaml:"critical"`
}

// ThresholdsConfig holds threshold pairs per metric class.
type ThresholdsConfig struct {
	Temp   ThresholdPair `yaml:"temp"`
	CPU    ThresholdPair `yaml:"cpu"`
	Memory ThresholdPair `yaml:"memory"`
	NPU    ThresholdPair `yaml:"npu"`
}

// DisplayConfig holds TUI rendering settings.
type DisplayConfig struct {
	// RefreshInterval is a duration string between TUI redraws.
	RefreshInterval string `yaml:"refresh_interval"`
	// GraphWidth is the sparkline width in characters.
	GraphWidth int `yaml:"graph_width"`
	// ShowHistory toggles the history sparklines under each panel.
	ShowHistory bool `yaml:"show_history"`
}

// StatusConfig holds status-line cache settings.
type StatusConfig struct {
	// CacheDir is the directory for the status summary written each tick.
	// Empty disables the status cache.
	CacheDir string `yaml:"cache_dir"`
}

// DefaultConfig returns a Config populated with the platform defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		Monitor: MonitorConfig{
			TickInterval:      "1s",
			SourceTimeout:     "",
			HistoryLength:     60,
			TempHistoryLength: 0,
		},
		Sensors: SensorsConfig{
			EnableTemperature: true,
			EnableNPU:         true,
		},
		Thresholds: ThresholdsConfig{
			Temp:   ThresholdPair{Warning: 60.0, Critical: 70.0},
			CPU:    ThresholdPair{Warning: 70.0, Critical: 90.0},
			Memory: ThresholdPair{Warning: 80.0, Critical: 95.0},
			NPU:    ThresholdPair{Warning: 70.0, Critical: 90.0},
		},
		Display: DisplayConfig{
			RefreshInterval: "1s",
			GraphWidth:      30,
			ShowHistory:     true,
		},
		Status: StatusConfig{
			CacheDir: filepath.Join(home, ".cache", "rkmon"),
		},
	}
}

// Load reads configuration from a YAML file, merging it over the defaults.
// A missing file yields the defaults silently; an unreadable or malformed
// file yields the defaults with a logged warning. Load never fails startup.
func Load(path string, logger *slog.Logger) *Config {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No config file is the common case; defaults apply.
		case err != nil:
			logger.Warn("config: unreadable file, using defaults", "path", path, "error", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				logger.Warn("config: malformed file, using defaults", "path", path, "error", err)
				cfg = DefaultConfig()
			}
		}
	}

	cfg.normalize(logger)
	return cfg
}

// normalize repairs individually invalid values rather than failing: bad
// durations and non-positive lengths fall back to defaults with a warning.
// Reversed threshold pairs are left to the evaluator, which swaps them.
func (c *Config) normalize(logger *slog.Logger) {
	def := DefaultConfig()

	if _, err := time.ParseDuration(c.Monitor.TickInterval); err != nil {
		logger.Warn("config: invalid monitor.tick_interval, using default",
			"value", c.Monitor.TickInterval,
			"default", def.Monitor.TickInterval,
		)
		c.Monitor.TickInterval = def.Monitor.TickInterval
	}
	if c.Monitor.SourceTimeout != "" {
		if _, err := time.ParseDuration(c.Monitor.SourceTimeout); err != nil {
			logger.Warn("config: invalid monitor.source_timeout, deriving from tick interval",
				"value", c.Monitor.SourceTimeout,
			)
			c.Monitor.SourceTimeout = ""
		}
	}
	if c.Monitor.HistoryLength < 1 {
		logger.Warn("config: invalid monitor.history_length, using default",
			"value", c.Monitor.HistoryLength,
			"default", def.Monitor.HistoryLength,
		)
		c.Monitor.HistoryLength = def.Monitor.HistoryLength
	}
	if c.Monitor.TempHistoryLength < 0 {
		c.Monitor.TempHistoryLength = 0
	}

	if _, err := time.ParseDuration(c.Display.RefreshInterval); err != nil {
		logger.Warn("config: invalid display.refresh_interval, using default",
			"value", c.Display.RefreshInterval,
			"default", def.Display.RefreshInterval,
		)
		c.Display.RefreshInterval = def.Display.RefreshInterval
	}
	if c.Display.GraphWidth < 1 {
		c.Display.GraphWidth = def.Display.GraphWidth
	}
}

// TickInterval returns the parsed sampling cadence.
func (c *Config) TickInterval() time.Duration {
	d, err := time.ParseDuration(c.Monitor.TickInterval)
	if err != nil {
		return time.Second
	}
	return d
}

// SourceTimeout returns the parsed per-source read budget, or zero when the
// sampler should derive it from the tick interval.
func (c *Config) SourceTimeout() time.Duration {
	if c.Monitor.SourceTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Monitor.SourceTimeout)
	if err != nil {
		return 0
	}
	return d
}

// RefreshInterval returns the parsed TUI redraw cadence.
func (c *Config) RefreshInterval() time.Duration {
	d, err := time.ParseDuration(c.Display.RefreshInterval)
	if err != nil {
		return time.Second
	}
	return d
}

// Save writes the configuration to a YAML file.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
