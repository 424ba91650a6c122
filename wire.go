package main

import (
	"log/slog"
	"sort"

	"gitlab.com/tinyland/lab/rkmon/cache"
	"gitlab.com/tinyland/lab/rkmon/config"
	"gitlab.com/tinyland/lab/rkmon/history"
	"gitlab.com/tinyland/lab/rkmon/metrics"
	"gitlab.com/tinyland/lab/rkmon/sampler"
	"gitlab.com/tinyland/lab/rkmon/snapshot"
	"gitlab.com/tinyland/lab/rkmon/status"
)

// statusCacheKey is the cache entry holding the latest status summary.
const statusCacheKey = "status"

// buildRegistry creates the metric sources enabled by the configuration.
// CPU and memory are always sampled; the thermal zones and the NPU load
// source are optional sensor groups.
func buildRegistry(cfg *config.Config, logger *slog.Logger) *metrics.Registry {
	registry := metrics.NewRegistry()

	if cfg.Sensors.EnableTemperature {
		zones := make([]int, 0, len(metrics.DefaultThermalZones))
		for zone := range metrics.DefaultThermalZones {
			zones = append(zones, zone)
		}
		sort.Ints(zones)
		for _, zone := range zones {
			registry.Register(metrics.NewThermalSource(zone, metrics.DefaultThermalZones[zone], logger))
		}
	}

	registry.Register(metrics.NewCPUSource(logger))
	registry.Register(metrics.NewMemSource(logger))

	if cfg.Sensors.EnableNPU {
		registry.Register(metrics.NewNPUSource(logger))
	}

	return registry
}

// buildStore creates a history store sized for every registered metric,
// applying the temperature-specific length override when set.
func buildStore(cfg *config.Config, registry *metrics.Registry) *history.Store {
	capacities := make(map[metrics.ID]int)
	for _, id := range registry.Metrics() {
		n := cfg.Monitor.HistoryLength
		if id.Class() == metrics.ClassTemp && cfg.Monitor.TempHistoryLength > 0 {
			n = cfg.Monitor.TempHistoryLength
		}
		capacities[id] = n
	}
	return history.NewStore(capacities)
}

// buildEvaluator converts the configured threshold pairs into a severity
// evaluator. Reversed pairs are normalized (and logged) by NewEvaluator.
func buildEvaluator(cfg *config.Config, logger *slog.Logger) *status.Evaluator {
	thresholds := map[metrics.Class]status.Thresholds{
		metrics.ClassTemp:   {Warning: cfg.Thresholds.Temp.Warning, Critical: cfg.Thresholds.Temp.Critical},
		metrics.ClassCPU:    {Warning: cfg.Thresholds.CPU.Warning, Critical: cfg.Thresholds.CPU.Critical},
		metrics.ClassMemory: {Warning: cfg.Thresholds.Memory.Warning, Critical: cfg.Thresholds.Memory.Critical},
		metrics.ClassNPU:    {Warning: cfg.Thresholds.NPU.Warning, Critical: cfg.Thresholds.NPU.Critical},
	}
	return status.NewEvaluator(thresholds, logger)
}

// buildStatusHook returns an OnSnapshot callback that writes each tick's
// summary to the status cache, or nil when the cache is disabled. Cache
// write failures are logged and never interrupt sampling.
func buildStatusHook(cfg *config.Config, logger *slog.Logger) func(*snapshot.Snapshot) {
	if cfg.Status.CacheDir == "" {
		return nil
	}
	store, err := cache.NewStore(cfg.Status.CacheDir, logger)
	if err != nil {
		logger.Warn("status cache disabled", "dir", cfg.Status.CacheDir, "error", err)
		return nil
	}
	return func(snap *snapshot.Snapshot) {
		if err := cache.SetTyped(store, statusCacheKey, snap.Summary()); err != nil {
			logger.Warn("status cache write failed", "error", err)
		}
	}
}

// startEngine wires a sampling engine from the configuration and starts it.
func startEngine(cfg *config.Config, logger *slog.Logger) (*sampler.Engine, error) {
	registry := buildRegistry(cfg, logger)
	return sampler.Start(sampler.Config{
		Interval:      cfg.TickInterval(),
		SourceTimeout: cfg.SourceTimeout(),
		Registry:      registry,
		Store:         buildStore(cfg, registry),
		Evaluator:     buildEvaluator(cfg, logger),
		OnSnapshot:    buildStatusHook(cfg, logger),
	}, logger)
}
