package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"gitlab.com/tinyland/lab/rkmon/config"
)

// daemon runs the sampling engine headless so shell prompts can read a
// fresh status cache without an attached dashboard. It owns a PID file in
// the cache directory to prevent concurrent instances.
type daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	pidFile string
}

// newDaemon validates the configuration for headless use. The daemon exists
// to feed the status cache, so a disabled cache is an error here.
func newDaemon(cfg *config.Config, logger *slog.Logger) (*daemon, error) {
	if cfg.Status.CacheDir == "" {
		return nil, fmt.Errorf("daemon: status cache_dir must be set")
	}
	return &daemon{
		cfg:     cfg,
		logger:  logger,
		pidFile: filepath.Join(cfg.Status.CacheDir, "rkmon.pid"),
	}, nil
}

// writePIDFile writes the current process PID to the PID file.
func (d *daemon) writePIDFile() error {
	if err := os.MkdirAll(filepath.Dir(d.pidFile), 0o755); err != nil {
		return fmt.Errorf("create PID file directory: %w", err)
	}
	pid := os.Getpid()
	if err := os.WriteFile(d.pidFile, []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("write PID file: %w", err)
	}
	d.logger.Info("wrote PID file", "path", d.pidFile, "pid", pid)
	return nil
}

// removePIDFile removes the PID file on shutdown.
func (d *daemon) removePIDFile() {
	if err := os.Remove(d.pidFile); err != nil && !os.IsNotExist(err) {
		d.logger.Error("failed to remove PID file", "path", d.pidFile, "error", err)
	}
}

// isRunning checks if another daemon instance is already running by reading
// the PID file and probing the process. A stale or corrupt PID file is
// cleaned up.
func (d *daemon) isRunning() (bool, int) {
	data, err := os.ReadFile(d.pidFile)
	if err != nil {
		return false, 0
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		d.logger.Warn("corrupt PID file, removing", "path", d.pidFile)
		os.Remove(d.pidFile)
		return false, 0
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		os.Remove(d.pidFile)
		return false, 0
	}

	if err := process.Signal(syscall.Signal(0)); err != nil {
		d.logger.Warn("stale PID file, removing", "path", d.pidFile, "pid", pid)
		os.Remove(d.pidFile)
		return false, 0
	}

	return true, pid
}

// run starts the sampling engine and blocks until the context is cancelled.
func (d *daemon) run(ctx context.Context) error {
	if running, pid := d.isRunning(); running {
		return fmt.Errorf("daemon already running (PID %d)", pid)
	}
	if err := d.writePIDFile(); err != nil {
		return err
	}
	defer d.removePIDFile()

	engine, err := startEngine(d.cfg, d.logger)
	if err != nil {
		return err
	}

	d.logger.Info("sampler running", "interval", d.cfg.TickInterval().String())
	<-ctx.Done()
	d.logger.Info("daemon shutting down gracefully")
	engine.Stop()
	return nil
}

// runDaemon runs the headless sampler until SIGINT or SIGTERM.
func runDaemon(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := newDaemon(cfg, logger)
	if err != nil {
		return err
	}
	return d.run(ctx)
}
