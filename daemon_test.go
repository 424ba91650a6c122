package main

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"gitlab.com/tinyland/lab/rkmon/config"
)

func testDaemon(t *testing.T) *daemon {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Status.CacheDir = t.TempDir()

	d, err := newDaemon(cfg, discardLogger())
	if err != nil {
		t.Fatalf("newDaemon failed: %v", err)
	}
	return d
}

func TestNewDaemon_RequiresCacheDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Status.CacheDir = ""

	if _, err := newDaemon(cfg, discardLogger()); err == nil {
		t.Error("expected error with no cache dir")
	}
}

func TestDaemon_PIDFileLifecycle(t *testing.T) {
	d := testDaemon(t)

	if err := d.writePIDFile(); err != nil {
		t.Fatalf("writePIDFile failed: %v", err)
	}

	data, err := os.ReadFile(d.pidFile)
	if err != nil {
		t.Fatalf("PID file not written: %v", err)
	}
	if pid, _ := strconv.Atoi(string(data)); pid != os.Getpid() {
		t.Errorf("PID file contains %s, want %d", data, os.Getpid())
	}

	// The current process exists, so the daemon appears running.
	running, pid := d.isRunning()
	if !running || pid != os.Getpid() {
		t.Errorf("isRunning() = %v, %d; want true, %d", running, pid, os.Getpid())
	}

	d.removePIDFile()
	if _, err := os.Stat(d.pidFile); !os.IsNotExist(err) {
		t.Error("expected PID file removed")
	}
}

func TestDaemon_IsRunning_NoPIDFile(t *testing.T) {
	d := testDaemon(t)
	if running, _ := d.isRunning(); running {
		t.Error("expected not running with no PID file")
	}
}

func TestDaemon_IsRunning_CorruptPIDFile(t *testing.T) {
	d := testDaemon(t)
	if err := os.WriteFile(d.pidFile, []byte("not-a-pid"), 0o644); err != nil {
		t.Fatal(err)
	}

	if running, _ := d.isRunning(); running {
		t.Error("expected not running with corrupt PID file")
	}
	if _, err := os.Stat(d.pidFile); !os.IsNotExist(err) {
		t.Error("expected corrupt PID file removed")
	}
}

func TestDaemon_IsRunning_StalePID(t *testing.T) {
	d := testDaemon(t)
	// PIDs above the kernel default pid_max cannot belong to a live process.
	if err := os.WriteFile(d.pidFile, []byte("4999999"), 0o644); err != nil {
		t.Fatal(err)
	}

	if running, _ := d.isRunning(); running {
		t.Error("expected not running with stale PID")
	}
	if _, err := os.Stat(d.pidFile); !os.IsNotExist(err) {
		t.Error("expected stale PID file removed")
	}
}

func TestDaemon_PIDFilePath(t *testing.T) {
	d := testDaemon(t)
	if filepath.Base(d.pidFile) != "rkmon.pid" {
		t.Errorf("unexpected PID file name: %s", d.pidFile)
	}
}
