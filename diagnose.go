package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gitlab.com/tinyland/lab/rkmon/config"
	"gitlab.com/tinyland/lab/rkmon/metrics"
)

// runDiagnose checks every data source rkmon depends on and reports which
// are readable from this process. Useful on a freshly imaged board, where
// thermal zone numbering and debugfs permissions vary.
func runDiagnose(cfg *config.Config, w io.Writer) error {
	fmt.Fprintln(w, "rkmon diagnostics")
	fmt.Fprintln(w, "=================")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Thermal zones:")
	zones := make([]int, 0, len(metrics.DefaultThermalZones))
	for zone := range metrics.DefaultThermalZones {
		zones = append(zones, zone)
	}
	sort.Ints(zones)
	for _, zone := range zones {
		id := metrics.DefaultThermalZones[zone]
		path := metrics.ThermalZonePath(zone)
		fmt.Fprintf(w, "  zone %d (%s): %s\n", zone, id.Label(), probeFile(path))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "CPU and memory:")
	fmt.Fprintf(w, "  /proc/stat: %s\n", probeFile("/proc/stat"))
	fmt.Fprintf(w, "  /proc/meminfo: %s\n", probeFile("/proc/meminfo"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "NPU:")
	fmt.Fprintf(w, "  %s: %s\n", metrics.NPULoadPath, probeFile(metrics.NPULoadPath))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Status cache:")
	if cfg.Status.CacheDir == "" {
		fmt.Fprintln(w, "  disabled (no cache_dir configured)")
	} else {
		fmt.Fprintf(w, "  %s: %s\n", cfg.Status.CacheDir, probeDir(cfg.Status.CacheDir))
	}

	return nil
}

// probeFile reports whether a source file can be opened for reading.
func probeFile(path string) string {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "missing"
		}
		if os.IsPermission(err) {
			return "permission denied (try running as root)"
		}
		return fmt.Sprintf("unreadable (%v)", err)
	}
	f.Close()
	return "ok"
}

// probeDir reports whether a directory exists and is writable.
func probeDir(dir string) string {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "will be created on first run"
		}
		return fmt.Sprintf("unreadable (%v)", err)
	}
	if !info.IsDir() {
		return "not a directory"
	}
	tmp, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return "not writable"
	}
	tmp.Close()
	os.Remove(tmp.Name())
	return "ok"
}
