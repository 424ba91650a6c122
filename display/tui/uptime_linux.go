//go:build linux

package tui

import (
	"time"

	"golang.org/x/sys/unix"
)

// systemUptime returns how long the system has been up, or 0 if the
// sysinfo call fails.
func systemUptime() time.Duration {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	return time.Duration(info.Uptime) * time.Second
}
