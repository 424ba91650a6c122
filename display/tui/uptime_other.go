//go:build !linux

package tui

import "time"

// systemUptime is unsupported off Linux; the header omits uptime.
func systemUptime() time.Duration {
	return 0
}
