// Package util provides common utility functions and constants used across
// the sshconfgen application. This package is intentionally kept
// dependency-free (no imports from other internal/* packages) to serve as a
// shared foundation without introducing circular dependencies.
package util

import (
	"runtime"
	"time"
)

const (
	// DefaultPollSeconds is the fallback interval for the SSID monitor loop
	// when --monitor-ssid is given without a value. The SSID is re-read at
	// this cadence and the config is regenerated only when it changes, so a
	// 20-second interval keeps probe traffic negligible while still picking
	// up a network switch promptly.
	DefaultPollSeconds = 20

	// PingTimeout bounds a single reachability attempt inside the
	// environment probe. LocalPing lists are usually consulted precisely
	// when the listed hosts may be unreachable, so this value is the main
	// control on worst-case generation latency.
	PingTimeout = 1 * time.Second

	// PingAttempts is the number of reachability attempts per address
	// before the probe reports failure. Two attempts tolerate a single
	// dropped packet without doubling the unreachable-host penalty.
	PingAttempts = 2

	// WatchDebounce coalesces bursts of fragment-directory events (editors
	// typically fire several writes per save) into a single regeneration.
	// Used by: internal/monitor (Watch).
	WatchDebounce = 500 * time.Millisecond
)

// Newline returns the platform line separator appended after each merged
// section and at the end of the generated file.
func Newline() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}
