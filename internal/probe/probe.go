// Package probe implements the network-environment queries behind rule
// evaluation: the active wireless network identifier, neighbor-table MAC
// lookup, and ICMP reachability.
//
// SSID and MAC lookups shell out to per-OS tooling (iwgetid, networksetup,
// netsh, arp); the implementations are selected at build time through
// platform-suffixed files. Reachability runs in-process via pro-bing.
package probe

import (
	"log/slog"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/treykane/sshconfgen/internal/logging"
	"github.com/treykane/sshconfgen/internal/util"
)

// Options tunes the reachability probe.
type Options struct {
	PingTimeout  time.Duration
	PingAttempts int
}

// Prober answers environment queries for the current platform. It satisfies
// rules.Probe.
type Prober struct {
	log          *slog.Logger
	pingTimeout  time.Duration
	pingAttempts int
}

// New creates a Prober. Zero option fields take the package defaults; a nil
// logger discards diagnostics.
func New(log *slog.Logger, opts Options) *Prober {
	if log == nil {
		log = logging.Discard()
	}
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = util.PingTimeout
	}
	if opts.PingAttempts <= 0 {
		opts.PingAttempts = util.PingAttempts
	}
	return &Prober{log: log, pingTimeout: opts.PingTimeout, pingAttempts: opts.PingAttempts}
}

// IsReachable reports whether ip answers an ICMP echo within the configured
// number of attempts. Lookup or socket errors count as failed attempts.
func (p *Prober) IsReachable(ip string) bool {
	for attempt := 0; attempt < p.pingAttempts; attempt++ {
		pinger, err := probing.NewPinger(ip)
		if err != nil {
			p.log.Debug("pinger setup failed", "ip", ip, "error", err)
			return false
		}
		pinger.Count = 1
		pinger.Timeout = p.pingTimeout
		pinger.SetPrivileged(false)

		if err := pinger.Run(); err != nil {
			p.log.Debug("ping attempt failed", "ip", ip, "attempt", attempt+1, "error", err)
			continue
		}
		if pinger.Statistics().PacketsRecv > 0 {
			return true
		}
	}
	return false
}
