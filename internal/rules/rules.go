// Package rules evaluates a fragment's CONDITIONS block against the live
// network environment to decide local-vs-remote section selection.
package rules

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/treykane/sshconfgen/internal/logging"
	"github.com/treykane/sshconfgen/internal/model"
)

// Probe supplies live network-environment facts. Implementations wrap
// OS-specific tooling; the evaluator never branches on platform itself.
type Probe interface {
	// CurrentNetworkID returns the active wireless network identifier.
	CurrentNetworkID() (string, error)
	// HardwareAddressOf returns the link-layer address bound to ip in the
	// local neighbor table, or an error if unresolved.
	HardwareAddressOf(ip string) (string, error)
	// IsReachable reports whether a reachability probe to ip succeeds
	// within a short bounded number of attempts.
	IsReachable(ip string) bool
}

// Options tunes evaluator behavior.
type Options struct {
	// FilterEmptyPing drops empty elements from LocalPing value lists
	// before probing, the way LocalSSID lists always do. Off by default:
	// historically empty elements were handed to the probe as-is.
	FilterEmptyPing bool
}

// Evaluator decides, per fragment, whether the local or remote section
// applies. The current network identifier is read from the probe at most
// once per evaluator; a lookup failure is unrecoverable and surfaces as an
// error from Evaluate.
type Evaluator struct {
	probe Probe
	log   *slog.Logger
	opts  Options

	ssid       string
	ssidLoaded bool
}

// NewEvaluator creates an evaluator over the given probe. A nil logger
// discards diagnostics.
func NewEvaluator(probe Probe, log *slog.Logger, opts Options) *Evaluator {
	if log == nil {
		log = logging.Discard()
	}
	return &Evaluator{probe: probe, log: log, opts: opts}
}

// ParseConditions splits a CONDITIONS block into condition lines. Each
// non-empty line is split on the first space into key and value; the value
// is comma-split into elements. Elements are not trimmed: exact string
// comparison is the contract for SSIDs and MAC addresses alike.
func ParseConditions(text string) []model.Condition {
	var out []model.Condition
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		out = append(out, model.Condition{
			Key:    model.ConditionKey(strings.TrimSpace(key)),
			Values: strings.Split(strings.TrimSpace(value), ","),
		})
	}
	return out
}

// ParseGatewaySpec splits one `ip|mac` element of a LocalGateway list.
// Elements that do not split into exactly two fields are malformed.
func ParseGatewaySpec(spec string) (model.GatewaySpec, bool) {
	parts := strings.Split(spec, "|")
	if len(parts) != 2 {
		return model.GatewaySpec{}, false
	}
	return model.GatewaySpec{IP: parts[0], MAC: parts[1]}, true
}

// Evaluate reports whether fragment name's conditions select its local
// section. Condition lines are tried in written order and the first success
// short-circuits the rest; the returned reason describes that success. An
// empty or absent conditions block always selects remote. The only error
// path is a failed network-identifier lookup, which is fatal to the run.
func (e *Evaluator) Evaluate(name, conditionsText string) (useLocal bool, reason string, err error) {
	for _, cond := range ParseConditions(conditionsText) {
		switch cond.Key {
		case model.KeySSID:
			ok, r, err := e.ssidMatch(cond.Values)
			if err != nil {
				return false, "", err
			}
			if ok {
				e.log.Debug("using local rules", "fragment", name, "reason", r)
				return true, r, nil
			}
		case model.KeyGateway:
			if ok, r := e.gatewayMatch(cond.Values); ok {
				e.log.Debug("using local rules", "fragment", name, "reason", r)
				return true, r, nil
			}
		case model.KeyPing:
			if ok, r := e.pingMatch(cond.Values); ok {
				e.log.Debug("using local rules", "fragment", name, "reason", r)
				return true, r, nil
			}
		default:
			// Unknown keys contribute no success and no error.
		}
	}
	return false, "", nil
}

func (e *Evaluator) ssidMatch(values []string) (bool, string, error) {
	if !e.ssidLoaded {
		ssid, err := e.probe.CurrentNetworkID()
		if err != nil {
			return false, "", fmt.Errorf("current network lookup: %w", err)
		}
		e.ssid = ssid
		e.ssidLoaded = true
	}
	for _, candidate := range values {
		if candidate == "" {
			continue
		}
		if candidate == e.ssid {
			return true, fmt.Sprintf("ssid match %s", e.ssid), nil
		}
	}
	return false, "", nil
}

func (e *Evaluator) gatewayMatch(values []string) (bool, string) {
	for _, raw := range values {
		gw, ok := ParseGatewaySpec(raw)
		if !ok {
			// Malformed specs are skipped, not errored.
			e.log.Debug("skipping malformed gateway spec", "spec", raw)
			continue
		}
		mac, err := e.probe.HardwareAddressOf(gw.IP)
		if err != nil {
			continue
		}
		if mac == gw.MAC {
			return true, fmt.Sprintf("gateway match %s (%s)", gw.IP, gw.MAC)
		}
	}
	return false, ""
}

func (e *Evaluator) pingMatch(values []string) (bool, string) {
	for _, ip := range values {
		if e.opts.FilterEmptyPing && ip == "" {
			continue
		}
		if e.probe.IsReachable(ip) {
			return true, fmt.Sprintf("ping success %s", ip)
		}
	}
	return false, ""
}
