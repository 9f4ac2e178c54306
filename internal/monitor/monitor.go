// Package monitor re-runs the generation pipeline when the environment
// changes: either by polling the wireless network identifier or by watching
// the fragment directory for edits.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/treykane/sshconfgen/internal/logging"
	"github.com/treykane/sshconfgen/internal/rules"
	"github.com/treykane/sshconfgen/internal/util"
)

// Runner is the pipeline a monitor re-triggers. *generator.Generator
// satisfies it.
type Runner interface {
	Run() error
}

// Monitor watches for environment changes and re-runs the pipeline.
type Monitor struct {
	Probe    rules.Probe
	Gen      Runner
	Interval time.Duration
	Log      *slog.Logger
}

func (m *Monitor) logger() *slog.Logger {
	if m.Log == nil {
		return logging.Discard()
	}
	return m.Log
}

// Poll reads the network identifier once, then re-reads it every Interval
// and re-runs the pipeline whenever it changed. It blocks until ctx is done
// or an error occurs; identifier lookup failures and pipeline errors are
// both unrecoverable.
func (m *Monitor) Poll(ctx context.Context) error {
	log := m.logger()
	interval := m.Interval
	if interval <= 0 {
		interval = util.DefaultPollSeconds * time.Second
	}

	current, err := m.Probe.CurrentNetworkID()
	if err != nil {
		return fmt.Errorf("current network lookup: %w", err)
	}
	log.Debug("monitoring network identifier", "ssid", current, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		next, err := m.Probe.CurrentNetworkID()
		if err != nil {
			return fmt.Errorf("current network lookup: %w", err)
		}
		if next == current {
			continue
		}
		log.Debug("network changed, regenerating", "old", current, "new", next)
		current = next
		if err := m.Gen.Run(); err != nil {
			return err
		}
	}
}

// Watch re-runs the pipeline when fragment files are created, written,
// renamed or removed under dir. Bursts of events are debounced. Extension
// filters which names count as fragments. Blocks until ctx is done or a
// regeneration fails.
func (m *Monitor) Watch(ctx context.Context, dir, extension string) error {
	log := m.logger()
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Debug("watching fragment directory", "dir", dir)

	// A nil channel blocks forever; the timer is armed on the first
	// relevant event and drained on fire.
	var (
		debounce *time.Timer
		fire     <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(evt.Name, extension) {
				continue
			}
			if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			log.Debug("fragment change", "path", evt.Name, "op", evt.Op.String())
			if debounce == nil {
				debounce = time.NewTimer(util.WatchDebounce)
				fire = debounce.C
			} else {
				debounce.Reset(util.WatchDebounce)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", watchErr)
		case <-fire:
			debounce = nil
			fire = nil
			if err := m.Gen.Run(); err != nil {
				return err
			}
		}
	}
}
