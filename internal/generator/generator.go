// Package generator glues the pipeline together: discover fragments, merge
// their sections against the live environment, and commit the result.
package generator

import (
	"log/slog"

	"github.com/treykane/sshconfgen/internal/events"
	"github.com/treykane/sshconfgen/internal/fragment"
	"github.com/treykane/sshconfgen/internal/logging"
	"github.com/treykane/sshconfgen/internal/merge"
	"github.com/treykane/sshconfgen/internal/rules"
	"github.com/treykane/sshconfgen/internal/safewrite"
)

// Generator runs one discover+merge+commit pass per Run call. Each pass
// constructs a fresh evaluator so the network identifier is re-read at most
// once per pass, not once per process.
type Generator struct {
	FragmentDir string
	OutputPath  string
	Extension   string
	Probe       rules.Probe
	Rules       rules.Options
	Log         *slog.Logger
	// Journal receives one event per pass that touched the output file.
	// Nil disables journaling.
	Journal *events.Store
}

// Run executes one full generation pass. A missing fragment directory or a
// failed environment lookup is returned as an error; unreadable fragments
// are skipped with diagnostics. When no fragments exist at all, nothing is
// written and no backup is taken.
func (g *Generator) Run() error {
	log := g.Log
	if log == nil {
		log = logging.Discard()
	}
	ext := g.Extension
	if ext == "" {
		ext = ".sshconf"
	}

	res, err := fragment.Discover(g.FragmentDir, ext)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Debug(w)
	}
	if len(res.Fragments) == 0 {
		log.Debug("no fragments found", "dir", g.FragmentDir)
		return nil
	}

	eval := rules.NewEvaluator(g.Probe, log, g.Rules)
	engine := merge.NewEngine(eval, log)
	merged, results, err := engine.Build(res.Fragments)
	if err != nil {
		return err
	}

	outcome, err := safewrite.NewWriter(log).Commit(g.OutputPath, merged)
	if err != nil {
		return err
	}
	log.Debug("generation pass finished", "outcome", string(outcome), "output", g.OutputPath)

	if g.Journal != nil {
		evt := events.Event{
			EventType: string(outcome),
			Output:    g.OutputPath,
			Fragments: results,
		}
		if err := g.Journal.Append(evt); err != nil {
			// Journal trouble must not undo a finished commit.
			log.Warn("failed to journal generation event", "error", err)
		}
	}
	return nil
}
