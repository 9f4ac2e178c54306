// Package merge composes the generated config from fragment sections.
//
// The engine is pure with respect to the filesystem: it consumes fragments
// already read into memory and returns the complete output as a string.
// Persistence belongs to internal/safewrite.
package merge

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/treykane/sshconfgen/internal/fragment"
	"github.com/treykane/sshconfgen/internal/logging"
	"github.com/treykane/sshconfgen/internal/model"
	"github.com/treykane/sshconfgen/internal/rules"
	"github.com/treykane/sshconfgen/internal/util"
)

// Engine assembles fragments into one output string.
type Engine struct {
	eval *rules.Evaluator
	log  *slog.Logger
}

// NewEngine creates a merge engine. A nil logger discards diagnostics.
func NewEngine(eval *rules.Evaluator, log *slog.Logger) *Engine {
	if log == nil {
		log = logging.Discard()
	}
	return &Engine{eval: eval, log: log}
}

// Build merges fragments in ascending byte order of file name. For each
// fragment the GLOBAL section is appended when present, then the LOCAL or
// REMOTE section depending on its conditions, each followed by the platform
// newline. Fragments with empty content contribute nothing. The returned
// error is only the evaluator's fatal network-lookup failure.
func (e *Engine) Build(fragments []model.Fragment) (string, []model.FragmentResult, error) {
	sorted := append([]model.Fragment(nil), fragments...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	newline := util.Newline()
	var (
		b       strings.Builder
		results []model.FragmentResult
	)
	for _, frag := range sorted {
		if frag.Content == "" {
			e.log.Debug("skipping empty fragment", "fragment", frag.Name)
			results = append(results, model.FragmentResult{Name: frag.Name, Skipped: true})
			continue
		}

		sections := fragment.Split(frag.Content)
		useLocal, reason, err := e.eval.Evaluate(frag.Name, sections.Conditions)
		if err != nil {
			return "", nil, err
		}
		results = append(results, model.FragmentResult{Name: frag.Name, UseLocal: useLocal, Reason: reason})

		if sections.Global != "" {
			e.log.Debug("using global rules", "fragment", frag.Name)
			b.WriteString(sections.Global)
			b.WriteString(newline)
		}
		if useLocal {
			if sections.Local != "" {
				b.WriteString(sections.Local)
				b.WriteString(newline)
			}
		} else if sections.Remote != "" {
			e.log.Debug("using remote rules", "fragment", frag.Name)
			b.WriteString(sections.Remote)
			b.WriteString(newline)
		}
	}
	return b.String(), results, nil
}
