// Package safewrite persists the generated config with crash-safe
// backup/restore semantics.
//
// Commit is a three-phase protocol over a single file: rename any existing
// output to a timestamp-suffixed backup, append the new content, then verify
// the result and either delete the backup or rename it back. At process exit
// either a non-empty new file exists at the output path, or the original has
// been restored exactly. The only uncovered window is a crash between the
// backup rename and the write, which is accepted and not retried.
//
// Two runs within the same second produce the same backup name; the second
// rename replaces the first backup, matching rename semantics everywhere the
// tool runs. Concurrent invocations of the pipeline are not supported.
package safewrite

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/treykane/sshconfgen/internal/logging"
	"github.com/treykane/sshconfgen/internal/util"
)

// Outcome reports how a commit resolved.
type Outcome string

const (
	// OutcomeCommitted: the new file is live and the backup was removed.
	OutcomeCommitted Outcome = "commit"
	// OutcomeRestored: the write produced nothing (or an empty file) and
	// the pre-existing file was renamed back.
	OutcomeRestored Outcome = "restore"
	// OutcomeEmpty: there was no pre-existing file and nothing to write.
	OutcomeEmpty Outcome = "empty"
)

// Writer commits merged output to a fixed path.
type Writer struct {
	log *slog.Logger
	// now is swappable for deterministic backup names in tests.
	now func() time.Time
}

// NewWriter creates a writer. A nil logger discards diagnostics.
func NewWriter(log *slog.Logger) *Writer {
	if log == nil {
		log = logging.Discard()
	}
	return &Writer{log: log, now: time.Now}
}

// Commit writes content to outputPath under the backup/write/verify
// protocol. Filesystem failures during any phase are returned as errors and
// void the restore guarantee, per the recovery contract.
func (w *Writer) Commit(outputPath, content string) (Outcome, error) {
	backupPath, err := w.backup(outputPath)
	if err != nil {
		return "", err
	}

	if content != "" {
		if err := appendContent(outputPath, content); err != nil {
			return "", err
		}
	}

	return w.verify(outputPath, backupPath)
}

// backup renames any existing file at outputPath to a timestamped .orig
// path and returns it, or "" when there was nothing to back up.
func (w *Writer) backup(outputPath string) (string, error) {
	if _, err := os.Stat(outputPath); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("stat %s: %w", outputPath, err)
	}
	backupPath := fmt.Sprintf("%s.%s.orig", outputPath, w.now().Format("20060102150405"))
	if err := os.Rename(outputPath, backupPath); err != nil {
		return "", fmt.Errorf("back up %s: %w", outputPath, err)
	}
	w.log.Debug("backup created", "path", backupPath)
	return backupPath, nil
}

// appendContent appends content to the (possibly new) file at path,
// guaranteeing a trailing platform newline.
func appendContent(path, content string) error {
	newline := util.Newline()
	if !strings.HasSuffix(content, newline) {
		content += newline
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open %s for append: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// verify inspects the written file and resolves the backup: a missing or
// zero-size output restores the backup, otherwise the backup is deleted.
func (w *Writer) verify(outputPath, backupPath string) (Outcome, error) {
	fi, err := os.Stat(outputPath)
	switch {
	case err != nil && os.IsNotExist(err):
		return w.restore(outputPath, backupPath)
	case err != nil:
		return "", fmt.Errorf("stat new config %s: %w", outputPath, err)
	case fi.Size() == 0:
		w.log.Warn("new config is empty, restoring original", "path", outputPath)
		// The rename in restore replaces the empty file.
		return w.restore(outputPath, backupPath)
	default:
		if backupPath != "" {
			if err := os.Remove(backupPath); err != nil {
				return "", fmt.Errorf("remove backup %s: %w", backupPath, err)
			}
		}
		w.log.Debug("new config committed", "path", outputPath, "bytes", fi.Size())
		return OutcomeCommitted, nil
	}
}

func (w *Writer) restore(outputPath, backupPath string) (Outcome, error) {
	if backupPath == "" {
		w.log.Debug("nothing written and nothing to restore", "path", outputPath)
		return OutcomeEmpty, nil
	}
	w.log.Warn("restoring original config", "path", outputPath)
	if err := os.Rename(backupPath, outputPath); err != nil {
		return "", fmt.Errorf("restore %s: %w", outputPath, err)
	}
	return OutcomeRestored, nil
}
