// Package fragment discovers .sshconf fragment files and extracts their
// marker-delimited sections.
//
// A fragment is free-form text carrying up to four well-known blocks, each
// bounded by an exact, case-sensitive marker pair:
//
//	# CONDITIONS BEGIN ... # CONDITIONS END
//	# GLOBAL CONFIG BEGIN ... # GLOBAL CONFIG END
//	# LOCAL CONFIG BEGIN ... # LOCAL CONFIG END
//	# REMOTE CONFIG BEGIN ... # REMOTE CONFIG END
//
// Markers are literal strings, so extraction is a plain indexed substring
// search rather than a pattern match. Only the first marker pair of each
// kind is honored; nesting is not supported.
package fragment

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/treykane/sshconfgen/internal/model"
)

const (
	conditionsBegin = "# CONDITIONS BEGIN"
	conditionsEnd   = "# CONDITIONS END"
	globalBegin     = "# GLOBAL CONFIG BEGIN"
	globalEnd       = "# GLOBAL CONFIG END"
	localBegin      = "# LOCAL CONFIG BEGIN"
	localEnd        = "# LOCAL CONFIG END"
	remoteBegin     = "# REMOTE CONFIG BEGIN"
	remoteEnd       = "# REMOTE CONFIG END"
)

// ExtractSection returns the trimmed text strictly between the first
// occurrence of begin and the first occurrence of end after it, or the
// empty string if either marker is absent or out of order.
func ExtractSection(content, begin, end string) string {
	i := strings.Index(content, begin)
	if i < 0 {
		return ""
	}
	rest := content[i+len(begin):]
	j := strings.Index(rest, end)
	if j < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:j])
}

// Split extracts all four well-known sections from a fragment's content.
func Split(content string) model.Sections {
	return model.Sections{
		Conditions: ExtractSection(content, conditionsBegin, conditionsEnd),
		Global:     ExtractSection(content, globalBegin, globalEnd),
		Local:      ExtractSection(content, localBegin, localEnd),
		Remote:     ExtractSection(content, remoteBegin, remoteEnd),
	}
}

// DiscoverResult is the outcome of one fragment-directory scan.
type DiscoverResult struct {
	Fragments []model.Fragment
	Warnings  []string
}

// Discover scans dir for files with the given extension and reads each one,
// returning fragments sorted by file name in ascending byte order. Unreadable
// files are skipped with a warning; a missing or unreadable directory is an
// error, since the caller cannot distinguish that from an empty run.
func Discover(dir, extension string) (DiscoverResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return DiscoverResult{}, fmt.Errorf("read fragment dir %s: %w", dir, err)
	}

	var res DiscoverResult
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), extension) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		b, readErr := os.ReadFile(path)
		if readErr != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("skipping unreadable fragment %s: %v", path, readErr))
			continue
		}
		res.Fragments = append(res.Fragments, model.Fragment{
			Name:    entry.Name(),
			Path:    path,
			Content: string(b),
		})
	}

	// Byte-lexicographic order fixes the merge order of the output file.
	sort.Slice(res.Fragments, func(i, j int) bool {
		return res.Fragments[i].Name < res.Fragments[j].Name
	})
	return res, nil
}
