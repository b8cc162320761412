// core/vina/vina.go
package vina

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ResultMarker is the literal token identifying a score line in an
// AutoDock-Vina-style log.
const ResultMarker = "REMARK VINA RESULT:"

// LogFileName is the per-variant log artifact the collector looks for.
const LogFileName = "log.txt"

// Placeholder is the neutral docking score substituted when no parseable
// log exists for a variant.
const Placeholder = 0.0

// Score is the best docking score for one variant. Real is false when the
// value is the neutral placeholder rather than an engine result.
type Score struct {
	VariantID string
	Value     float64
	Real      bool
}

// ParseLog scans r for the first line containing ResultMarker and returns
// the first whitespace-delimited token on that line that parses as a
// float. Parsing stops at the first success.
func ParseLog(r io.Reader) (float64, bool) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, ResultMarker) {
			continue
		}
		for _, tok := range strings.Fields(line) {
			if v, err := strconv.ParseFloat(tok, 64); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}

// ParseLogFile is ParseLog over a file path; a missing or unreadable file
// reports no score.
func ParseLogFile(path string) (float64, bool) {
	fh, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer func() { _ = fh.Close() }()
	return ParseLog(fh)
}

// Collect walks the per-variant subdirectories of root in sorted order of
// variant id and extracts one Score per directory, falling back to the
// placeholder when the log is absent or unparseable. A missing root is
// reported as an error satisfying errors.Is(err, fs.ErrNotExist); callers
// treat that as a soft condition (docking may not have run yet).
func Collect(root string) ([]Score, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var scores []Score
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		id := e.Name()
		v, real := ParseLogFile(filepath.Join(root, id, LogFileName))
		if !real {
			v = Placeholder
		}
		scores = append(scores, Score{VariantID: id, Value: v, Real: real})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].VariantID < scores[j].VariantID })
	return scores, nil
}

// AnyReal reports whether at least one score in the batch came from an
// actual engine log. When false, ranking is sequence-property-driven only.
func AnyReal(scores []Score) bool {
	for _, s := range scores {
		if s.Real {
			return true
		}
	}
	return false
}

// IsMissingRoot reports whether err from Collect means the docking root
// does not exist.
func IsMissingRoot(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
