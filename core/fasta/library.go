// core/fasta/library.go
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Library is an ordered id → sequence mapping parsed from a multi-FASTA
// peptide library. Insertion order is the file order of first appearance,
// so iteration (and any stable sort seeded from it) is reproducible for
// identical input files. A duplicate id overwrites the sequence in place
// and keeps the original position.
type Library struct {
	ids        []string
	seqs       map[string]string
	overwrites int
}

// CanonicalID derives the join key from a raw header (without the '>'):
// the first whitespace-delimited token, truncated at the first '|'.
// ">GRK6_variant_001|len=12 designed" and ">GRK6_variant_001 extra" both
// yield "GRK6_variant_001".
func CanonicalID(header string) string {
	header = strings.TrimSpace(header)
	if i := strings.IndexAny(header, " \t"); i >= 0 {
		header = header[:i]
	}
	if i := strings.IndexByte(header, '|'); i >= 0 {
		header = header[:i]
	}
	return header
}

// Add inserts or overwrites one record.
func (l *Library) Add(id, seq string) {
	if l.seqs == nil {
		l.seqs = make(map[string]string)
	}
	if _, ok := l.seqs[id]; ok {
		l.overwrites++
	} else {
		l.ids = append(l.ids, id)
	}
	l.seqs[id] = seq
}

// Len returns the number of distinct variants.
func (l *Library) Len() int { return len(l.ids) }

// IDs returns the variant ids in insertion order. The slice is shared;
// callers must not mutate it.
func (l *Library) IDs() []string { return l.ids }

// Seq returns the sequence for id.
func (l *Library) Seq(id string) (string, bool) {
	s, ok := l.seqs[id]
	return s, ok
}

// Overwrites reports how many records replaced an earlier record with the
// same canonical id. Duplicates are not an error; last entry wins.
func (l *Library) Overwrites() int { return l.overwrites }

// Parse reads multi-FASTA records from r. Header lines start with '>';
// subsequent lines are concatenated (whitespace-trimmed, case preserved)
// until the next header. Blank lines are skipped anywhere. Sequence
// alphabet is not validated; malformed residues pass through unchanged.
func Parse(r io.Reader) (*Library, error) {
	lib := &Library{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		id     string
		have   bool
		chunks []string
	)
	flush := func() {
		if have {
			lib.Add(id, strings.Join(chunks, ""))
		}
	}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' {
			flush()
			id = CanonicalID(line[1:])
			have = true
			chunks = chunks[:0]
			continue
		}
		chunks = append(chunks, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fasta scan: %w", err)
	}
	flush()
	return lib, nil
}

// ReadLibrary parses the library file at path. Gzip input and "-" for
// stdin are handled transparently. A missing file is a hard error (the
// library defines the candidate universe); the returned error satisfies
// errors.Is(err, fs.ErrNotExist) so callers can branch on it.
func ReadLibrary(path string) (*Library, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	lib, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}
