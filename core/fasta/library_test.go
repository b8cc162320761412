package fasta

import (
	"compress/gzip"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCanonicalID(t *testing.T) {
	cases := map[string]string{
		"GRK6_variant_001|len=12 designed": "GRK6_variant_001",
		"GRK6_variant_002 extra note":      "GRK6_variant_002",
		"plain":                            "plain",
		"  padded|x ":                      "padded",
	}
	for in, want := range cases {
		if got := CanonicalID(in); got != want {
			t.Fatalf("CanonicalID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseMultiRecord(t *testing.T) {
	in := ">v1|anno something\nACDE\nFGHI\n\n>v2 note\nKLMN\n"
	lib, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if lib.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", lib.Len())
	}
	if got := lib.IDs(); got[0] != "v1" || got[1] != "v2" {
		t.Fatalf("ids out of order: %v", got)
	}
	if s, _ := lib.Seq("v1"); s != "ACDEFGHI" {
		t.Fatalf("v1 sequence %q", s)
	}
	if s, _ := lib.Seq("v2"); s != "KLMN" {
		t.Fatalf("v2 sequence %q", s)
	}
}

func TestParseDuplicateOverwritesInPlace(t *testing.T) {
	in := ">a\nAAAA\n>b\nCCCC\n>a\nWWWW\n"
	lib, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if lib.Len() != 2 {
		t.Fatalf("expected 2 distinct ids, got %d", lib.Len())
	}
	if got := lib.IDs(); got[0] != "a" || got[1] != "b" {
		t.Fatalf("duplicate changed order: %v", got)
	}
	if s, _ := lib.Seq("a"); s != "WWWW" {
		t.Fatalf("last entry should win, got %q", s)
	}
	if lib.Overwrites() != 1 {
		t.Fatalf("expected 1 overwrite, got %d", lib.Overwrites())
	}
}

func TestParseCasePreserved(t *testing.T) {
	lib, err := Parse(strings.NewReader(">x\nAcDe\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s, _ := lib.Seq("x"); s != "AcDe" {
		t.Fatalf("case not preserved: %q", s)
	}
}

func TestReadLibraryMissingFile(t *testing.T) {
	_, err := ReadLibrary(filepath.Join(t.TempDir(), "nope.fasta"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestReadLibraryGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.fasta.gz")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(">z|x\nMMMM\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	lib, err := ReadLibrary(path)
	if err != nil {
		t.Fatalf("read gz: %v", err)
	}
	if s, _ := lib.Seq("z"); s != "MMMM" {
		t.Fatalf("gzip parse failed: %q", s)
	}
}
