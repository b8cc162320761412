package cli

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"
)

func newFS(t *testing.T, name string) *flag.FlagSet {
	t.Helper()
	fs := NewFlagSet(name, "test")
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseScoreDefaults(t *testing.T) {
	opt, err := ParseScore(newFS(t, "peprank-score"), nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.DataDir != "data" {
		t.Fatalf("default data dir %q", opt.DataDir)
	}
	if opt.Manifest != "" {
		t.Fatalf("manifest should default off, got %q", opt.Manifest)
	}
}

func TestParseScoreHelp(t *testing.T) {
	_, err := ParseScore(newFS(t, "peprank-score"), []string{"-h"})
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
}

func TestParseSelectTop(t *testing.T) {
	opt, err := ParseSelect(newFS(t, "peprank-select"), []string{"--top", "0"})
	if err != nil {
		t.Fatalf("top=0 is legal (selects none): %v", err)
	}
	if opt.Top != 0 {
		t.Fatalf("top = %d", opt.Top)
	}
}

func TestParseDockExecRequiresReceptor(t *testing.T) {
	if _, err := ParseDock(newFS(t, "peprank-dock"), []string{"-exec-vina"}); err == nil {
		t.Fatalf("expected validation error without -receptor")
	}
	opt, err := ParseDock(newFS(t, "peprank-dock"), []string{"-exec-vina", "-receptor", "r.pdbqt"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.Timeout != 10*time.Minute {
		t.Fatalf("default timeout %v", opt.Timeout)
	}
}

func TestParseEmptyDataDirRejected(t *testing.T) {
	if _, err := ParseRun(newFS(t, "peprank"), []string{"--data", ""}); err == nil {
		t.Fatalf("expected empty --data to be rejected")
	}
}
