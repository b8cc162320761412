package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"peprank/internal/logging"

	"peprank-core/pepprop"
)

const libraryFASTA = `>v_aaa|len=4 designed
KRKR
>v_bbb|len=4
GGGG
>v_ccc|len=4
DDDD
`

func setupData(t *testing.T, withLogs bool) (string, Paths) {
	t.Helper()
	dir := t.TempDir()
	p := DefaultPaths(dir)
	if err := os.WriteFile(p.Library, []byte(libraryFASTA), 0o644); err != nil {
		t.Fatalf("write library: %v", err)
	}
	if withLogs {
		for id, log := range map[string]string{
			"v_aaa": "REMARK VINA RESULT:  -6.500  0.0  0.0\n",
			"v_bbb": "REMARK VINA RESULT:  -5.000  0.0  0.0\n",
		} {
			vdir := filepath.Join(p.DockingRoot, id)
			if err := os.MkdirAll(vdir, 0o755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			if err := os.WriteFile(filepath.Join(vdir, "log.txt"), []byte(log), 0o644); err != nil {
				t.Fatalf("write log: %v", err)
			}
		}
	}
	return dir, p
}

func TestRunEndToEnd(t *testing.T) {
	_, p := setupData(t, true)
	log := logging.New(os.Stderr, true)

	if err := Run(context.Background(), log, nil, p, 2, pepprop.Compute); err != nil {
		t.Fatalf("run: %v", err)
	}

	scored, err := os.ReadFile(p.ScoredCSV)
	if err != nil {
		t.Fatalf("scored artifact missing: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(scored)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 scored rows, got %d lines", len(lines))
	}
	// v_ccc has no docking dir: placeholder score, so its row carries 0.000.
	var cccRow string
	for _, l := range lines[1:] {
		if strings.Contains(l, "v_ccc") {
			cccRow = l
		}
	}
	if cccRow == "" || !strings.Contains(cccRow, ",0.000,") {
		t.Fatalf("placeholder row missing: %q", cccRow)
	}

	selected, err := os.ReadFile(p.SelectedCSV)
	if err != nil {
		t.Fatalf("selected artifact missing: %v", err)
	}
	if got := len(strings.Split(strings.TrimSpace(string(selected)), "\n")); got != 3 {
		t.Fatalf("expected header + 2 selected rows, got %d lines", got)
	}

	fa, err := os.ReadFile(p.SelectedFASTA)
	if err != nil {
		t.Fatalf("selected fasta missing: %v", err)
	}
	if !strings.Contains(string(fa), "|composite=") || !strings.Contains(string(fa), "|dock=") {
		t.Fatalf("fasta headers lack traceability fields: %q", string(fa))
	}

	refined, err := os.ReadFile(p.RefinedCSV)
	if err != nil {
		t.Fatalf("refined artifact missing: %v", err)
	}
	if !strings.Contains(strings.Split(string(refined), "\n")[0], "refined_composite_score") {
		t.Fatalf("refined header wrong: %q", string(refined))
	}
}

func TestRunIdempotent(t *testing.T) {
	_, p := setupData(t, true)
	log := logging.New(os.Stderr, true)

	read := func() map[string][]byte {
		out := map[string][]byte{}
		for _, f := range []string{p.DockingCSV, p.ScoredCSV, p.SelectedCSV, p.SelectedFASTA, p.RefinedCSV} {
			b, err := os.ReadFile(f)
			if err != nil {
				t.Fatalf("read %s: %v", f, err)
			}
			out[f] = b
		}
		return out
	}

	if err := Run(context.Background(), log, nil, p, 2, pepprop.Compute); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := read()
	if err := Run(context.Background(), log, nil, p, 2, pepprop.Compute); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := read()
	for f, b := range first {
		if string(second[f]) != string(b) {
			t.Fatalf("artifact %s not byte-identical across runs", f)
		}
	}
}

func TestScoreMissingLibraryIsHardFailure(t *testing.T) {
	dir := t.TempDir()
	p := DefaultPaths(dir)
	log := logging.New(os.Stderr, true)
	if _, err := ScoreVariants(log, nil, p.Library, p.DockingCSV, p.ScoredCSV, pepprop.Compute); err == nil {
		t.Fatalf("missing library must fail scoring")
	}
}

func TestScoreMissingDockingDegrades(t *testing.T) {
	_, p := setupData(t, false)
	log := logging.New(os.Stderr, true)
	ranked, err := ScoreVariants(log, nil, p.Library, p.DockingCSV, p.ScoredCSV, pepprop.Compute)
	if err != nil {
		t.Fatalf("missing docking artifact must degrade softly: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked variants, got %d", len(ranked))
	}
	for _, v := range ranked {
		if v.DockingScore != 0 || v.DockingReal {
			t.Fatalf("expected placeholder docking for %s: %+v", v.VariantID, v)
		}
	}
}

func TestSelectTopZeroWritesNothing(t *testing.T) {
	_, p := setupData(t, false)
	log := logging.New(os.Stderr, true)
	if _, err := ScoreVariants(log, nil, p.Library, p.DockingCSV, p.ScoredCSV, pepprop.Compute); err != nil {
		t.Fatalf("score: %v", err)
	}
	sel, err := SelectVariants(log, nil, p.ScoredCSV, 0, p.SelectedCSV, p.SelectedFASTA)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(sel) != 0 {
		t.Fatalf("top 0 should select nothing, got %d", len(sel))
	}
	for _, f := range []string{p.SelectedCSV, p.SelectedFASTA} {
		if _, err := os.Stat(f); !os.IsNotExist(err) {
			t.Fatalf("%s should not exist, stat err=%v", f, err)
		}
	}
}

func TestSelectRejectsUnsortedArtifact(t *testing.T) {
	dir := t.TempDir()
	p := DefaultPaths(dir)
	raw := "rank,variant_id,sequence,docking_score,net_charge,avg_hydrophobicity,length,composite_score\n" +
		"1,a,KK,0.000,0.000,0.000,2,5.000\n" +
		"2,b,GG,0.000,0.000,0.000,2,1.000\n"
	if err := os.WriteFile(p.ScoredCSV, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	log := logging.New(os.Stderr, true)
	if _, err := SelectVariants(log, nil, p.ScoredCSV, 1, p.SelectedCSV, p.SelectedFASTA); err == nil {
		t.Fatalf("unsorted scored artifact must be rejected")
	}
}

func TestRefineMissingSelectedIsSoft(t *testing.T) {
	dir := t.TempDir()
	p := DefaultPaths(dir)
	log := logging.New(os.Stderr, true)
	n, err := RefineVariants(log, nil, p.SelectedCSV, p.RefinedCSV)
	if err != nil {
		t.Fatalf("missing selected artifact must be soft: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 refined rows, got %d", n)
	}
	if _, err := os.Stat(p.RefinedCSV); !os.IsNotExist(err) {
		t.Fatalf("refined artifact should not exist")
	}
}

func TestCollectMissingRootIsSoft(t *testing.T) {
	dir := t.TempDir()
	p := DefaultPaths(dir)
	log := logging.New(os.Stderr, true)
	scores, err := CollectDocking(log, nil, p.DockingRoot, p.DockingCSV)
	if err != nil {
		t.Fatalf("missing docking root must be soft: %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("expected no scores, got %d", len(scores))
	}
	if _, err := os.Stat(p.DockingCSV); !os.IsNotExist(err) {
		t.Fatalf("docking artifact should not be written for an empty batch")
	}
}
