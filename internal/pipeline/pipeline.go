// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"peprank/internal/artifact"
	"peprank/internal/manifest"
	"peprank/internal/output"

	"peprank-core/fasta"
	"peprank-core/pepprop"
	"peprank-core/refine"
	"peprank-core/score"
	"peprank-core/vina"
)

// Paths names every artifact one pipeline run touches. Each stage reads
// fully materialized files and overwrites its outputs whole, so re-running
// a stage on unchanged inputs is idempotent.
type Paths struct {
	Library       string
	DockingRoot   string
	DockingCSV    string
	ScoredCSV     string
	SelectedCSV   string
	SelectedFASTA string
	RefinedCSV    string
}

// DefaultPaths lays the artifacts out under dataDir the way the stage
// tools expect to find each other's outputs.
func DefaultPaths(dataDir string) Paths {
	return Paths{
		Library:       filepath.Join(dataDir, "library.fasta"),
		DockingRoot:   filepath.Join(dataDir, "docking"),
		DockingCSV:    filepath.Join(dataDir, "docking_results.csv"),
		ScoredCSV:     filepath.Join(dataDir, "scored_variants.csv"),
		SelectedCSV:   filepath.Join(dataDir, "selected_variants.csv"),
		SelectedFASTA: filepath.Join(dataDir, "selected_variants.fasta"),
		RefinedCSV:    filepath.Join(dataDir, "refined_variants.csv"),
	}
}

// record appends a provenance row; manifest failures are warnings, never
// stage failures.
func record(log *slog.Logger, rec *manifest.Recorder, stage string, in, out []string, rows int, started time.Time) {
	if err := rec.Record(stage, in, out, rows, started); err != nil {
		log.Warn("manifest record failed", "stage", stage, "err", err)
	}
}

// CollectDocking scans the per-variant docking directories and writes the
// docking-results artifact. A missing root is a soft condition: docking
// may legitimately not have run yet, and scoring still works on
// placeholders.
func CollectDocking(log *slog.Logger, rec *manifest.Recorder, root, outCSV string) ([]vina.Score, error) {
	started := time.Now()
	scores, err := vina.Collect(root)
	if err != nil {
		if !vina.IsMissingRoot(err) {
			return nil, err
		}
		log.Warn("docking root not found; later stages will use placeholder scores", "root", root)
		scores = nil
	}
	switch {
	case len(scores) == 0:
		log.Warn("no docking variant directories found", "root", root)
	case !vina.AnyReal(scores):
		log.Info("no real docking logs detected; ranking will be sequence-property-driven only", "variants", len(scores))
	default:
		real := 0
		for _, s := range scores {
			if s.Real {
				real++
			}
		}
		log.Info("docking scores collected", "variants", len(scores), "real", real)
	}

	written, err := artifact.WriteDocking(outCSV, scores)
	if err != nil {
		return nil, err
	}
	if !written {
		log.Warn("no docking results to write", "path", outCSV)
	} else {
		log.Info("docking results written", "path", outCSV, "rows", len(scores))
	}
	record(log, rec, "dock-collect", []string{root}, []string{outCSV}, len(scores), started)
	return scores, nil
}

// ScoreVariants joins the library, the docking artifact and the property
// calculator into the ranked variant artifact. A missing library is a
// hard failure (it defines the candidate universe); a missing docking
// artifact degrades to all-placeholder scores.
func ScoreVariants(log *slog.Logger, rec *manifest.Recorder, libraryPath, dockingCSV, outCSV string, props pepprop.Func) ([]score.Variant, error) {
	started := time.Now()

	lib, err := fasta.ReadLibrary(libraryPath)
	if err != nil {
		return nil, fmt.Errorf("sequence library: %w", err)
	}
	if n := lib.Overwrites(); n > 0 {
		log.Warn("duplicate ids in library; last entry wins", "path", libraryPath, "overwritten", n)
	}

	docking, skipped, err := artifact.ReadDocking(dockingCSV)
	if err != nil {
		if !artifact.IsNotFound(err) {
			return nil, err
		}
		log.Warn("docking results not found; scoring on sequence properties only", "path", dockingCSV)
	}
	if skipped > 0 {
		log.Warn("docking rows with unparseable scores skipped", "path", dockingCSV, "rows", skipped)
	}
	if un := score.Unmatched(lib, docking); len(un) > 0 {
		log.Warn("docking entries without a library sequence dropped", "variants", len(un))
	}

	ranked := score.Rank(lib, docking, props)
	written, err := artifact.WriteScored(outCSV, ranked)
	if err != nil {
		return nil, err
	}
	if !written {
		log.Warn("no variants to score", "library", libraryPath)
	} else {
		log.Info("scored variants written", "path", outCSV, "rows", len(ranked))
	}
	record(log, rec, "score", []string{libraryPath, dockingCSV}, []string{outCSV}, len(ranked), started)
	return ranked, nil
}

// SelectVariants takes the top-n slice of the ranked artifact and writes
// the tabular and sequence-only exports. The ranked input must already be
// in ascending composite order; selection never re-sorts.
func SelectVariants(log *slog.Logger, rec *manifest.Recorder, scoredCSV string, topN int, outCSV, outFASTA string) ([]score.Variant, error) {
	started := time.Now()

	ranked, coerced, err := artifact.ReadScored(scoredCSV)
	if err != nil {
		return nil, fmt.Errorf("scored variants: %w", err)
	}
	if coerced > 0 {
		log.Warn("numeric fields coerced to zero while reading scored variants", "path", scoredCSV, "fields", coerced)
	}

	selected, err := score.Select(ranked, topN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", scoredCSV, err)
	}
	if len(selected) == 0 {
		log.Warn("no variants selected; nothing to write", "top", topN)
		record(log, rec, "select", []string{scoredCSV}, nil, 0, started)
		return nil, nil
	}

	if _, err := artifact.WriteScored(outCSV, selected); err != nil {
		return nil, err
	}
	if err := writeFASTA(outFASTA, selected); err != nil {
		return nil, err
	}
	log.Info("selected variants written", "csv", outCSV, "fasta", outFASTA, "rows", len(selected))
	record(log, rec, "select", []string{scoredCSV}, []string{outCSV, outFASTA}, len(selected), started)
	return selected, nil
}

// RefineVariants applies the deterministic post-hoc adjustment to the
// selected subset. A missing selected artifact is a soft no-op: selection
// may not have run, or may have selected nothing.
func RefineVariants(log *slog.Logger, rec *manifest.Recorder, selectedCSV, outCSV string) (int, error) {
	started := time.Now()

	selected, coerced, err := artifact.ReadScored(selectedCSV)
	if err != nil {
		if artifact.IsNotFound(err) {
			log.Warn("selected variants not found; nothing to refine", "path", selectedCSV)
			return 0, nil
		}
		return 0, err
	}
	if coerced > 0 {
		log.Warn("bad composite scores coerced to zero before refinement", "path", selectedCSV, "fields", coerced)
	}

	refined := refine.Apply(selected)
	written, err := artifact.WriteRefined(outCSV, refined)
	if err != nil {
		return 0, err
	}
	if !written {
		log.Warn("no records to refine", "path", selectedCSV)
	} else {
		log.Info("refined scores written", "path", outCSV, "rows", len(refined))
	}
	record(log, rec, "refine", []string{selectedCSV}, []string{outCSV}, len(refined), started)
	return len(refined), nil
}

// Run executes the four core stages in order. Stage boundaries are the
// persisted artifacts: each stage rereads its input file even inside one
// process, so a full run behaves exactly like the standalone tools.
func Run(ctx context.Context, log *slog.Logger, rec *manifest.Recorder, p Paths, topN int, props pepprop.Func) error {
	stages := []func() error{
		func() error { _, err := CollectDocking(log, rec, p.DockingRoot, p.DockingCSV); return err },
		func() error { _, err := ScoreVariants(log, rec, p.Library, p.DockingCSV, p.ScoredCSV, props); return err },
		func() error {
			_, err := SelectVariants(log, rec, p.ScoredCSV, topN, p.SelectedCSV, p.SelectedFASTA)
			return err
		},
		func() error { _, err := RefineVariants(log, rec, p.SelectedCSV, p.RefinedCSV); return err },
	}
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := stage(); err != nil {
			return err
		}
	}
	return nil
}

func writeFASTA(path string, list []score.Variant) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := output.WriteSelectedFASTA(fh, list); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}
