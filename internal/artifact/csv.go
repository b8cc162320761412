// internal/artifact/csv.go
package artifact

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"peprank-core/refine"
	"peprank-core/score"
	"peprank-core/vina"
)

// Canonical column sets for the CSV artifacts. Keep these as the single
// source of truth for both writers and readers.
var (
	DockingHeader = []string{"variant_id", "docking_score"}
	ScoredHeader  = []string{
		"rank", "variant_id", "sequence", "docking_score",
		"net_charge", "avg_hydrophobicity", "length", "composite_score",
	}
	RefinedHeader = append(append([]string{}, ScoredHeader...), "refined_composite_score")
)

// f3 serializes every float field with fixed 3-decimal precision.
func f3(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }

// writeCSV materializes header+rows at path, overwriting any previous
// artifact. Line endings are "\n" regardless of platform.
func writeCSV(path string, header []string, rows [][]string) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(fh)
	if err := w.Write(header); err != nil {
		_ = fh.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		_ = fh.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}

// readCSV returns the data rows of the artifact at path (header skipped).
// A missing file is reported as *NotFoundError.
func readCSV(path string, wantCols int) ([][]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	r := csv.NewReader(fh)
	r.FieldsPerRecord = wantCols
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[1:], nil
}

// WriteDocking writes the docking-results artifact. An empty batch writes
// nothing and reports written=false so the caller can warn; downstream
// must treat "file absent" and "no data rows" identically.
func WriteDocking(path string, scores []vina.Score) (written bool, err error) {
	if len(scores) == 0 {
		return false, nil
	}
	rows := make([][]string, len(scores))
	for i, s := range scores {
		rows[i] = []string{s.VariantID, f3(s.Value)}
	}
	return true, writeCSV(path, DockingHeader, rows)
}

// ReadDocking loads the docking-results artifact. Rows whose score does
// not parse are skipped (row-scoped recovery); skipped reports how many.
func ReadDocking(path string) (scores []vina.Score, skipped int, err error) {
	rows, err := readCSV(path, len(DockingHeader))
	if err != nil {
		return nil, 0, err
	}
	for _, row := range rows {
		v, perr := strconv.ParseFloat(row[1], 64)
		if perr != nil {
			skipped++
			continue
		}
		scores = append(scores, vina.Score{VariantID: row[0], Value: v, Real: true})
	}
	return scores, skipped, nil
}

// WriteScored writes the ranked variant artifact (also used for the
// selected subset, which shares its columns). Empty sets are a no-op.
func WriteScored(path string, variants []score.Variant) (written bool, err error) {
	if len(variants) == 0 {
		return false, nil
	}
	rows := make([][]string, len(variants))
	for i, v := range variants {
		rows[i] = scoredRow(v)
	}
	return true, writeCSV(path, ScoredHeader, rows)
}

func scoredRow(v score.Variant) []string {
	return []string{
		strconv.Itoa(v.Rank), v.VariantID, v.Sequence, f3(v.DockingScore),
		f3(v.NetCharge), f3(v.AvgHydrophobicity), strconv.Itoa(v.Length), f3(v.Composite),
	}
}

// ReadScored loads a ranked (or selected) variant artifact. Unparseable
// numeric fields are coerced to zero rather than failing the batch;
// coerced reports how many fields needed that.
func ReadScored(path string) (variants []score.Variant, coerced int, err error) {
	rows, err := readCSV(path, len(ScoredHeader))
	if err != nil {
		return nil, 0, err
	}
	num := func(s string) float64 {
		v, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			coerced++
			return 0
		}
		return v
	}
	for _, row := range rows {
		variants = append(variants, score.Variant{
			Rank:              int(num(row[0])),
			VariantID:         row[1],
			Sequence:          row[2],
			DockingScore:      num(row[3]),
			DockingReal:       true,
			NetCharge:         num(row[4]),
			AvgHydrophobicity: num(row[5]),
			Length:            int(num(row[6])),
			Composite:         num(row[7]),
		})
	}
	return variants, coerced, nil
}

// WriteRefined writes the refined artifact: selected columns plus the
// refined composite score. Empty sets are a no-op.
func WriteRefined(path string, rows []refine.Refined) (written bool, err error) {
	if len(rows) == 0 {
		return false, nil
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append(scoredRow(r.Variant), f3(r.RefinedComposite))
	}
	return true, writeCSV(path, RefinedHeader, out)
}
