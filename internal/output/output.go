// internal/output/output.go
package output

import (
	"fmt"
	"io"

	"peprank-core/score"
)

// SummaryHeader is the canonical header for the stdout summary table.
const SummaryHeader = "rank\tvariant_id\tcomposite_score\tdocking_score\tlength"

// WriteSelectedFASTA writes the sequence-only export for the selected
// subset. The header line embeds the composite and docking scores so the
// record is traceable without the tabular artifact.
func WriteSelectedFASTA(w io.Writer, list []score.Variant) error {
	for _, v := range list {
		if _, err := fmt.Fprintf(w, ">%s|composite=%.3f|dock=%.3f\n%s\n",
			v.VariantID, v.Composite, v.DockingScore, v.Sequence); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummaryFunc maps a summary format name to its writer. Unknown
// formats fall back to text; the CLI validates before this point.
func WriteSummaryFunc(format string) func(io.Writer, []score.Variant) error {
	if format == "json" {
		return WriteJSON
	}
	return func(w io.Writer, list []score.Variant) error {
		return WriteSummary(w, list, true)
	}
}

// WriteSummary prints one line per variant to the operator's stdout.
func WriteSummary(w io.Writer, list []score.Variant, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, SummaryHeader); err != nil {
			return err
		}
	}
	for _, v := range list {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%.3f\t%.3f\t%d\n",
			v.Rank, v.VariantID, v.Composite, v.DockingScore, v.Length); err != nil {
			return err
		}
	}
	return nil
}
