// internal/output/json.go
package output

import (
	"io"

	"peprank/internal/jsonutil"

	"peprank-core/score"
)

// variantJSON pins the wire field names to the CSV artifact vocabulary.
type variantJSON struct {
	Rank              int     `json:"rank"`
	VariantID         string  `json:"variant_id"`
	Sequence          string  `json:"sequence"`
	DockingScore      float64 `json:"docking_score"`
	DockingReal       bool    `json:"docking_real"`
	NetCharge         float64 `json:"net_charge"`
	AvgHydrophobicity float64 `json:"avg_hydrophobicity"`
	Length            int     `json:"length"`
	CompositeScore    float64 `json:"composite_score"`
}

// WriteJSON writes the variant set as an indented JSON array.
func WriteJSON(w io.Writer, list []score.Variant) error {
	rows := make([]variantJSON, len(list))
	for i, v := range list {
		rows[i] = variantJSON{
			Rank:              v.Rank,
			VariantID:         v.VariantID,
			Sequence:          v.Sequence,
			DockingScore:      v.DockingScore,
			DockingReal:       v.DockingReal,
			NetCharge:         v.NetCharge,
			AvgHydrophobicity: v.AvgHydrophobicity,
			Length:            v.Length,
			CompositeScore:    v.Composite,
		}
	}
	return jsonutil.EncodePretty(w, rows)
}
