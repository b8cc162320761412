// core/score/score.go
package score

import (
	"errors"
	"math"
	"sort"

	"peprank-core/fasta"
	"peprank-core/pepprop"
	"peprank-core/vina"
)

// Composite score weights (lower composite = better candidate).
const (
	ChargeWeight = 0.1
	HydroWeight  = 0.2
)

// ErrUnordered is returned by Select when its input is not in ascending
// composite-score order. Selection is a pure slice over an already-ranked
// set; a violated precondition would silently pick the wrong top-N.
var ErrUnordered = errors.New("variants are not in ascending composite-score order")

// Variant is one fully scored library entry.
type Variant struct {
	VariantID         string
	Sequence          string
	DockingScore      float64
	DockingReal       bool
	NetCharge         float64
	AvgHydrophobicity float64
	Length            int
	Composite         float64
	Rank              int
}

// Composite combines a docking score with sequence-derived penalty terms.
// Only the magnitudes of charge and hydrophobicity matter.
func Composite(docking float64, p pepprop.PropertySet) float64 {
	return docking + ChargeWeight*math.Abs(p.NetCharge) + HydroWeight*math.Abs(p.AvgHydrophobicity)
}

// Rank joins the library with docking scores and a property calculator and
// returns the fully ordered variant set. The library defines the candidate
// universe: every library id yields exactly one Variant, defaulting to the
// placeholder docking score when no real score exists; docking entries for
// unknown ids are dropped (see Unmatched). The order is a single stable
// ascending sort by composite score over library insertion order, and Rank
// fields are 1-based row positions. Downstream stages must not re-sort.
func Rank(lib *fasta.Library, docking []vina.Score, props pepprop.Func) []Variant {
	byID := make(map[string]vina.Score, len(docking))
	for _, d := range docking {
		byID[d.VariantID] = d
	}

	variants := make([]Variant, 0, lib.Len())
	for _, id := range lib.IDs() {
		seq, _ := lib.Seq(id)
		d, ok := byID[id]
		if !ok {
			d = vina.Score{VariantID: id, Value: vina.Placeholder, Real: false}
		}
		p := props(seq)
		variants = append(variants, Variant{
			VariantID:         id,
			Sequence:          seq,
			DockingScore:      d.Value,
			DockingReal:       d.Real,
			NetCharge:         p.NetCharge,
			AvgHydrophobicity: p.AvgHydrophobicity,
			Length:            p.Length,
			Composite:         Composite(d.Value, p),
		})
	}

	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Composite < variants[j].Composite
	})
	for i := range variants {
		variants[i].Rank = i + 1
	}
	return variants
}

// Unmatched returns the docking variant ids that have no library entry, in
// input order. These are dropped from scoring; callers surface the count.
func Unmatched(lib *fasta.Library, docking []vina.Score) []string {
	var missing []string
	for _, d := range docking {
		if _, ok := lib.Seq(d.VariantID); !ok {
			missing = append(missing, d.VariantID)
		}
	}
	return missing
}

// Select returns the top-n slice of an already-ranked variant set. n <= 0
// yields an empty selection and n beyond the set length yields the whole
// set. The ascending-order precondition is verified, not trusted.
func Select(ranked []Variant, n int) ([]Variant, error) {
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Composite > ranked[i].Composite {
			return nil, ErrUnordered
		}
	}
	if n <= 0 {
		return nil, nil
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n], nil
}
