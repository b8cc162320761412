// core/refine/refine.go
package refine

import (
	"math"

	"peprank-core/score"
)

// Delta is the fixed deterministic adjustment standing in for a real
// physics-based refinement of the selected poses.
const Delta = 0.1

// Refined is a selected variant plus its adjusted composite score. The
// original variant is copied, never mutated.
type Refined struct {
	score.Variant
	RefinedComposite float64
}

// Adjust returns composite − Delta rounded to three decimals, matching
// the precision of every serialized score field.
func Adjust(composite float64) float64 {
	return math.Round((composite-Delta)*1000) / 1000
}

// Apply refines every selected variant unconditionally. It is total: a
// caller that coerced a bad composite value to 0.0 still gets a refined
// row rather than a failed batch.
func Apply(selected []score.Variant) []Refined {
	out := make([]Refined, len(selected))
	for i, v := range selected {
		out[i] = Refined{Variant: v, RefinedComposite: Adjust(v.Composite)}
	}
	return out
}
