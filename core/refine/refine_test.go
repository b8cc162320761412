package refine

import (
	"testing"

	"peprank-core/score"
)

func TestAdjustExact(t *testing.T) {
	if got := Adjust(3.456); got != 3.356 {
		t.Fatalf("Adjust(3.456) = %v, want 3.356", got)
	}
	if got := Adjust(0); got != -0.1 {
		t.Fatalf("Adjust(0) = %v, want -0.1", got)
	}
}

func TestApplyCopiesWithoutMutation(t *testing.T) {
	sel := []score.Variant{
		{VariantID: "a", Composite: 3.456, Rank: 1},
		{VariantID: "b", Composite: -4.5, Rank: 2},
	}
	out := Apply(sel)
	if len(out) != 2 {
		t.Fatalf("expected 2 refined rows, got %d", len(out))
	}
	if out[0].RefinedComposite != 3.356 {
		t.Fatalf("refined = %v, want 3.356", out[0].RefinedComposite)
	}
	if out[1].RefinedComposite != -4.6 {
		t.Fatalf("refined = %v, want -4.6", out[1].RefinedComposite)
	}
	if sel[0].Composite != 3.456 {
		t.Fatalf("input mutated: %+v", sel[0])
	}
	if out[0].VariantID != "a" || out[0].Rank != 1 {
		t.Fatalf("variant fields not carried over: %+v", out[0])
	}
}

func TestApplyEmpty(t *testing.T) {
	if out := Apply(nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %d", len(out))
	}
}
