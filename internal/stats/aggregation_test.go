package stats

import (
	"math"
	"testing"
)

func TestMeanInts(t *testing.T) {
	if got := MeanInts([]int{140, 150, 160}); got != 150.0 {
		t.Fatalf("expected 150, got %v", got)
	}
	if got := MeanInts(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
}

func TestMaxInts(t *testing.T) {
	if got := MaxInts([]int{120, 181, 175}); got != 181 {
		t.Fatalf("expected 181, got %d", got)
	}
	if got := MaxInts(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %d", got)
	}
}

func TestMinAndMean(t *testing.T) {
	values := []float64{7.5, 6.25, 9}
	if got := Min(values); got != 6.25 {
		t.Errorf("Min = %v, want 6.25", got)
	}
	if got := Mean(values); math.Abs(got-22.75/3) > 1e-12 {
		t.Errorf("Mean = %v", got)
	}
}

func TestFinitePositive(t *testing.T) {
	got := FinitePositive([]float64{8, math.Inf(1), 0, -2, math.NaN(), 7})
	if len(got) != 2 || got[0] != 8 || got[1] != 7 {
		t.Fatalf("unexpected filter result: %v", got)
	}
}
