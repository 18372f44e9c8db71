package testutil

import (
	"math"
	"testing"
)

func TestRequireSliceNearlyEqualPasses(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2, 3}, []float64{1, 2, 3 + 1e-12}, 1e-9)
	RequireSliceNearlyEqual(t, []float32{0.5}, []float32{0.5}, 0)
}

func TestRequireFinitePasses(t *testing.T) {
	RequireFinite(t, []float64{0, -1, 1e300})
	RequireBounded(t, []float32{0.5, -0.75}, 1)
}

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	if d != 1 {
		t.Fatalf("MaxAbsDiff = %v, want 1", d)
	}

	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestRMS(t *testing.T) {
	if got := RMS([]float64{1, -1, 1, -1}); got != 1 {
		t.Fatalf("RMS = %v, want 1", got)
	}
	sine := DeterministicSine(1000, 48000, 1, 4800)
	if got := RMS(sine); math.Abs(got-1/math.Sqrt2) > 1e-3 {
		t.Fatalf("sine RMS = %v, want %v", got, 1/math.Sqrt2)
	}
	if RMS([]float32{}) != 0 {
		t.Fatal("empty RMS should be 0")
	}
}
