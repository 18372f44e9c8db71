package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestFinite(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0.5, want: 0.5},
		{in: math.NaN(), want: 0},
		{in: math.Inf(1), want: 0},
		{in: math.Inf(-1), want: 0},
		{in: -math.MaxFloat64, want: -math.MaxFloat64},
	}

	for _, tt := range tests {
		if got := Finite(tt.in); got != tt.want {
			t.Fatalf("Finite(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := Finite(float32(math.Inf(1))); got != 0 {
		t.Fatalf("Finite(float32 +Inf) = %v, want 0", got)
	}
}

func TestFrac(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: 0, want: 0},
		{in: 0.25, want: 0.25},
		{in: 3.5, want: 0.5},
		{in: -0.25, want: 0.75},
		{in: -1, want: 0},
	}

	for _, tt := range tests {
		if got := Frac(tt.in); got != tt.want {
			t.Fatalf("Frac(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := Frac(-1e-20); got < 0 || got >= 1 {
		t.Fatalf("Frac(-1e-20) = %v, want value in [0,1)", got)
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}
