package biquad

import (
	"math/cmplx"
	"testing"
)

func TestPolesAndZerosFromRoots(t *testing.T) {
	p := complex(0.72, 0.19)
	z := complex(0.31, 0.44)
	g := 2.3

	c := Coefficients{
		B0: g,
		B1: -g * 2 * real(z),
		B2: g * real(z*cmplx.Conj(z)),
		A1: -2 * real(p),
		A2: real(p * cmplx.Conj(p)),
	}

	pair := c.PoleZeroPair()
	if !sameRoots(pair.Poles, p, cmplx.Conj(p)) {
		t.Fatalf("poles = %v, want %v and conjugate", pair.Poles, p)
	}
	if !sameRoots(pair.Zeros, z, cmplx.Conj(z)) {
		t.Fatalf("zeros = %v, want %v and conjugate", pair.Zeros, z)
	}
}

func TestFirstOrderRoots(t *testing.T) {
	c := Coefficients{B0: 1, B1: -0.3, A1: -0.8}
	if p := c.Poles(); !sameRoots(p, 0.8, 0) {
		t.Fatalf("poles = %v", p)
	}
	if z := c.Zeros(); !sameRoots(z, 0.3, 0) {
		t.Fatalf("zeros = %v", z)
	}
	if z := (&Coefficients{}).Zeros(); z != [2]complex128{} {
		t.Fatalf("zeros of empty numerator = %v", z)
	}
}

func TestStable(t *testing.T) {
	tests := []struct {
		name string
		c    Coefficients
		want bool
	}{
		{"smooth", smooth, true},
		{"passthrough", Coefficients{B0: 1}, true},
		{"unit circle", Coefficients{B0: 1, A2: 1}, false},
		{"real pole outside", Coefficients{B0: 1, A1: -2.1, A2: 1.05}, false},
		{"real pole at 1", Coefficients{B0: 1, A1: -1}, false},
		{"narrow reson", Reson(1000, 1, 48000), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Stable(); got != tc.want {
				t.Fatalf("Stable() = %v, want %v (radius %v)", got, tc.want, tc.c.PoleRadius())
			}
			if tc.want && tc.c.PoleRadius() >= 1 {
				t.Fatalf("stable section with pole radius %v", tc.c.PoleRadius())
			}
		})
	}
}

func sameRoots(got [2]complex128, a, b complex128) bool {
	const tol = 1e-12
	near := func(x, y complex128) bool { return cmplx.Abs(x-y) <= tol }
	return (near(got[0], a) && near(got[1], b)) || (near(got[0], b) && near(got[1], a))
}
