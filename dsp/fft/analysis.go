package fft

import "github.com/cwbudde/algo-ugen/internal/vecmath"

// MagnitudeSpectrum returns the magnitude of each bin of spec. It
// allocates and is intended for analysis rather than per-block work.
func MagnitudeSpectrum(spec []complex128) []float64 {
	re, im := split(spec)
	out := make([]float64, len(spec))
	vecmath.Magnitude(out, re, im)
	return out
}

// PowerSpectrum returns the squared magnitude of each bin of spec.
func PowerSpectrum(spec []complex128) []float64 {
	re, im := split(spec)
	out := make([]float64, len(spec))
	vecmath.Power(out, re, im)
	return out
}

// Energy returns the sum of squared magnitudes of spec.
func Energy(spec []complex128) float64 {
	return vecmath.Sum(PowerSpectrum(spec))
}

func split(spec []complex128) (re, im []float64) {
	re = make([]float64, len(spec))
	im = make([]float64, len(spec))
	for i, c := range spec {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im
}
