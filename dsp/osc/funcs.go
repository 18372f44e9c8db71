package osc

import "math"

// Func maps a phase in [0, 1) to a sample value.
type Func func(phase float64) float64

// Sine returns sin(2*pi*phase).
func Sine(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

// Cosine returns cos(2*pi*phase).
func Cosine(phase float64) float64 {
	return math.Cos(2 * math.Pi * phase)
}

// Phase returns the phase itself, a rising ramp from 0 to 1.
func Phase(phase float64) float64 {
	return phase
}

// Saw returns a rising ramp from -1 to 1. It is not band-limited.
func Saw(phase float64) float64 {
	return 2*phase - 1
}

// Square returns 1 for the first half period and -1 for the second.
// It is not band-limited.
func Square(phase float64) float64 {
	if phase < 0.5 {
		return 1
	}
	return -1
}

// Triangle returns a triangle in phase with Sine. It is not band-limited.
func Triangle(phase float64) float64 {
	switch {
	case phase < 0.25:
		return 4 * phase
	case phase < 0.75:
		return 2 - 4*phase
	default:
		return 4*phase - 4
	}
}
