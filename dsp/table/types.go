package table

import (
	"fmt"
	"math"
	"strings"

	"github.com/mjibson/go-dsp/window"
)

// Type names a built-in table shape.
type Type int

const (
	Sine Type = iota
	Cosine
	Triangle
	Saw
	Square
	Pulse
	Hann
	Hamming
	Blackman
	Bartlett
	FlatTop
	Rectangular
)

var typeNames = [...]string{
	Sine:        "sine",
	Cosine:      "cosine",
	Triangle:    "triangle",
	Saw:         "saw",
	Square:      "square",
	Pulse:       "pulse",
	Hann:        "hann",
	Hamming:     "hamming",
	Blackman:    "blackman",
	Bartlett:    "bartlett",
	FlatTop:     "flattop",
	Rectangular: "rectangular",
}

// String returns the type name.
func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Waveform reports whether t is a periodic waveform rather than a window.
func (t Type) Waveform() bool {
	return t >= Sine && t <= Pulse
}

// ParseType maps a type name to its Type.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Types returns all built-in types in declaration order.
func Types() []Type {
	out := make([]Type, len(typeNames))
	for i := range out {
		out[i] = Type(i)
	}
	return out
}

func generator(t Type) (func(int) []float64, error) {
	switch t {
	case Sine:
		return periodic(func(ph float64) float64 { return math.Sin(2 * math.Pi * ph) }), nil
	case Cosine:
		return periodic(func(ph float64) float64 { return math.Cos(2 * math.Pi * ph) }), nil
	case Triangle:
		return periodic(triangle), nil
	case Saw:
		return periodic(func(ph float64) float64 { return 2*ph - 1 }), nil
	case Square:
		return periodic(func(ph float64) float64 {
			if ph < 0.5 {
				return 1
			}
			return -1
		}), nil
	case Pulse:
		return periodic(func(ph float64) float64 {
			if ph == 0 {
				return 1
			}
			return 0
		}), nil
	case Hann:
		return window.Hann, nil
	case Hamming:
		return window.Hamming, nil
	case Blackman:
		return window.Blackman, nil
	case Bartlett:
		return window.Bartlett, nil
	case FlatTop:
		return window.FlatTop, nil
	case Rectangular:
		return window.Rectangular, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, t)
	}
}

func periodic(fn func(float64) float64) func(int) []float64 {
	return func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = fn(float64(i) / float64(n))
		}
		return out
	}
}

// triangle starts at 0, peaks at a quarter period and bottoms out at three
// quarters, in phase with the sine.
func triangle(ph float64) float64 {
	switch {
	case ph < 0.25:
		return 4 * ph
	case ph < 0.75:
		return 2 - 4*ph
	default:
		return 4*ph - 4
	}
}
