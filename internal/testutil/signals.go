package testutil

import (
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-ugen/dsp/core"
)

// DeterministicSine returns length samples of amplitude*sin(2*pi*freqHz*n/sampleRate).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	w := 2 * math.Pi * freqHz / sampleRate
	for n := range out {
		out[n] = amplitude * math.Sin(w*float64(n))
	}
	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude). The
// same seed always yields the same samples.
func DeterministicNoise(seed uint64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewPCG(seed, ^seed))
	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// Impulse returns a unit impulse at pos. A pos outside [0, length) yields
// silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC returns a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for n := range out {
		out[n] = value
	}
	return out
}

// Ones is DC(1, n).
func Ones(n int) []float64 {
	return DC(1, n)
}

// Convert returns a copy of x in the sample type S.
func Convert[S core.Sample](x []float64) []S {
	out := make([]S, len(x))
	for i, v := range x {
		out[i] = S(v)
	}
	return out
}

// Blocks splits x into consecutive blocks of size n, the last one
// possibly shorter. The blocks alias x.
func Blocks[S core.Sample](x []S, n int) [][]S {
	var out [][]S
	for len(x) > 0 {
		k := min(n, len(x))
		out = append(out, x[:k])
		x = x[k:]
	}
	return out
}
