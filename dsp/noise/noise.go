// Package noise provides seeded noise generators: white noise, sample-and-hold
// or interpolated noise at a control rate, and triangular-PDF noise.
//
// Generators are deterministic: two generators with the same seed produce the
// same sequence, and Reset rewinds a generator to the start of its sequence.
package noise

import (
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-ugen/dsp/core"
)

// minRate bounds the period of rate-limited noise for non-positive rates.
const minRate = 1e-6

// Generator produces noise blocks of the configured vector size.
type Generator[S core.Sample] struct {
	sampleRate float64
	seed       uint64

	rng *rand.Rand

	held float64
	incr float64
	left int

	out []S
}

// New returns a generator seeded with seed.
func New[S core.Sample](cfg core.Config, seed uint64) (*Generator[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Generator[S]{
		sampleRate: cfg.SampleRate,
		seed:       seed,
		out:        make([]S, cfg.VectorSize),
	}
	g.Reset()

	return g, nil
}

// SampleRate returns the sample rate in Hz.
func (g *Generator[S]) SampleRate() float64 { return g.sampleRate }

// Seed returns the seed the generator restarts from on Reset.
func (g *Generator[S]) Seed() uint64 { return g.seed }

// Reset rewinds the generator to the start of its sequence.
func (g *Generator[S]) Reset() {
	g.rng = rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	g.held, g.incr, g.left = 0, 0, 0
}

// White returns one uniform value in [-1, 1).
func (g *Generator[S]) White() float64 {
	return 2*g.rng.Float64() - 1
}

// Process generates one block of white noise scaled by amp.
func (g *Generator[S]) Process(amp core.Control[S]) ([]S, error) {
	if err := g.ProcessTo(g.out, amp); err != nil {
		return nil, err
	}
	return g.out, nil
}

// ProcessTo writes len(dst) samples of white noise to dst.
func (g *Generator[S]) ProcessTo(dst []S, amp core.Control[S]) error {
	if err := core.CheckBlock(len(dst), 0, amp); err != nil {
		return err
	}

	for i := range dst {
		dst[i] = S(core.Finite(amp.At(i)) * g.White())
	}

	return nil
}

// ProcessRate generates one block of noise that draws a new value freq
// times per second. Between draws the output holds the last value, or with
// interp ramps linearly towards the next one.
func (g *Generator[S]) ProcessRate(amp, freq core.Control[S], interp bool) ([]S, error) {
	if err := g.ProcessRateTo(g.out, amp, freq, interp); err != nil {
		return nil, err
	}
	return g.out, nil
}

// ProcessRateTo writes len(dst) samples of rate-limited noise to dst.
func (g *Generator[S]) ProcessRateTo(dst []S, amp, freq core.Control[S], interp bool) error {
	if err := core.CheckBlock(len(dst), 0, amp, freq); err != nil {
		return err
	}

	for i := range dst {
		if g.left <= 0 {
			period := g.period(core.Finite(freq.At(i)))
			next := g.White()
			if interp {
				g.incr = (next - g.held) / float64(period)
			} else {
				g.held, g.incr = next, 0
			}
			g.left = period
		}
		g.left--
		g.held += g.incr

		dst[i] = S(core.Finite(amp.At(i)) * g.held)
	}

	return nil
}

// ProcessTPDF generates one block of triangular-PDF noise in [-amp, amp].
func (g *Generator[S]) ProcessTPDF(amp core.Control[S]) ([]S, error) {
	if err := g.ProcessTPDFTo(g.out, amp); err != nil {
		return nil, err
	}
	return g.out, nil
}

// ProcessTPDFTo writes len(dst) samples of triangular-PDF noise to dst.
func (g *Generator[S]) ProcessTPDFTo(dst []S, amp core.Control[S]) error {
	if err := core.CheckBlock(len(dst), 0, amp); err != nil {
		return err
	}

	for i := range dst {
		dst[i] = S(core.Finite(amp.At(i)) * g.triangular())
	}

	return nil
}

// triangular returns the difference of two uniform draws, a value in
// (-1, 1) with a triangular density.
func (g *Generator[S]) triangular() float64 {
	return g.rng.Float64() - g.rng.Float64()
}

func (g *Generator[S]) period(freq float64) int {
	if freq < minRate {
		freq = minRate
	}
	p := g.sampleRate / freq
	if p < 1 {
		return 1
	}
	if p > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(p)
}
