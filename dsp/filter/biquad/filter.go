package biquad

import (
	"errors"

	"github.com/cwbudde/algo-ugen/dsp/core"
)

// ErrNoDesign is returned when a filter is built without a design.
var ErrNoDesign = errors.New("biquad: design is nil")

// Filter runs a Design over blocks of samples. It is not safe for concurrent
// use.
type Filter[S core.Sample] struct {
	sampleRate float64
	design     Design
	sec        Section
	out        []S

	freq, bw float64
	primed   bool
}

// New returns a filter that computes its coefficients with design.
func New[S core.Sample](cfg core.Config, design Design) (*Filter[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if design == nil {
		return nil, ErrNoDesign
	}

	return &Filter[S]{
		sampleRate: cfg.SampleRate,
		design:     design,
		out:        make([]S, cfg.VectorSize),
	}, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter[S]) SampleRate() float64 { return f.sampleRate }

// Coefficients returns the coefficients used for the last sample.
func (f *Filter[S]) Coefficients() Coefficients { return f.sec.Coefficients }

// SetDesign swaps the design. The state is kept, the coefficients are
// recomputed on the next sample.
func (f *Filter[S]) SetDesign(design Design) error {
	if design == nil {
		return ErrNoDesign
	}
	f.design = design
	f.primed = false
	return nil
}

// Reset clears the section state.
func (f *Filter[S]) Reset() {
	f.sec.Reset()
}

// ProcessSample filters one sample with the given frequency and bandwidth.
func (f *Filter[S]) ProcessSample(x, freq, bw float64) float64 {
	if !f.primed || freq != f.freq || bw != f.bw {
		f.freq, f.bw, f.primed = freq, bw, true
		f.sec.Coefficients = f.design(core.Finite(freq), core.Finite(bw), f.sampleRate)
	}

	return f.sec.ProcessSample(core.Finite(x))
}

// Process filters in into an internal buffer and returns it. len(in) must
// not exceed the vector size.
func (f *Filter[S]) Process(in []S, freq, bw core.Control[S]) ([]S, error) {
	if err := core.CheckBlock(len(in), len(f.out), freq, bw); err != nil {
		return nil, err
	}
	out := f.out[:len(in)]
	f.run(out, in, freq, bw)
	return out, nil
}

// ProcessTo filters src into dst. dst may alias src.
func (f *Filter[S]) ProcessTo(dst, src []S, freq, bw core.Control[S]) error {
	if len(dst) != len(src) {
		return core.ErrLengthMismatch
	}
	if err := core.CheckBlock(len(src), 0, freq, bw); err != nil {
		return err
	}
	f.run(dst, src, freq, bw)
	return nil
}

func (f *Filter[S]) run(dst, src []S, freq, bw core.Control[S]) {
	for i, x := range src {
		dst[i] = S(f.ProcessSample(float64(x), float64(freq.At(i)), float64(bw.At(i))))
	}
}
