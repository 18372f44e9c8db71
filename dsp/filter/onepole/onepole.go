package onepole

import (
	"math"

	"github.com/cwbudde/algo-ugen/dsp/core"
)

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	highpass bool
}

// WithHighpass makes the filter output the high-pass response x - lp.
func WithHighpass() Option {
	return func(cfg *config) error {
		cfg.highpass = true
		return nil
	}
}

// Filter is a TPT one-pole filter. It is not safe for concurrent use.
type Filter[S core.Sample] struct {
	sampleRate float64
	highpass   bool
	out        []S

	z float64

	cutoff float64
	g, a   float64
	bypass bool
}

// New returns a one-pole low-pass, or high-pass with WithHighpass.
func New[S core.Sample](cfg core.Config, opts ...Option) (*Filter[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var fc config
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&fc); err != nil {
			return nil, err
		}
	}

	f := &Filter[S]{
		sampleRate: cfg.SampleRate,
		highpass:   fc.highpass,
		out:        make([]S, cfg.VectorSize),
	}
	f.setCutoff(0)

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter[S]) SampleRate() float64 { return f.sampleRate }

// Highpass reports whether the filter outputs the high-pass response.
func (f *Filter[S]) Highpass() bool { return f.highpass }

// Cutoff returns the cutoff in effect for the last processed sample.
func (f *Filter[S]) Cutoff() float64 { return f.cutoff }

// Reset clears the integrator state.
func (f *Filter[S]) Reset() {
	f.z = 0
}

// ProcessSample filters one sample at the given cutoff in Hz.
func (f *Filter[S]) ProcessSample(x, cutoff float64) float64 {
	if cutoff != f.cutoff {
		f.setCutoff(cutoff)
	}

	x = core.Finite(x)

	var lp float64
	if f.bypass {
		lp = x
		f.z = 0
	} else {
		u := f.g * x
		lp = u + f.z
		f.z = core.FlushDenormals(u - f.a*lp)
	}

	if f.highpass {
		return x - lp
	}
	return lp
}

// Process filters in into an internal buffer and returns it. len(in) must
// not exceed the vector size.
func (f *Filter[S]) Process(in []S, cutoff core.Control[S]) ([]S, error) {
	if err := core.CheckBlock(len(in), len(f.out), cutoff); err != nil {
		return nil, err
	}
	out := f.out[:len(in)]
	f.run(out, in, cutoff)
	return out, nil
}

// ProcessTo filters src into dst. dst may alias src.
func (f *Filter[S]) ProcessTo(dst, src []S, cutoff core.Control[S]) error {
	if len(dst) != len(src) {
		return core.ErrLengthMismatch
	}
	if err := core.CheckBlock(len(src), 0, cutoff); err != nil {
		return err
	}
	f.run(dst, src, cutoff)
	return nil
}

func (f *Filter[S]) run(dst, src []S, cutoff core.Control[S]) {
	if !cutoff.IsVector() {
		c := float64(cutoff.Value())
		for i, x := range src {
			dst[i] = S(f.ProcessSample(float64(x), c))
		}
		return
	}

	for i, x := range src {
		dst[i] = S(f.ProcessSample(float64(x), float64(cutoff.At(i))))
	}
}

func (f *Filter[S]) setCutoff(cutoff float64) {
	f.cutoff = cutoff

	fc := core.Clamp(core.Finite(cutoff), 0, f.sampleRate/2)
	if fc >= f.sampleRate/2 {
		f.bypass = true
		return
	}

	f.bypass = false
	w := math.Tan(math.Pi * fc / f.sampleRate)
	f.g = w / (1 + w)
	f.a = (w - 1) / (1 + w)
}
