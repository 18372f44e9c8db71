package eq

import (
	"math"

	"github.com/cwbudde/algo-ugen/dsp/core"
)

// Filter is one equaliser band. It is not safe for concurrent use.
type Filter[S core.Sample] struct {
	sampleRate float64
	out        []S

	z0, z1 float64

	freq, bw float64
	d, a     float64
	primed   bool
}

// New returns an equaliser band with zero state.
func New[S core.Sample](cfg core.Config) (*Filter[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Filter[S]{
		sampleRate: cfg.SampleRate,
		out:        make([]S, cfg.VectorSize),
	}, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter[S]) SampleRate() float64 { return f.sampleRate }

// Reset clears the allpass state.
func (f *Filter[S]) Reset() {
	f.z0, f.z1 = 0, 0
}

// ProcessSample equalises one sample. gain is linear, freq and bw are in Hz.
func (f *Filter[S]) ProcessSample(x, gain, freq, bw float64) float64 {
	if !f.primed || freq != f.freq || bw != f.bw {
		f.setCoefficients(freq, bw)
	}

	x = core.Finite(x)
	k := f.d * (1 + f.a)

	w := x + k*f.z0 - f.a*f.z1
	y := w*f.a - k*f.z0 + f.z1
	f.z1 = f.z0
	f.z0 = core.FlushDenormals(w)

	return 0.5 * (y + x + core.Finite(gain)*(x-y))
}

// Process equalises in into an internal buffer and returns it. len(in) must
// not exceed the vector size.
func (f *Filter[S]) Process(in []S, gain, freq, bw S) ([]S, error) {
	if err := core.CheckBlock[S](len(in), len(f.out)); err != nil {
		return nil, err
	}
	out := f.out[:len(in)]
	f.run(out, in, gain, freq, bw)
	return out, nil
}

// ProcessTo equalises src into dst. dst may alias src.
func (f *Filter[S]) ProcessTo(dst, src []S, gain, freq, bw S) error {
	if len(dst) != len(src) {
		return core.ErrLengthMismatch
	}
	f.run(dst, src, gain, freq, bw)
	return nil
}

func (f *Filter[S]) run(dst, src []S, gain, freq, bw S) {
	g, fr, b := float64(gain), float64(freq), float64(bw)
	for i, x := range src {
		dst[i] = S(f.ProcessSample(float64(x), g, fr, b))
	}
}

func (f *Filter[S]) setCoefficients(freq, bw float64) {
	f.freq, f.bw, f.primed = freq, bw, true

	nyquist := f.sampleRate / 2
	fr := core.Clamp(core.Finite(freq), 1e-3, 0.998*nyquist)
	b := core.Clamp(core.Finite(bw), 1e-3, 0.998*nyquist)

	c := math.Tan(math.Pi * b / f.sampleRate)
	f.d = math.Cos(2 * math.Pi * fr / f.sampleRate)
	f.a = (1 - c) / (1 + c)
}
