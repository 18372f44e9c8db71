package twopole

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-ugen/dsp/core"
)

const (
	minDamping  = 1e-3
	maxDamping  = 4.0
	minFreqHz   = 1e-3
	maxFreqNorm = 0.499
	maxMix      = 2.0
)

// ErrNilDriveFunc is returned by WithDriveFunc for a nil function.
var ErrNilDriveFunc = errors.New("twopole: nil drive function")

type config struct {
	drive func(float64) float64
}

// Option configures a Filter.
type Option func(*config) error

// WithDriveFunc sets the saturator applied inside the integrators when
// drive > 0 (default math.Tanh).
func WithDriveFunc(fn func(float64) float64) Option {
	return func(cfg *config) error {
		if fn == nil {
			return ErrNilDriveFunc
		}
		cfg.drive = fn
		return nil
	}
}

// Outputs holds the three responses of one sample.
type Outputs struct {
	Lowpass, Bandpass, Highpass float64
}

// State holds the two integrator states for save/restore workflows.
type State struct {
	S0, S1 float64
}

// Filter is a two-pole state-variable filter. It is not safe for
// concurrent use.
type Filter[S core.Sample] struct {
	sampleRate float64
	out        []S
	shape      func(float64) float64

	state State

	lastFreq, lastDamp float64
	damp, w, fac       float64
}

// New returns a state-variable filter.
func New[S core.Sample](cfg core.Config, opts ...Option) (*Filter[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fc := config{drive: math.Tanh}
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
		out:        make([]S, cfg.VectorSize),
		shape:      fc.drive,
	}
	f.update(1000, 1)

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter[S]) SampleRate() float64 { return f.sampleRate }

// Reset clears the integrator states.
func (f *Filter[S]) Reset() {
	f.state = State{}
}

// State returns a copy of the integrator states.
func (f *Filter[S]) State() State {
	return f.state
}

// SetState restores saved integrator states. Non-finite values are zeroed.
func (f *Filter[S]) SetState(s State) {
	f.state = State{S0: core.Finite(s.S0), S1: core.Finite(s.S1)}
}

// Tick filters one sample and returns all three responses. damping is the
// 2R damping factor (1/Q); drive > 0 enables the saturator in the
// integrators.
func (f *Filter[S]) Tick(x, freq, damping, drive float64) Outputs {
	if freq != f.lastFreq || damping != f.lastDamp {
		f.update(freq, damping)
	}

	x = core.Finite(x)
	drive = math.Max(core.Finite(drive), 0)

	s := &f.state
	hp := (x - (f.damp+f.w)*s.S0 - s.S1) * f.fac

	var bp, lp float64
	if drive > 0 {
		drv := drive + 1
		u := f.w * f.shape(hp*drv) / drv
		bp = u + s.S0
		s.S0 = bp + u
		u = f.w * f.shape(bp*drv) / drv
		lp = u + s.S1
		s.S1 = lp + u
	} else {
		u := f.w * hp
		bp = u + s.S0
		s.S0 = bp + u
		u = f.w * bp
		lp = u + s.S1
		s.S1 = lp + u
	}

	s.S0 = core.FlushDenormals(s.S0)
	s.S1 = core.FlushDenormals(s.S1)

	return Outputs{Lowpass: lp, Bandpass: bp, Highpass: hp}
}

// ProcessSample filters one sample and returns the mixed response.
func (f *Filter[S]) ProcessSample(x, freq, damping, drive, mix float64) float64 {
	return Mix(f.Tick(x, freq, damping, drive), mix)
}

// Process filters in into an internal buffer and returns it. len(in) must
// not exceed the vector size.
func (f *Filter[S]) Process(in []S, freq, damping core.Control[S], drive, mix S) ([]S, error) {
	if err := core.CheckBlock(len(in), len(f.out), freq, damping); err != nil {
		return nil, err
	}
	out := f.out[:len(in)]
	f.run(out, in, freq, damping, float64(drive), float64(mix))
	return out, nil
}

// ProcessTo filters src into dst. dst may alias src.
func (f *Filter[S]) ProcessTo(dst, src []S, freq, damping core.Control[S], drive, mix S) error {
	if len(dst) != len(src) {
		return core.ErrLengthMismatch
	}
	if err := core.CheckBlock(len(src), 0, freq, damping); err != nil {
		return err
	}
	f.run(dst, src, freq, damping, float64(drive), float64(mix))
	return nil
}

func (f *Filter[S]) run(dst, src []S, freq, damping core.Control[S], drive, mix float64) {
	for i, x := range src {
		dst[i] = S(f.ProcessSample(float64(x), float64(freq.At(i)), float64(damping.At(i)), drive, mix))
	}
}

func (f *Filter[S]) update(freq, damping float64) {
	f.lastFreq, f.lastDamp = freq, damping

	fc := core.Clamp(core.Finite(freq), minFreqHz, maxFreqNorm*f.sampleRate)
	d := core.Clamp(core.Finite(damping), minDamping, maxDamping)
	if math.IsNaN(damping) || math.IsInf(damping, 0) {
		d = 1
	}

	f.damp = d
	f.w = math.Tan(math.Pi * fc / f.sampleRate)
	f.fac = 1 / (1 + f.w*d + f.w*f.w)
}

// Mix morphs between the responses: 0 is low-pass, 1 high-pass, 2
// band-pass; values in between crossfade and values outside [0, 2] clamp.
func Mix(o Outputs, mix float64) float64 {
	m := core.Clamp(core.Finite(mix), 0, maxMix)
	if m <= 1 {
		return o.Lowpass*(1-m) + o.Highpass*m
	}
	m--
	return o.Highpass*(1-m) + o.Bandpass*m
}
