package fourpole

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ugen/dsp/core"
)

const (
	maxResonance = 0.999
	minCutoffHz  = 1e-3
	maxCutoffNrm = 0.49
	maxDrive     = 24.0
	stateLimit   = 1e6
)

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	drive float64
	mix   float64
}

// WithDrive enables tanh saturation of the ladder input in [0, 24].
// 0 keeps the ladder linear.
func WithDrive(drive float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(drive) || drive < 0 || drive > maxDrive {
			return fmt.Errorf("fourpole: drive must be in [0, %g]: %v", maxDrive, drive)
		}
		cfg.drive = drive
		return nil
	}
}

// WithMix blends the clean and the saturated ladder input: 0 is clean,
// 1 (the default) fully driven. It has no effect without drive.
func WithMix(mix float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(mix) || mix < 0 || mix > 1 {
			return fmt.Errorf("fourpole: mix must be in [0, 1]: %v", mix)
		}
		cfg.mix = mix
		return nil
	}
}

// State contains the four stage integrator states.
type State struct {
	Stage [4]float64
}

// Filter is a resonant 4-pole ladder low-pass. Resonance 1 corresponds to
// the self-oscillation threshold and is clamped just below it. It is not
// safe for concurrent use.
type Filter[S core.Sample] struct {
	sampleRate float64
	drive      float64
	mix        float64
	out        []S

	state State

	lastCutoff float64
	g, a       float64
	g4         float64
}

// New returns a ladder filter.
func New[S core.Sample](cfg core.Config, opts ...Option) (*Filter[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fc := config{mix: 1}
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
		drive:      fc.drive,
		mix:        fc.mix,
		out:        make([]S, cfg.VectorSize),
	}
	f.setCutoff(1000)

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter[S]) SampleRate() float64 { return f.sampleRate }

// Drive returns the input saturation drive.
func (f *Filter[S]) Drive() float64 { return f.drive }

// SetDrive updates the input saturation drive.
func (f *Filter[S]) SetDrive(drive float64) error {
	var cfg config
	if err := WithDrive(drive)(&cfg); err != nil {
		return err
	}
	f.drive = cfg.drive
	return nil
}

// Mix returns the clean/driven blend.
func (f *Filter[S]) Mix() float64 { return f.mix }

// SetMix updates the clean/driven blend.
func (f *Filter[S]) SetMix(mix float64) error {
	var cfg config
	if err := WithMix(mix)(&cfg); err != nil {
		return err
	}
	f.mix = cfg.mix
	return nil
}

// Reset clears the ladder state.
func (f *Filter[S]) Reset() {
	f.state = State{}
}

// State returns a copy of the ladder state.
func (f *Filter[S]) State() State {
	return f.state
}

// SetState restores a saved ladder state.
func (f *Filter[S]) SetState(s State) error {
	for _, v := range s.Stage {
		if !core.IsFinite(v) {
			return fmt.Errorf("fourpole: state contains NaN or Inf")
		}
	}
	f.state = s
	return nil
}

// ProcessSample filters one sample with cutoff in Hz and resonance in [0, 1].
func (f *Filter[S]) ProcessSample(x, cutoff, resonance float64) float64 {
	if cutoff != f.lastCutoff {
		f.setCutoff(cutoff)
	}

	x = core.Finite(x)
	k := 4 * core.Clamp(core.Finite(resonance), 0, maxResonance)
	d := &f.state.Stage
	g, a := f.g, f.a

	// Contribution of the stage states to the ladder output.
	ss := d[0]*g*g*g + d[1]*g*g + d[2]*g + d[3]
	o := (f.g4*x + ss) / (1 + k*f.g4)

	u := x - k*o
	if f.drive > 0 {
		u += f.mix * (math.Tanh(u*f.drive)/f.drive - u)
	}

	for j := range d {
		v := g * u
		y := v + d[j]
		d[j] = clipState(core.FlushDenormals(v - a*y))
		u = y
	}

	return u
}

// Process filters in into an internal buffer and returns it. len(in) must
// not exceed the vector size.
func (f *Filter[S]) Process(in []S, cutoff, resonance core.Control[S]) ([]S, error) {
	if err := core.CheckBlock(len(in), len(f.out), cutoff, resonance); err != nil {
		return nil, err
	}
	out := f.out[:len(in)]
	f.run(out, in, cutoff, resonance)
	return out, nil
}

// ProcessTo filters src into dst. dst may alias src.
func (f *Filter[S]) ProcessTo(dst, src []S, cutoff, resonance core.Control[S]) error {
	if len(dst) != len(src) {
		return core.ErrLengthMismatch
	}
	if err := core.CheckBlock(len(src), 0, cutoff, resonance); err != nil {
		return err
	}
	f.run(dst, src, cutoff, resonance)
	return nil
}

func (f *Filter[S]) run(dst, src []S, cutoff, resonance core.Control[S]) {
	for i, x := range src {
		dst[i] = S(f.ProcessSample(float64(x), float64(cutoff.At(i)), float64(resonance.At(i))))
	}
}

func (f *Filter[S]) setCutoff(cutoff float64) {
	f.lastCutoff = cutoff

	fc := core.Clamp(core.Finite(cutoff), minCutoffHz, maxCutoffNrm*f.sampleRate)
	w := math.Tan(math.Pi * fc / f.sampleRate)
	f.g = w / (1 + w)
	f.a = (w - 1) / (1 + w)
	f.g4 = f.g * f.g * f.g * f.g
}

func clipState(v float64) float64 {
	if v > stateLimit {
		return stateLimit
	}
	if v < -stateLimit {
		return -stateLimit
	}
	return v
}
