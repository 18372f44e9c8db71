package osc

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/dsp/interp"
	"github.com/cwbudde/algo-ugen/dsp/table"
)

var (
	// ErrNoSource is returned when an oscillator has neither function nor table.
	ErrNoSource = errors.New("osc: no waveform source")
	// ErrInvalidPhase is returned for initial phases that are not finite.
	ErrInvalidPhase = errors.New("osc: invalid phase")
	// ErrInvalidInterpolation is returned for unknown interpolation modes.
	ErrInvalidInterpolation = errors.New("osc: invalid interpolation mode")
)

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	phase float64
	mode  interp.Mode
}

func defaultConfig() config {
	return config{mode: interp.Linear}
}

// WithPhase sets the initial phase; it is wrapped into [0, 1).
func WithPhase(phase float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(phase) {
			return fmt.Errorf("%w: %v", ErrInvalidPhase, phase)
		}
		cfg.phase = core.Frac(phase)
		return nil
	}
}

// WithInterpolation selects the table lookup interpolation. It has no
// effect on function oscillators.
func WithInterpolation(mode interp.Mode) Option {
	return func(cfg *config) error {
		if !mode.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidInterpolation, mode)
		}
		cfg.mode = mode
		return nil
	}
}

// Oscillator is a phase-accumulating generator over one waveform source.
// It is not safe for concurrent use.
type Oscillator[S core.Sample] struct {
	sampleRate float64
	out        []S

	phase float64
	mode  interp.Mode

	fn  Func
	tbl *table.Table[S]
	set *table.Set[S]

	// band-limited table tracking
	lastFreq float64
	active   *table.Table[S]
}

// New returns an oscillator driven by a phase function.
func New[S core.Sample](cfg core.Config, fn Func, opts ...Option) (*Oscillator[S], error) {
	if fn == nil {
		return nil, ErrNoSource
	}
	o, err := newOscillator[S](cfg, opts)
	if err != nil {
		return nil, err
	}
	o.fn = fn
	return o, nil
}

// NewTable returns an oscillator reading one table per period.
func NewTable[S core.Sample](cfg core.Config, tbl *table.Table[S], opts ...Option) (*Oscillator[S], error) {
	if tbl == nil || tbl.Len() == 0 {
		return nil, ErrNoSource
	}
	o, err := newOscillator[S](cfg, opts)
	if err != nil {
		return nil, err
	}
	o.tbl = tbl
	return o, nil
}

// NewBandLimited returns an oscillator that reads from the table of set
// matching the current frequency.
func NewBandLimited[S core.Sample](cfg core.Config, set *table.Set[S], opts ...Option) (*Oscillator[S], error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrNoSource
	}
	o, err := newOscillator[S](cfg, opts)
	if err != nil {
		return nil, err
	}
	o.set = set
	o.active = set.Table(0)
	return o, nil
}

func newOscillator[S core.Sample](cfg core.Config, opts []Option) (*Oscillator[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	oc := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&oc); err != nil {
			return nil, err
		}
	}

	return &Oscillator[S]{
		sampleRate: cfg.SampleRate,
		out:        make([]S, cfg.VectorSize),
		phase:      oc.phase,
		mode:       oc.mode,
	}, nil
}

// SampleRate returns the sample rate in Hz.
func (o *Oscillator[S]) SampleRate() float64 { return o.sampleRate }

// VectorSize returns the block length produced by Process.
func (o *Oscillator[S]) VectorSize() int { return len(o.out) }

// Interpolation returns the table lookup mode.
func (o *Oscillator[S]) Interpolation() interp.Mode { return o.mode }

// Phase returns the current phase in [0, 1).
func (o *Oscillator[S]) Phase() float64 { return o.phase }

// SetPhase sets the phase; it is wrapped into [0, 1). Non-finite values
// reset the phase to 0.
func (o *Oscillator[S]) SetPhase(phase float64) {
	o.phase = core.Frac(core.Finite(phase))
}

// Reset sets the phase to 0.
func (o *Oscillator[S]) Reset() {
	o.phase = 0
}

// SetFunc switches the oscillator to a phase function.
func (o *Oscillator[S]) SetFunc(fn Func) error {
	if fn == nil {
		return ErrNoSource
	}
	o.fn, o.tbl, o.set, o.active = fn, nil, nil, nil
	return nil
}

// SetTable switches the oscillator to a single table.
func (o *Oscillator[S]) SetTable(tbl *table.Table[S]) error {
	if tbl == nil || tbl.Len() == 0 {
		return ErrNoSource
	}
	o.fn, o.tbl, o.set, o.active = nil, tbl, nil, nil
	return nil
}

// SetTableSet switches the oscillator to a band-limited table set.
func (o *Oscillator[S]) SetTableSet(set *table.Set[S]) error {
	if set == nil || set.Len() == 0 {
		return ErrNoSource
	}
	o.fn, o.tbl, o.set = nil, nil, set
	o.active = set.Select(o.lastFreq)
	return nil
}

// SetInterpolation changes the table lookup mode.
func (o *Oscillator[S]) SetInterpolation(mode interp.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidInterpolation, mode)
	}
	o.mode = mode
	return nil
}

// Process generates one block of VectorSize samples.
func (o *Oscillator[S]) Process(amp, freq core.Control[S]) ([]S, error) {
	return o.ProcessPM(amp, freq, core.Control[S]{})
}

// ProcessPM generates one block with phase modulation. pm is added to the
// phase, in cycles, before the lookup and does not accumulate.
func (o *Oscillator[S]) ProcessPM(amp, freq, pm core.Control[S]) ([]S, error) {
	if err := o.ProcessTo(o.out, amp, freq, pm); err != nil {
		return nil, err
	}
	return o.out, nil
}

// ProcessTo generates len(dst) samples into dst. Vector controls must hold
// at least len(dst) values.
func (o *Oscillator[S]) ProcessTo(dst []S, amp, freq, pm core.Control[S]) error {
	if err := core.CheckBlock(len(dst), 0, amp, freq, pm); err != nil {
		return err
	}

	ph := o.phase
	for i := range dst {
		a := core.Finite(amp.At(i))
		f := core.Finite(freq.At(i))
		p := ph
		if m := core.Finite(pm.At(i)); m != 0 {
			p = core.Frac(ph + m)
		}

		dst[i] = S(a * o.read(p, f))

		ph = core.Frac(ph + f/o.sampleRate)
	}
	o.phase = ph

	return nil
}

func (o *Oscillator[S]) read(phase, freq float64) float64 {
	switch {
	case o.fn != nil:
		return o.fn(phase)
	case o.set != nil:
		if freq != o.lastFreq {
			o.lastFreq = freq
			o.active = o.set.Select(freq)
		}
		return o.active.At(phase, o.mode)
	default:
		return o.tbl.At(phase, o.mode)
	}
}
