package env

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-ugen/dsp/core"
)

var (
	// ErrNoBreakpoints is returned for an empty envelope shape.
	ErrNoBreakpoints = errors.New("env: no breakpoints")
	// ErrInvalidBreakpoint is returned for negative or non-finite durations
	// and non-finite levels.
	ErrInvalidBreakpoint = errors.New("env: invalid breakpoint")
	// ErrInvalidRelease is returned for a negative or non-finite release time.
	ErrInvalidRelease = errors.New("env: invalid release time")
)

// releaseFloor is the level below which a releasing envelope goes idle.
const releaseFloor = 1e-5

// Breakpoint is one envelope segment: a linear ramp to Level lasting
// Duration seconds.
type Breakpoint struct {
	Duration float64
	Level    float64
}

// Stage is the envelope state machine position.
type Stage int

const (
	Idle Stage = iota
	Attack
	Decay
	Sustain
	Release
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case Attack:
		return "attack"
	case Decay:
		return "decay"
	case Sustain:
		return "sustain"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// shapeCapacity is the number of breakpoints an Envelope holds without
// reallocating in ProcessBreakpoints.
const shapeCapacity = 16

// Envelope is a breakpoint envelope generator. It is not safe for concurrent
// use.
type Envelope[S core.Sample] struct {
	sampleRate float64
	points     []Breakpoint
	release    float64
	fac        float64
	out        []S

	stage Stage
	gate  bool
	level float64

	seg   int
	pos   int
	start float64
}

// New returns an envelope with the given shape and release time in seconds.
func New[S core.Sample](cfg core.Config, points []Breakpoint, release float64) (*Envelope[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validate(points); err != nil {
		return nil, err
	}

	e := &Envelope[S]{
		sampleRate: cfg.SampleRate,
		points:     append(make([]Breakpoint, 0, max(len(points), shapeCapacity)), points...),
		out:        make([]S, cfg.VectorSize),
	}
	if err := e.SetRelease(release); err != nil {
		return nil, err
	}

	return e, nil
}

// NewADSR returns an attack-decay-sustain-release envelope: a ramp to 1 over
// attack seconds, a ramp to sustain over decay seconds, and the release.
func NewADSR[S core.Sample](cfg core.Config, attack, decay, sustain, release float64) (*Envelope[S], error) {
	return New[S](cfg, []Breakpoint{
		{Duration: attack, Level: 1},
		{Duration: decay, Level: sustain},
	}, release)
}

func validate(points []Breakpoint) error {
	if len(points) == 0 {
		return ErrNoBreakpoints
	}
	for i, p := range points {
		if p.Duration < 0 || !core.IsFinite(p.Duration) || !core.IsFinite(p.Level) {
			return fmt.Errorf("%w: #%d %+v", ErrInvalidBreakpoint, i, p)
		}
	}
	return nil
}

// Breakpoints returns a copy of the current shape.
func (e *Envelope[S]) Breakpoints() []Breakpoint {
	return append([]Breakpoint(nil), e.points...)
}

// Release returns the release time in seconds.
func (e *Envelope[S]) Release() float64 { return e.release }

// SetRelease sets the time, in seconds, for the release to fall by 60 dB.
// A zero release drops to silence on the first released sample.
func (e *Envelope[S]) SetRelease(seconds float64) error {
	if seconds < 0 || !core.IsFinite(seconds) {
		return fmt.Errorf("%w: %v", ErrInvalidRelease, seconds)
	}
	e.release = seconds
	if seconds == 0 {
		e.fac = 0
		return nil
	}
	e.fac = math.Pow(0.001, 1/(seconds*e.sampleRate))
	return nil
}

// Stage returns the current stage.
func (e *Envelope[S]) Stage() Stage { return e.stage }

// Level returns the most recent output level.
func (e *Envelope[S]) Level() float64 { return e.level }

// Retrigger drops the level to zero. If the gate is high the shape restarts
// from its first segment.
func (e *Envelope[S]) Retrigger() {
	e.level = 0
	if e.gate {
		e.enter(0)
		return
	}
	e.stage = Idle
}

// Reset returns the envelope to idle with the gate low.
func (e *Envelope[S]) Reset() {
	e.level = 0
	e.gate = false
	e.stage = Idle
	e.seg, e.pos, e.start = 0, 0, 0
}

// ProcessSample advances the envelope by one sample and returns its level.
func (e *Envelope[S]) ProcessSample(gate bool) float64 {
	switch {
	case gate && !e.gate:
		e.enter(0)
	case !gate && e.gate:
		e.stage = Release
	}
	e.gate = gate

	switch e.stage {
	case Idle:
		e.level = 0
	case Release:
		if math.Abs(e.level) < releaseFloor {
			e.level = 0
			e.stage = Idle
		} else {
			e.level = core.FlushDenormals(e.level * e.fac)
		}
	case Sustain:
		e.level = e.points[len(e.points)-1].Level
	default:
		e.step()
	}

	return e.level
}

// Process fills the internal buffer with one block of envelope and returns
// it.
func (e *Envelope[S]) Process(gate bool) []S {
	for i := range e.out {
		e.out[i] = S(e.ProcessSample(gate))
	}
	return e.out
}

// ProcessAffine is Process with every level mapped to offset + scale*level.
func (e *Envelope[S]) ProcessAffine(offset, scale S, gate bool) []S {
	o, k := float64(offset), float64(scale)
	for i := range e.out {
		e.out[i] = S(o + k*e.ProcessSample(gate))
	}
	return e.out
}

// ProcessBreakpoints replaces the shape with points and runs one block. A
// segment in progress continues toward the new levels. points is copied;
// shapes longer than both the initial shape and 16 breakpoints allocate.
func (e *Envelope[S]) ProcessBreakpoints(points []Breakpoint, gate bool) ([]S, error) {
	if err := validate(points); err != nil {
		return nil, err
	}
	e.points = append(e.points[:0], points...)
	if e.stage == Attack || e.stage == Decay {
		if e.seg >= len(e.points) {
			e.stage = Sustain
		}
	}
	return e.Process(gate), nil
}

// ProcessInput multiplies in by the envelope. len(in) must not exceed the
// vector size.
func (e *Envelope[S]) ProcessInput(in []S, gate bool) ([]S, error) {
	if err := core.CheckBlock[S](len(in), len(e.out)); err != nil {
		return nil, err
	}
	out := e.out[:len(in)]
	for i, x := range in {
		out[i] = S(core.Finite(x) * e.ProcessSample(gate))
	}
	return out, nil
}

// enter starts segment k from the current level, passing over segments
// with no duration.
func (e *Envelope[S]) enter(k int) {
	for ; k < len(e.points); k++ {
		if e.samples(k) > 0 {
			e.seg, e.pos, e.start = k, 0, e.level
			e.stage = Decay
			if k == 0 {
				e.stage = Attack
			}
			return
		}
		e.level = e.points[k].Level
	}
	e.stage = Sustain
}

func (e *Envelope[S]) step() {
	n := e.samples(e.seg)
	target := e.points[e.seg].Level

	e.pos++
	if e.pos >= n {
		e.level = target
		e.enter(e.seg + 1)
		return
	}
	e.level = e.start + (target-e.start)*float64(e.pos)/float64(n)
}

func (e *Envelope[S]) samples(k int) int {
	return int(math.Round(e.points[k].Duration * e.sampleRate))
}
