package delay

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-ugen/dsp/core"
)

var (
	// ErrDelayTooLong is returned when a requested delay exceeds the
	// allocated maximum.
	ErrDelayTooLong = errors.New("delay: delay time exceeds maximum")
	// ErrInvalidTime is returned for a non-positive or non-finite maximum.
	ErrInvalidTime = errors.New("delay: invalid maximum delay time")
	// ErrInvalidMode is returned for an unknown read mode.
	ErrInvalidMode = errors.New("delay: invalid read mode")
)

// Unit selects how delay times are expressed.
type Unit int

const (
	// Seconds expresses delay times in seconds.
	Seconds Unit = iota
	// Samples expresses delay times in samples.
	Samples
)

// Mode selects how the delay line is read.
type Mode int

const (
	// Fixed always reads the full configured maximum; time controls are
	// ignored.
	Fixed Mode = iota
	// Truncate reads at the integer part of the delay.
	Truncate
	// Linear interpolates between neighbouring samples.
	Linear
	// Cubic uses 4-point Hermite interpolation.
	Cubic
)

func (m Mode) String() string {
	switch m {
	case Fixed:
		return "fixed"
	case Truncate:
		return "truncate"
	case Linear:
		return "linear"
	case Cubic:
		return "cubic"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// headroom keeps two samples past the longest delay for the cubic reader.
const headroom = 3

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	unit   Unit
	mode   Mode
	direct float64
}

// WithUnit sets the unit of the maximum time and of time controls.
func WithUnit(u Unit) Option {
	return func(cfg *config) error {
		if u != Seconds && u != Samples {
			return fmt.Errorf("delay: invalid unit %d", int(u))
		}
		cfg.unit = u
		return nil
	}
}

// WithMode sets the read mode. The default is Linear.
func WithMode(m Mode) Option {
	return func(cfg *config) error {
		if m < Fixed || m > Cubic {
			return fmt.Errorf("%w: %v", ErrInvalidMode, m)
		}
		cfg.mode = m
		return nil
	}
}

// WithDirect sets the gain of the signal written into the line (input plus
// feedback) at the output. The default is 0.
func WithDirect(g float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(g) {
			return fmt.Errorf("delay: invalid direct gain %v", g)
		}
		cfg.direct = g
		return nil
	}
}

// Delay is a feedback delay. For each sample it reads s at the delay time,
// writes w = in + fdb*s and outputs fwd*s + direct*w. It is not safe for
// concurrent use.
type Delay[S core.Sample] struct {
	line       *Line[S]
	sampleRate float64
	unit       Unit
	mode       Mode
	direct     float64
	maxSamples int
	out        []S
}

// New returns a delay that allocates memory for maxTime, in seconds or in
// samples with WithUnit(Samples).
func New[S core.Sample](cfg core.Config, maxTime float64, opts ...Option) (*Delay[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dc, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	maxSamples := maxTime
	if dc.unit == Seconds {
		maxSamples *= cfg.SampleRate
	}
	if !core.IsFinite(maxSamples) || maxSamples < 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, maxTime)
	}

	line, err := NewLine[S](int(math.Ceil(maxSamples)) + headroom)
	if err != nil {
		return nil, err
	}

	return newDelay(cfg, dc, line), nil
}

// NewWithMemory returns a delay that runs on mem. The maximum delay is
// len(mem)-3 samples. mem is cleared and must not be used elsewhere while
// the delay is alive.
func NewWithMemory[S core.Sample](cfg core.Config, mem []S, opts ...Option) (*Delay[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dc, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	if len(mem) < headroom+1 {
		return nil, fmt.Errorf("%w: %d samples of memory", ErrInvalidTime, len(mem))
	}

	line, err := LineFromSlice(mem)
	if err != nil {
		return nil, err
	}

	return newDelay(cfg, dc, line), nil
}

func applyOptions(opts []Option) (config, error) {
	dc := config{unit: Seconds, mode: Linear}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&dc); err != nil {
			return config{}, err
		}
	}
	return dc, nil
}

func newDelay[S core.Sample](cfg core.Config, dc config, line *Line[S]) *Delay[S] {
	return &Delay[S]{
		line:       line,
		sampleRate: cfg.SampleRate,
		unit:       dc.unit,
		mode:       dc.mode,
		direct:     dc.direct,
		maxSamples: line.Len() - headroom,
		out:        make([]S, cfg.VectorSize),
	}
}

// Mode returns the read mode.
func (d *Delay[S]) Mode() Mode { return d.mode }

// MaxDelay returns the longest delay in the configured unit.
func (d *Delay[S]) MaxDelay() float64 {
	return d.fromSamples(float64(d.maxSamples))
}

// MaxSamples returns the longest delay in samples.
func (d *Delay[S]) MaxSamples() int { return d.maxSamples }

// Reset clears the delay memory.
func (d *Delay[S]) Reset() {
	d.line.Reset()
}

// ProcessSample runs one sample. time is in the configured unit and is
// clamped into [1 sample, MaxDelay].
func (d *Delay[S]) ProcessSample(x, time, fdb, fwd float64) float64 {
	s := d.read(d.toSamples(time))
	w := core.FlushDenormals(core.Finite(x) + core.Finite(fdb)*s)
	d.line.Write(S(w))

	return core.Finite(fwd)*s + d.direct*w
}

// Process delays in into an internal buffer and returns it. len(in) must
// not exceed the vector size, and every time value must be within
// MaxDelay; nothing is processed otherwise.
func (d *Delay[S]) Process(in []S, time core.Control[S], fdb, fwd S) ([]S, error) {
	if err := d.check(len(in), len(d.out), time); err != nil {
		return nil, err
	}
	out := d.out[:len(in)]
	d.run(out, in, time, fdb, fwd)
	return out, nil
}

// ProcessTo delays src into dst. dst may alias src.
func (d *Delay[S]) ProcessTo(dst, src []S, time core.Control[S], fdb, fwd S) error {
	if len(dst) != len(src) {
		return core.ErrLengthMismatch
	}
	if err := d.check(len(src), 0, time); err != nil {
		return err
	}
	d.run(dst, src, time, fdb, fwd)
	return nil
}

func (d *Delay[S]) check(n, limit int, time core.Control[S]) error {
	if err := core.CheckBlock(n, limit, time); err != nil {
		return err
	}
	if d.mode == Fixed {
		return nil
	}

	longest := float64(d.maxSamples)
	if !time.IsVector() {
		if t := d.toSamples(float64(time.Value())); t > longest {
			return fmt.Errorf("%w: %v > %v", ErrDelayTooLong, time.Value(), d.MaxDelay())
		}
		return nil
	}
	for _, v := range time.Values()[:n] {
		if t := d.toSamples(float64(v)); t > longest {
			return fmt.Errorf("%w: %v > %v", ErrDelayTooLong, v, d.MaxDelay())
		}
	}
	return nil
}

func (d *Delay[S]) run(dst, src []S, time core.Control[S], fdb, fwd S) {
	g, f := float64(fdb), float64(fwd)
	for i, x := range src {
		dst[i] = S(d.ProcessSample(float64(x), float64(time.At(i)), g, f))
	}
}

func (d *Delay[S]) read(samples float64) float64 {
	samples = core.Clamp(samples, 1, float64(d.maxSamples))

	switch d.mode {
	case Fixed:
		return float64(d.line.Read(d.maxSamples))
	case Truncate:
		return float64(d.line.Read(int(samples)))
	case Cubic:
		return d.line.ReadCubic(samples)
	default:
		return d.line.ReadLinear(samples)
	}
}

func (d *Delay[S]) toSamples(t float64) float64 {
	t = core.Finite(t)
	if d.unit == Seconds {
		return t * d.sampleRate
	}
	return t
}

func (d *Delay[S]) fromSamples(n float64) float64 {
	if d.unit == Seconds {
		return n / d.sampleRate
	}
	return n
}
