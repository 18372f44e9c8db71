package dither

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/dsp/noise"
)

var (
	// ErrInvalidBitDepth is returned for bit depths outside [2, 32].
	ErrInvalidBitDepth = errors.New("dither: bit depth must be in [2, 32]")
	// ErrInvalidKind is returned for unknown dither kinds.
	ErrInvalidKind = errors.New("dither: invalid dither kind")
	// ErrInvalidPreset is returned for unknown noise-shaping presets.
	ErrInvalidPreset = errors.New("dither: invalid preset")
	// ErrInvalidAmplitude is returned for negative or non-finite amplitudes.
	ErrInvalidAmplitude = errors.New("dither: amplitude must be >= 0 and finite")
)

const (
	minBitDepth = 2
	maxBitDepth = 32
)

type config struct {
	kind      Kind
	amplitude float64
	shaper    NoiseShaper
	seed      uint64
}

func defaultConfig() config {
	return config{
		kind:      Triangular,
		amplitude: 1,
		seed:      1,
	}
}

// Option configures a Quantizer.
type Option func(*config) error

// WithKind sets the dither distribution (default Triangular).
func WithKind(k Kind) Option {
	return func(cfg *config) error {
		if !k.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidKind, k)
		}
		cfg.kind = k
		return nil
	}
}

// WithAmplitude sets the dither peak in LSB (default 1).
func WithAmplitude(amp float64) Option {
	return func(cfg *config) error {
		if amp < 0 || !core.IsFinite(amp) {
			return fmt.Errorf("%w: %v", ErrInvalidAmplitude, amp)
		}
		cfg.amplitude = amp
		return nil
	}
}

// WithPreset selects a built-in noise shaper (default PresetNone).
func WithPreset(p Preset) Option {
	return func(cfg *config) error {
		if !p.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidPreset, p)
		}
		cfg.shaper = NewFIRShaper(p.Coefficients())
		return nil
	}
}

// WithNoiseShaper sets a custom noise shaper.
func WithNoiseShaper(s NoiseShaper) Option {
	return func(cfg *config) error {
		cfg.shaper = s
		return nil
	}
}

// WithSeed seeds the dither noise (default 1).
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// Quantizer converts sample blocks to integers of a fixed bit depth.
type Quantizer[S core.Sample] struct {
	bitDepth  int
	full      float64
	lo, hi    int
	kind      Kind
	amplitude float64
	shaper    NoiseShaper

	gen   *noise.Generator[S]
	noise []S
	ints  []int
	out   []S
}

// New returns a quantizer for the given bit depth. Blocks of any length
// are accepted by QuantizeTo; Process is limited to the vector size.
func New[S core.Sample](cfg core.Config, bitDepth int, opts ...Option) (*Quantizer[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if bitDepth < minBitDepth || bitDepth > maxBitDepth {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBitDepth, bitDepth)
	}

	qc := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&qc); err != nil {
			return nil, err
		}
	}
	if qc.shaper == nil {
		qc.shaper = NewFIRShaper(nil)
	}

	gen, err := noise.New[S](cfg, qc.seed)
	if err != nil {
		return nil, err
	}

	half := math.Exp2(float64(bitDepth - 1))
	return &Quantizer[S]{
		bitDepth:  bitDepth,
		full:      half - 1,
		lo:        -int(half),
		hi:        int(half) - 1,
		kind:      qc.kind,
		amplitude: qc.amplitude,
		shaper:    qc.shaper,
		gen:       gen,
		noise:     make([]S, cfg.VectorSize),
		ints:      make([]int, cfg.VectorSize),
		out:       make([]S, cfg.VectorSize),
	}, nil
}

// BitDepth returns the target bit depth.
func (q *Quantizer[S]) BitDepth() int { return q.bitDepth }

// Kind returns the dither distribution.
func (q *Quantizer[S]) Kind() Kind { return q.kind }

// Amplitude returns the dither peak in LSB.
func (q *Quantizer[S]) Amplitude() float64 { return q.amplitude }

// FullScale returns the integer that represents 1.0.
func (q *Quantizer[S]) FullScale() int { return int(q.full) }

// Reset clears the shaper history and rewinds the dither noise.
func (q *Quantizer[S]) Reset() {
	q.shaper.Reset()
	q.gen.Reset()
}

// QuantizeTo writes the integer codes of src to dst. dst and src must have
// equal lengths.
func (q *Quantizer[S]) QuantizeTo(dst []int, src []S) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst=%d src=%d", core.ErrLengthMismatch, len(dst), len(src))
	}

	for len(src) > 0 {
		n := min(len(src), len(q.noise))
		if err := q.fillNoise(q.noise[:n]); err != nil {
			return err
		}
		for i, x := range src[:n] {
			dst[i] = q.quantize(core.Finite(x), float64(q.noise[i]))
		}
		src, dst = src[n:], dst[n:]
	}

	return nil
}

// Process quantizes in and returns the result rescaled to [-1, 1]. The
// returned slice is owned by the Quantizer and valid until the next call.
func (q *Quantizer[S]) Process(in []S) ([]S, error) {
	if err := core.CheckBlock[S](len(in), len(q.out)); err != nil {
		return nil, err
	}

	ints := q.ints[:len(in)]
	if err := q.QuantizeTo(ints, in); err != nil {
		return nil, err
	}

	out := q.out[:len(in)]
	for i, v := range ints {
		out[i] = S(float64(v) / q.full)
	}

	return out, nil
}

func (q *Quantizer[S]) fillNoise(dst []S) error {
	switch q.kind {
	case Rectangular:
		return q.gen.ProcessTo(dst, core.Scalar(S(q.amplitude)))
	case Triangular:
		return q.gen.ProcessTPDFTo(dst, core.Scalar(S(q.amplitude)))
	default:
		clear(dst)
		return nil
	}
}

func (q *Quantizer[S]) quantize(x, d float64) int {
	shaped := q.shaper.Shape(x * q.full)
	v := int(math.Round(shaped + d))
	v = max(q.lo, min(q.hi, v))
	q.shaper.RecordError(float64(v) - shaped)
	return v
}
