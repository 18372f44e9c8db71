package fft

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

var (
	// ErrInvalidSize is returned for transform sizes that are not a power of two >= 2.
	ErrInvalidSize = errors.New("fft: size must be a power of two >= 2")
	// ErrLengthMismatch is returned when a buffer does not match the transform size.
	ErrLengthMismatch = errors.New("fft: buffer length mismatch")
)

// Direction selects the transform direction.
type Direction int

const (
	// Forward transforms time-domain samples to spectral bins.
	Forward Direction = iota
	// Inverse transforms spectral bins back to time-domain samples.
	Inverse
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Inverse {
		return "inverse"
	}
	return "forward"
}

type config struct {
	packed bool
}

// Option configures an Engine.
type Option func(*config) error

// WithPacked selects the packed real spectrum layout: N/2 bins where bin 0
// carries the DC value in its real part and the Nyquist value in its
// imaginary part.
func WithPacked() Option {
	return func(cfg *config) error {
		cfg.packed = true
		return nil
	}
}

// Engine performs transforms of one fixed size. One engine serves both
// directions and owns its workspace, so it must not be shared between
// goroutines.
//
// The type parameters select precision: float64/complex128 or
// float32/complex64.
type Engine[F algofft.Float, C algofft.Complex] struct {
	n      int
	packed bool
	plan   *algofft.Plan[C]
	work   []C
}

// Engine64 is the float64 specialization of Engine.
type Engine64 = Engine[float64, complex128]

// Engine32 is the float32 specialization of Engine.
type Engine32 = Engine[float32, complex64]

// New creates an engine for transforms of size n.
func New[F algofft.Float, C algofft.Complex](n int, opts ...Option) (*Engine[F, C], error) {
	if !IsPowerOf2(n) || n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	var cfg config
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	plan, err := algofft.NewPlanT[C](n)
	if err != nil {
		return nil, fmt.Errorf("fft: failed to create plan: %w", err)
	}

	return &Engine[F, C]{
		n:      n,
		packed: cfg.packed,
		plan:   plan,
		work:   make([]C, n),
	}, nil
}

// New64 creates a float64 engine.
func New64(n int, opts ...Option) (*Engine64, error) {
	return New[float64, complex128](n, opts...)
}

// New32 creates a float32 engine.
func New32(n int, opts ...Option) (*Engine32, error) {
	return New[float32, complex64](n, opts...)
}

// Size returns the transform size N.
func (e *Engine[F, C]) Size() int {
	return e.n
}

// Packed reports whether real spectra use the packed layout.
func (e *Engine[F, C]) Packed() bool {
	return e.packed
}

// Bins returns the number of bins of a real spectrum: N/2 in packed
// layout, N/2+1 otherwise.
func (e *Engine[F, C]) Bins() int {
	return Bins(e.n, e.packed)
}

// Transform runs an in-place complex transform on data.
func (e *Engine[F, C]) Transform(data []C, dir Direction) error {
	return e.TransformTo(data, data, dir)
}

// TransformTo writes the transform of src to dst. dst and src may alias.
func (e *Engine[F, C]) TransformTo(dst, src []C, dir Direction) error {
	if len(dst) != e.n || len(src) != e.n {
		return fmt.Errorf("%w: want %d, got dst=%d src=%d", ErrLengthMismatch, e.n, len(dst), len(src))
	}

	var err error
	if dir == Inverse {
		err = e.plan.Inverse(dst, src)
	} else {
		err = e.plan.Forward(dst, src)
	}
	if err != nil {
		return fmt.Errorf("fft: %s transform failed: %w", dir, err)
	}

	return nil
}

// RealForward transforms N real samples to a real spectrum of Bins() bins.
func (e *Engine[F, C]) RealForward(dst []C, src []F) error {
	if len(src) != e.n || len(dst) != e.Bins() {
		return fmt.Errorf("%w: want src=%d dst=%d, got src=%d dst=%d",
			ErrLengthMismatch, e.n, e.Bins(), len(src), len(dst))
	}

	ToComplex(e.work, src)
	if err := e.plan.Forward(e.work, e.work); err != nil {
		return fmt.Errorf("fft: forward transform failed: %w", err)
	}

	packSpectrum(dst, e.work, e.packed)
	return nil
}

// RealInverse transforms a real spectrum of Bins() bins back to N real
// samples. The imaginary parts of the DC and Nyquist bins are ignored in
// the unpacked layout.
func (e *Engine[F, C]) RealInverse(dst []F, src []C) error {
	if len(dst) != e.n || len(src) != e.Bins() {
		return fmt.Errorf("%w: want src=%d dst=%d, got src=%d dst=%d",
			ErrLengthMismatch, e.Bins(), e.n, len(src), len(dst))
	}

	expandHermitian(e.work, src, e.packed)
	if err := e.plan.Inverse(e.work, e.work); err != nil {
		return fmt.Errorf("fft: inverse transform failed: %w", err)
	}

	RealPart(dst, e.work)
	return nil
}

// Bins returns the real spectrum length for transform size n.
func Bins(n int, packed bool) int {
	if packed {
		return n / 2
	}
	return n/2 + 1
}

// IsPowerOf2 reports whether n is a positive power of two.
func IsPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOf2 returns the smallest power of two >= n.
func NextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
