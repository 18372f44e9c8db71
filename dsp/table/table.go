package table

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/dsp/interp"
	"github.com/cwbudde/algo-ugen/internal/pcm"
)

var (
	// ErrInvalidLength is returned for table lengths that cannot be built.
	ErrInvalidLength = errors.New("table: invalid length")
	// ErrUnknownType is returned for table types outside the built-in set.
	ErrUnknownType = errors.New("table: unknown type")
	// ErrEmptyTable is returned when a table would hold no samples.
	ErrEmptyTable = errors.New("table: empty table")
	// ErrInvalidBase is returned for negative or non-finite base frequencies.
	ErrInvalidBase = errors.New("table: invalid base frequency")
)

// Table holds one period of a waveform. Base is the frequency at which
// the stored period plays back unaltered, or 0 when the table carries no
// pitch of its own.
type Table[S core.Sample] struct {
	data []S
	base float64
}

// New generates a table of the given type and length.
func New[S core.Sample](typ Type, length int) (*Table[S], error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	gen, err := generator(typ)
	if err != nil {
		return nil, err
	}
	if !typ.Waveform() && length < 2 {
		return nil, fmt.Errorf("%w: window tables need at least 2 points, got %d", ErrInvalidLength, length)
	}

	src := gen(length)
	data := make([]S, length)
	for i, v := range src {
		data[i] = S(v)
	}

	return &Table[S]{data: data}, nil
}

// MustNew is like New but panics on error.
func MustNew[S core.Sample](typ Type, length int) *Table[S] {
	t, err := New[S](typ, length)
	if err != nil {
		panic(err)
	}
	return t
}

// FromSamples copies src into a new table with the given base frequency.
func FromSamples[S core.Sample](src []S, base float64) (*Table[S], error) {
	if len(src) == 0 {
		return nil, ErrEmptyTable
	}
	if base < 0 || !core.IsFinite(base) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase, base)
	}

	data := make([]S, len(src))
	for i, v := range src {
		data[i] = S(core.Finite(v))
	}

	return &Table[S]{data: data, base: base}, nil
}

// FromPCM builds a table from the first channel of a go-audio buffer.
func FromPCM[S core.Sample](buf audio.Buffer, base float64) (*Table[S], error) {
	samples, err := pcm.Channel(buf, 0)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}

	data := make([]S, len(samples))
	for i, v := range samples {
		data[i] = S(v)
	}

	return FromSamples(data, base)
}

// Len returns the number of samples in one period.
func (t *Table[S]) Len() int {
	return len(t.data)
}

// Base returns the base frequency, 0 if unset.
func (t *Table[S]) Base() float64 {
	return t.base
}

// Samples returns the table contents. Callers must not modify them.
func (t *Table[S]) Samples() []S {
	return t.data
}

// At reads the table at phase in [0, 1) using mode. Phases outside the
// range wrap around.
func (t *Table[S]) At(phase float64, mode interp.Mode) float64 {
	return interp.Wrapped(t.data, phase*float64(len(t.data)), mode)
}

// Peak returns the largest absolute sample value.
func (t *Table[S]) Peak() float64 {
	var peak float64
	for _, v := range t.data {
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	return peak
}
