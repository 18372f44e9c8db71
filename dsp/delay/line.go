package delay

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/dsp/interp"
)

// ErrInvalidSize is returned for lines without storage.
var ErrInvalidSize = errors.New("delay: line size must be > 0")

// Line is a circular delay line. Reads are expressed in samples behind the
// write position: a delay of 1 returns the most recent write.
type Line[S core.Sample] struct {
	buf []S
	pos int
}

// NewLine returns a line that owns size samples of storage.
func NewLine[S core.Sample](size int) (*Line[S], error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	return &Line[S]{buf: make([]S, size)}, nil
}

// LineFromSlice returns a line that uses buf as storage. The caller keeps
// ownership of buf; its contents are cleared.
func LineFromSlice[S core.Sample](buf []S) (*Line[S], error) {
	if len(buf) == 0 {
		return nil, ErrInvalidSize
	}
	core.Zero(buf)
	return &Line[S]{buf: buf}, nil
}

// Len returns the storage size in samples.
func (l *Line[S]) Len() int { return len(l.buf) }

// Write stores one sample and advances the write position.
func (l *Line[S]) Write(x S) {
	l.buf[l.pos] = x
	l.pos++
	if l.pos == len(l.buf) {
		l.pos = 0
	}
}

// Read returns the sample written d writes ago. d is taken modulo Len, so
// d = 0 and d = Len both address the oldest sample.
func (l *Line[S]) Read(d int) S {
	n := len(l.buf)
	i := (l.pos - d) % n
	if i < 0 {
		i += n
	}
	return l.buf[i]
}

// ReadLinear reads a fractional delay with linear interpolation. d is
// clamped to [1, Len-1].
func (l *Line[S]) ReadLinear(d float64) float64 {
	d = core.Clamp(d, 1, float64(len(l.buf)-1))
	p := int(d)
	t := d - float64(p)

	return interp.Linear2(t, float64(l.Read(p)), float64(l.Read(p+1)))
}

// ReadCubic reads a fractional delay with 4-point Hermite interpolation. d
// is clamped to [1, Len-2]. At delays below 2 the newer neighbour is not yet
// written and the nearest sample stands in for it.
func (l *Line[S]) ReadCubic(d float64) float64 {
	d = core.Clamp(d, 1, math.Max(1, float64(len(l.buf)-2)))
	p := int(d)
	t := d - float64(p)

	x0 := float64(l.Read(p))
	xm1 := x0
	if p >= 2 {
		xm1 = float64(l.Read(p - 1))
	}

	return interp.Hermite4(t, xm1, x0, float64(l.Read(p+1)), float64(l.Read(p+2)))
}

// Reset clears the storage and rewinds the write position.
func (l *Line[S]) Reset() {
	core.Zero(l.buf)
	l.pos = 0
}
