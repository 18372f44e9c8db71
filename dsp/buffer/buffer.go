package buffer

import "github.com/cwbudde/algo-ugen/dsp/core"

// Buffer is a fixed-length block of samples. Its length is set at
// construction and never changes, so slices handed out by Samples stay
// valid for the lifetime of the buffer.
type Buffer[S core.Sample] struct {
	samples []S
}

// New returns a zero-filled Buffer of the given length.
func New[S core.Sample](length int) *Buffer[S] {
	if length < 0 {
		length = 0
	}
	return &Buffer[S]{samples: make([]S, length)}
}

// FromSlice wraps an existing slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
func FromSlice[S core.Sample](s []S) *Buffer[S] {
	return &Buffer[S]{samples: s}
}

// Samples returns the underlying slice.
func (b *Buffer[S]) Samples() []S {
	return b.samples
}

// Len returns the number of samples.
func (b *Buffer[S]) Len() int {
	return len(b.samples)
}

// Zero sets all samples to 0.
func (b *Buffer[S]) Zero() {
	clear(b.samples)
}

// Fill sets every sample to v.
func (b *Buffer[S]) Fill(v S) {
	for i := range b.samples {
		b.samples[i] = v
	}
}

// CopyFrom copies src into the buffer and returns the number of samples
// copied. Samples beyond len(src) are left untouched.
func (b *Buffer[S]) CopyFrom(src []S) int {
	return copy(b.samples, src)
}

// Control returns the buffer as a per-sample control.
func (b *Buffer[S]) Control() core.Control[S] {
	return core.Vector(b.samples)
}

// Copy returns a deep copy of the buffer.
func (b *Buffer[S]) Copy() *Buffer[S] {
	s := make([]S, len(b.samples))
	copy(s, b.samples)
	return &Buffer[S]{samples: s}
}
