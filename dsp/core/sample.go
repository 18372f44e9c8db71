package core

import (
	"errors"
	"fmt"
)

// ErrControlLength is returned when a per-sample control is shorter than
// the block it drives.
var ErrControlLength = errors.New("core: control vector shorter than block")

// ErrLengthMismatch is returned when paired buffers differ in length.
var ErrLengthMismatch = errors.New("core: buffer length mismatch")

// ErrBlockSize is returned when a block exceeds the configured vector size.
var ErrBlockSize = errors.New("core: block exceeds vector size")

// Sample is the numeric type of one engine instantiation.
type Sample interface {
	float32 | float64
}

// Control is a parameter that is either one value for the whole block or
// one value per sample. The zero Control is the scalar 0.
type Control[S Sample] struct {
	value  S
	values []S
}

// Scalar returns a block-constant control.
func Scalar[S Sample](v S) Control[S] {
	return Control[S]{value: v}
}

// Vector returns a per-sample control reading from values.
// The slice is borrowed, not copied.
func Vector[S Sample](values []S) Control[S] {
	return Control[S]{values: values}
}

// IsVector reports whether c varies per sample.
func (c Control[S]) IsVector() bool {
	return c.values != nil
}

// Value returns the scalar value, or the first element of a vector control.
func (c Control[S]) Value() S {
	if c.values != nil {
		if len(c.values) == 0 {
			return 0
		}

		return c.values[0]
	}

	return c.value
}

// Values returns the backing slice of a vector control, nil for scalars.
func (c Control[S]) Values() []S {
	return c.values
}

// At returns the control value for sample i of the block.
func (c Control[S]) At(i int) S {
	if c.values != nil {
		return c.values[i]
	}

	return c.value
}

// Check reports ErrControlLength if c is a vector shorter than n.
func (c Control[S]) Check(n int) error {
	if c.values != nil && len(c.values) < n {
		return fmt.Errorf("%w: %d < %d", ErrControlLength, len(c.values), n)
	}

	return nil
}

// BlockLen returns the number of samples a call can process given the
// input length n and the controls that drive it: the shortest vector wins.
func BlockLen[S Sample](n int, controls ...Control[S]) int {
	for _, c := range controls {
		if c.values != nil && len(c.values) < n {
			n = len(c.values)
		}
	}

	return n
}

// CheckBlock validates a block of n samples against the vector size limit
// (ignored when limit <= 0) and the controls driving it.
func CheckBlock[S Sample](n, limit int, controls ...Control[S]) error {
	if limit > 0 && n > limit {
		return fmt.Errorf("%w: %d > %d", ErrBlockSize, n, limit)
	}
	for _, c := range controls {
		if err := c.Check(n); err != nil {
			return err
		}
	}
	return nil
}
