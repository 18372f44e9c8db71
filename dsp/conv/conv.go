package conv

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/dsp/fft"
	"github.com/cwbudde/algo-ugen/internal/vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput       = errors.New("conv: empty input")
	ErrEmptyKernel      = errors.New("conv: empty kernel")
	ErrInvalidPartition = errors.New("conv: partition size must be a power of two >= 2")
	ErrLengthMismatch   = errors.New("conv: buffer length mismatch")
)

// Mode specifies the output span of a one-shot convolution.
type Mode int

const (
	// ModeFull returns the full result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns the first len(a) samples, the part a causal
	// streaming filter would have produced while a was playing.
	ModeSame
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeSame:
		return "same"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

const directThreshold = 64

// Direct performs time-domain linear convolution of a and b.
// The result has length len(a)+len(b)-1.
func Direct[S core.Sample](a, b []S) ([]S, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	dst := make([]S, len(a)+len(b)-1)
	if err := DirectTo(dst, a, b); err != nil {
		return nil, err
	}

	return dst, nil
}

// DirectTo writes the convolution of a and b to dst, which must have length
// len(a)+len(b)-1.
func DirectTo[S core.Sample](dst, a, b []S) error {
	if len(a) == 0 {
		return ErrEmptyInput
	}
	if len(b) == 0 {
		return ErrEmptyKernel
	}
	if len(dst) != len(a)+len(b)-1 {
		return fmt.Errorf("%w: dst=%d, want %d", ErrLengthMismatch, len(dst), len(a)+len(b)-1)
	}

	clear(dst)
	m := len(b)
	scratch := make([]S, m)
	for i, x := range a {
		vecmath.AddScaled(dst[i:i+m], b, scratch, x)
	}

	return nil
}

// Convolve convolves two float64 signals, choosing the algorithm from the
// shorter operand's length.
func Convolve(a, b []float64, mode Mode) ([]float64, error) {
	return ConvolveT[float64, complex128](a, b, mode)
}

// ConvolveT is the generic form of Convolve.
func ConvolveT[F algofft.Float, C algofft.Complex](a, b []F, mode Mode) ([]F, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}
	if mode != ModeFull && mode != ModeSame {
		return nil, fmt.Errorf("conv: unknown mode %v", mode)
	}

	sig, ker := a, b
	if len(ker) > len(sig) {
		sig, ker = ker, sig
	}

	var (
		full []F
		err  error
	)
	if len(ker) <= directThreshold {
		full = direct(sig, ker)
	} else {
		full, err = overlapAdd[F, C](sig, ker)
		if err != nil {
			return nil, err
		}
	}

	if mode == ModeSame {
		return full[:len(a)], nil
	}

	return full, nil
}

// Correlate returns the full cross-correlation of a and b. Output index k
// corresponds to lag k-(len(b)-1).
func Correlate(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	rev := make([]float64, len(b))
	for i := range b {
		rev[i] = b[len(b)-1-i]
	}

	return Convolve(a, rev, ModeFull)
}

func direct[F algofft.Float](a, b []F) []F {
	dst := make([]F, len(a)+len(b)-1)
	for i, x := range a {
		if x == 0 {
			continue
		}
		row := dst[i : i+len(b)]
		for j, h := range b {
			row[j] += x * h
		}
	}

	return dst
}

// overlapAdd convolves a long signal with kernel using blocks of the
// kernel's padded length.
func overlapAdd[F algofft.Float, C algofft.Complex](sig, kernel []F) ([]F, error) {
	m := len(kernel)
	n := fft.NextPowerOf2(2 * m)
	block := n - m + 1

	eng, err := fft.New[F, C](n)
	if err != nil {
		return nil, err
	}

	frame := make([]F, n)
	copy(frame, kernel)
	kspec := make([]C, eng.Bins())
	if err := eng.RealForward(kspec, frame); err != nil {
		return nil, err
	}

	out := make([]F, len(sig)+m-1)
	spec := make([]C, eng.Bins())
	for start := 0; start < len(sig); start += block {
		end := min(start+block, len(sig))
		clear(frame)
		copy(frame, sig[start:end])

		if err := eng.RealForward(spec, frame); err != nil {
			return nil, err
		}
		for k := range spec {
			spec[k] *= kspec[k]
		}
		if err := eng.RealInverse(frame, spec); err != nil {
			return nil, err
		}

		tail := out[start:]
		for i := range min(len(tail), end-start+m-1) {
			tail[i] += frame[i]
		}
	}

	return out, nil
}
