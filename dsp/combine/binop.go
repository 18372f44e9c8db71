package combine

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/internal/vecmath"
)

var (
	// ErrInvalidOp is returned for an unknown operator.
	ErrInvalidOp = errors.New("combine: invalid operator")
	// ErrNilFunc is returned when a nil mapping is supplied.
	ErrNilFunc = errors.New("combine: nil function")
)

// Op names a built-in binary operator.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	// Div yields 0 where the divisor is 0.
	Div
	Min
	Max
)

var opNames = [...]string{"add", "sub", "mul", "div", "min", "max"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// ParseOp returns the operator with the given name.
func ParseOp(name string) (Op, error) {
	for i, n := range opNames {
		if n == name {
			return Op(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOp, name)
}

// Apply evaluates the operator on one pair of samples.
func (o Op) Apply(a, b float64) float64 {
	switch o {
	case Add:
		return a + b
	case Sub:
		return a - b
	case Mul:
		return a * b
	case Div:
		if b == 0 {
			return 0
		}
		return a / b
	case Min:
		return min(a, b)
	case Max:
		return max(a, b)
	default:
		return 0
	}
}

// BinOp combines two controls elementwise. A scalar operand behaves as a
// block filled with its value. It is not safe for concurrent use.
type BinOp[S core.Sample] struct {
	op  Op
	fn  func(a, b S) S
	out []S
}

// NewBinOp returns a combinator for a built-in operator.
func NewBinOp[S core.Sample](cfg core.Config, op Op) (*BinOp[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if op < Add || op > Max {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOp, op)
	}
	return &BinOp[S]{op: op, out: make([]S, cfg.VectorSize)}, nil
}

// NewBinOpFunc returns a combinator applying fn.
func NewBinOpFunc[S core.Sample](cfg core.Config, fn func(a, b S) S) (*BinOp[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, ErrNilFunc
	}
	return &BinOp[S]{fn: fn, out: make([]S, cfg.VectorSize)}, nil
}

// Op returns the built-in operator. It is meaningless for a custom function.
func (b *BinOp[S]) Op() Op { return b.op }

// Process combines a and b into the internal buffer. Vector operands must
// have the same length, at most the vector size; the output has that length.
// With two scalars the whole vector is filled.
func (b *BinOp[S]) Process(x, y core.Control[S]) ([]S, error) {
	n, err := b.blockLen(x, y)
	if err != nil {
		return nil, err
	}
	out := b.out[:n]

	switch {
	case b.fn != nil:
		for i := range out {
			out[i] = b.fn(x.At(i), y.At(i))
		}
	case b.fast(out, x, y):
	default:
		for i := range out {
			out[i] = S(b.op.Apply(float64(x.At(i)), float64(y.At(i))))
		}
	}

	return out, nil
}

func (b *BinOp[S]) blockLen(x, y core.Control[S]) (int, error) {
	n := len(b.out)
	switch {
	case x.IsVector() && y.IsVector():
		if len(x.Values()) != len(y.Values()) {
			return 0, fmt.Errorf("%w: %d vs %d", core.ErrLengthMismatch, len(x.Values()), len(y.Values()))
		}
		n = len(x.Values())
	case x.IsVector():
		n = len(x.Values())
	case y.IsVector():
		n = len(y.Values())
	}
	if n > len(b.out) {
		return 0, fmt.Errorf("%w: %d > %d", core.ErrBlockSize, n, len(b.out))
	}
	return n, nil
}

// fast runs the operators that map onto a vecmath kernel.
func (b *BinOp[S]) fast(out []S, x, y core.Control[S]) bool {
	xv, yv := x.IsVector(), y.IsVector()

	switch {
	case xv && yv && b.op == Add:
		vecmath.Add(out, x.Values(), y.Values())
	case xv && yv && b.op == Mul:
		vecmath.Mul(out, x.Values(), y.Values())
	case xv && !yv && b.op == Add:
		vecmath.Offset(out, x.Values(), y.Value())
	case !xv && yv && b.op == Add:
		vecmath.Offset(out, y.Values(), x.Value())
	case xv && !yv && b.op == Sub:
		vecmath.Offset(out, x.Values(), -y.Value())
	case xv && !yv && b.op == Mul:
		vecmath.Scale(out, x.Values(), y.Value())
	case !xv && yv && b.op == Mul:
		vecmath.Scale(out, y.Values(), x.Value())
	default:
		return false
	}
	return true
}
