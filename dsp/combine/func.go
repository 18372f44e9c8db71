package combine

import (
	"github.com/cwbudde/algo-ugen/dsp/core"
)

// Func applies a sample mapping elementwise. It is not safe for concurrent
// use.
type Func[S core.Sample] struct {
	fn  func(S) S
	out []S
}

// NewFunc returns a mapper applying fn.
func NewFunc[S core.Sample](cfg core.Config, fn func(S) S) (*Func[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, ErrNilFunc
	}
	return &Func[S]{fn: fn, out: make([]S, cfg.VectorSize)}, nil
}

// SetFunc replaces the mapping.
func (f *Func[S]) SetFunc(fn func(S) S) error {
	if fn == nil {
		return ErrNilFunc
	}
	f.fn = fn
	return nil
}

// Process maps in into the internal buffer. len(in) must not exceed the
// vector size.
func (f *Func[S]) Process(in []S) ([]S, error) {
	if err := core.CheckBlock[S](len(in), len(f.out)); err != nil {
		return nil, err
	}
	out := f.out[:len(in)]
	for i, x := range in {
		out[i] = f.fn(x)
	}
	return out, nil
}

// Lift adapts a float64 function such as math.Tanh to a sample mapping.
func Lift[S core.Sample](fn func(float64) float64) func(S) S {
	return func(x S) S { return S(fn(float64(x))) }
}
