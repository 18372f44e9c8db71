package combine

import (
	"fmt"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/internal/vecmath"
)

// Mix sums blocks with per-input gains. It is not safe for concurrent use.
type Mix[S core.Sample] struct {
	out     []S
	scratch []S
}

// NewMix returns a mixer for blocks of up to cfg.VectorSize samples.
func NewMix[S core.Sample](cfg core.Config) (*Mix[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Mix[S]{
		out:     make([]S, cfg.VectorSize),
		scratch: make([]S, cfg.VectorSize),
	}, nil
}

// Process returns sum(gains[i] * inputs[i]). All inputs must have the same
// length. A nil gains slice mixes at unity; otherwise it needs one gain per
// input. With no inputs the result is a silent vector.
func (m *Mix[S]) Process(inputs [][]S, gains []S) ([]S, error) {
	if gains != nil && len(gains) != len(inputs) {
		return nil, fmt.Errorf("%w: %d gains for %d inputs", core.ErrLengthMismatch, len(gains), len(inputs))
	}
	if len(inputs) == 0 {
		core.Zero(m.out)
		return m.out, nil
	}

	n := len(inputs[0])
	for _, in := range inputs[1:] {
		if len(in) != n {
			return nil, fmt.Errorf("%w: input of %d samples, want %d", core.ErrLengthMismatch, len(in), n)
		}
	}
	if err := core.CheckBlock[S](n, len(m.out)); err != nil {
		return nil, err
	}

	out := m.out[:n]
	core.Zero(out)
	for i, in := range inputs {
		if gains == nil {
			vecmath.AddInPlace(out, in)
			continue
		}
		vecmath.AddScaled(out, in, m.scratch, gains[i])
	}

	return out, nil
}
