package biquad

import "github.com/cwbudde/algo-ugen/dsp/core"

// Coefficients holds the transfer function of one second-order section:
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
//
// Processing uses Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Section is a single biquad with state. The zero value is a silent section.
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a section with zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = core.FlushDenormals(s.B1*x - s.A1*y + s.d1)
	s.d1 = core.FlushDenormals(s.B2*x - s.A2*y)

	return y
}

// ProcessBlock filters buf in place.
func (s *Section) ProcessBlock(buf []float64) {
	s.ProcessBlockTo(buf, buf)
}

// ProcessBlockTo filters src into dst. dst must be at least as long as src
// and may alias it.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]

	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	d0, d1 := s.d0, s.d1

	i := 0
	for ; i+1 < len(src); i += 2 {
		x0 := src[i]
		y0 := b0*x0 + d0
		t0 := b1*x0 - a1*y0 + d1
		t1 := b2*x0 - a2*y0

		x1 := src[i+1]
		y1 := b0*x1 + t0
		d0 = b1*x1 - a1*y1 + t1
		d1 = b2*x1 - a2*y1

		dst[i] = y0
		dst[i+1] = y1
	}

	if i < len(src) {
		x := src[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		dst[i] = y
	}

	s.d0 = core.FlushDenormals(d0)
	s.d1 = core.FlushDenormals(d1)
}

// Reset clears the state.
func (s *Section) Reset() {
	s.d0, s.d1 = 0, 0
}

// State returns the state words [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores state saved with State.
func (s *Section) SetState(state [2]float64) {
	s.d0, s.d1 = state[0], state[1]
}

// ImpulseResponse returns the first n samples of the impulse response. The
// section state is left untouched.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	tmp := Section{Coefficients: s.Coefficients}
	ir := make([]float64, n)
	ir[0] = 1
	tmp.ProcessBlock(ir)

	return ir
}
