package dither

// NoiseShaper filters quantization error back into the signal. Per sample
// the caller runs Shape, quantizes, then passes the error to RecordError.
type NoiseShaper interface {
	Shape(x float64) float64
	RecordError(e float64)
	Reset()
}

// FIRShaper subtracts a weighted sum of past quantization errors.
type FIRShaper struct {
	coeffs  []float64
	history []float64
	pos     int
}

// NewFIRShaper returns a shaper with a copy of coeffs. No coefficients
// give a pass-through shaper.
func NewFIRShaper(coeffs []float64) *FIRShaper {
	s := &FIRShaper{coeffs: append([]float64(nil), coeffs...)}
	if len(coeffs) > 0 {
		s.history = make([]float64, len(coeffs))
	}
	return s
}

// Order returns the number of coefficients.
func (s *FIRShaper) Order() int { return len(s.coeffs) }

// Shape subtracts the filtered error history from x.
func (s *FIRShaper) Shape(x float64) float64 {
	n := len(s.coeffs)
	if n == 0 {
		return x
	}

	// history[pos] is the newest error.
	for i, c := range s.coeffs {
		x -= c * s.history[(s.pos-i+n)%n]
	}
	s.pos = (s.pos + 1) % n

	return x
}

// RecordError stores the error of the sample passed to the last Shape.
func (s *FIRShaper) RecordError(e float64) {
	if len(s.coeffs) == 0 {
		return
	}
	s.history[s.pos] = e
}

// Reset clears the error history.
func (s *FIRShaper) Reset() {
	clear(s.history)
	s.pos = 0
}
