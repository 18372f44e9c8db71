package biquad

import "math/cmplx"

// PoleZeroPair holds the roots of one section. First-order sections report 0
// for the missing root.
type PoleZeroPair struct {
	Poles [2]complex128
	Zeros [2]complex128
}

// Poles returns the roots of 1 + A1 z^-1 + A2 z^-2.
func (c *Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the roots of B0 + B1 z^-1 + B2 z^-2.
func (c *Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// PoleZeroPair returns poles and zeros together.
func (c *Coefficients) PoleZeroPair() PoleZeroPair {
	return PoleZeroPair{Poles: c.Poles(), Zeros: c.Zeros()}
}

// Stable reports whether both poles lie strictly inside the unit circle.
//
// The check uses the stability triangle |A2| < 1, |A1| < 1 + A2.
func (c *Coefficients) Stable() bool {
	return c.A2 < 1 && c.A2 > -1 && c.A1 < 1+c.A2 && c.A1 > -(1+c.A2)
}

// PoleRadius returns the largest pole magnitude.
func (c *Coefficients) PoleRadius() float64 {
	p := c.Poles()
	return max(cmplx.Abs(p[0]), cmplx.Abs(p[1]))
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	sq := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	den := complex(2*a, 0)

	return [2]complex128{
		(complex(-b, 0) + sq) / den,
		(complex(-b, 0) - sq) / den,
	}
}
