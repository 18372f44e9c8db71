package interp

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ugen/dsp/core"
)

// Mode selects the interpolation used for fractional reads.
type Mode int

const (
	// Truncate reads the sample at the integer part of the position.
	Truncate Mode = iota
	// Linear interpolates between the two surrounding samples.
	Linear
	// Cubic uses 4-point Hermite interpolation.
	Cubic
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Truncate:
		return "truncate"
	case Linear:
		return "linear"
	case Cubic:
		return "cubic"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m names a known mode.
func (m Mode) Valid() bool {
	return m >= Truncate && m <= Cubic
}

// ParseMode maps a mode name to its Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "truncate", "none":
		return Truncate, nil
	case "linear":
		return Linear, nil
	case "cubic", "hermite":
		return Cubic, nil
	default:
		return 0, fmt.Errorf("interp: unknown mode %q", name)
	}
}

// Linear2 interpolates from x0 to x1 at t in [0,1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// Wrapped reads the periodic sequence tbl at position pos, measured in
// samples. Positions outside [0, len(tbl)) wrap around. An empty table
// reads as 0.
func Wrapped[S core.Sample](tbl []S, pos float64, mode Mode) float64 {
	n := len(tbl)
	if n == 0 {
		return 0
	}

	fl := math.Floor(pos)
	i := int(fl) % n
	if i < 0 {
		i += n
	}

	switch mode {
	case Truncate:
		return float64(tbl[i])
	case Cubic:
		t := pos - fl
		im1 := i - 1
		if im1 < 0 {
			im1 += n
		}
		i1 := i + 1
		if i1 >= n {
			i1 -= n
		}
		i2 := i1 + 1
		if i2 >= n {
			i2 -= n
		}
		return Hermite4(t, float64(tbl[im1]), float64(tbl[i]), float64(tbl[i1]), float64(tbl[i2]))
	default:
		t := pos - fl
		i1 := i + 1
		if i1 >= n {
			i1 -= n
		}
		return Linear2(t, float64(tbl[i]), float64(tbl[i1]))
	}
}
