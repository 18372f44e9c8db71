// Package eq provides a single parametric equaliser band built around a
// second-order allpass (Regalia-Mitra structure).
//
// The band output is 0.5*(A(x) + x + g*(x - A(x))): at the centre frequency
// the allpass inverts the signal and the gain g applies, far from it the
// allpass is in phase and the signal passes unchanged.
package eq
