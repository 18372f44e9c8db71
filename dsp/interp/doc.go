// Package interp provides the interpolation primitives shared by table
// oscillators and delay lines.
//
// Available methods, from cheapest to highest quality:
//
//   - [Truncate]: nearest lower sample, no interpolation
//   - [Linear]:   2-point linear interpolation (see [Linear2])
//   - [Cubic]:    4-point cubic Hermite (see [Hermite4])
//
// [Wrapped] reads a periodic table at a fractional position with one of
// these methods.
package interp
