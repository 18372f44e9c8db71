// Package biquad implements second-order IIR sections and the block filter
// built on them.
//
// [Coefficients] describe one section in Direct Form II Transposed with a0
// normalised to 1. A [Section] holds the two state words and runs samples or
// blocks through the coefficients. The designs in this package ([Reson],
// [Lowpass], [Bandpass], ...) map a frequency and bandwidth to coefficients,
// and [Filter] applies a design to a block, recomputing coefficients only
// when the controls change.
package biquad
