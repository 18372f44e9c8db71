// Package fft provides the spectral engine: forward and inverse complex
// transforms selected by a direction flag, plus real-to-complex and
// complex-to-real conversions in packed and unpacked bin layouts.
//
// Transforms are unnormalized in the forward direction and scaled by 1/N
// in the inverse direction, so Forward followed by Inverse reproduces the
// input. Sizes must be powers of two.
package fft
