// Package dither converts engine sample blocks to integer PCM.
//
// A Quantizer scales samples in [-1, 1] to the integer range of a bit
// depth, adds dither noise drawn from a seeded noise generator, rounds and
// clips. An optional error-feedback noise shaper moves the quantization
// error towards high frequencies.
//
// Per sample:
//
//	shaped := shaper.Shape(x*full)
//	q := clip(round(shaped + amplitude*noise))
//	shaper.RecordError(q - shaped)
//
// where full is 2^(bits-1)-1.
package dither
