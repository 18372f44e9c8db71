// Package osc provides the phase-accumulating oscillator.
//
// One oscillator core serves three sources: a phase function (sine, cosine,
// phase ramp and the naive classic shapes), a single lookup table, or a
// band-limited table set that switches table with the playback frequency.
// Amplitude, frequency and phase modulation are controls, each either one
// value per block or one value per sample.
//
// Per sample the oscillator outputs amp*read(frac(phase+pm)) and then
// advances phase by freq/sampleRate, wrapping into [0, 1).
package osc
