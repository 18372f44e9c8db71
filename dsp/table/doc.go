// Package table provides single-period lookup tables for oscillators and
// band-limited table sets that pick one table per octave of playback
// frequency.
//
// Tables are immutable after construction and may be shared by any number
// of oscillators.
package table
