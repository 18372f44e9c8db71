// Package onepole provides a first-order low-pass/high-pass filter built
// on the topology-preserving transform (TPT) of an analog one-pole.
//
// The cutoff warps through tan(pi*f/fs), so the -3 dB point lands exactly
// on the requested frequency. Coefficients are recomputed only when the
// cutoff control changes.
package onepole
