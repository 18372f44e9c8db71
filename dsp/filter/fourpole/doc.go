// Package fourpole provides a four-stage ladder low-pass with resonance,
// solved without a unit delay in the feedback path (zero-delay feedback
// over TPT one-pole stages).
package fourpole
