// Package twopole provides a state-variable filter built from two TPT
// integrators, with simultaneous low-pass, band-pass and high-pass
// outputs, an optional saturator (tanh unless replaced) inside the integrators and a mix
// control that morphs between the responses.
package twopole
