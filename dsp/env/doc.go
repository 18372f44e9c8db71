// Package env implements gated multi-segment envelope generators.
//
// An envelope shape is an ordered list of [Breakpoint] values. When the gate
// rises the generator ramps linearly from its current level to each
// breakpoint level in turn and then holds the last level while the gate is
// high. When the gate falls it decays exponentially from wherever it is,
// reaching -60 dB after the release time, and settles at zero.
package env
