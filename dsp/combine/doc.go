// Package combine provides stateless block combinators: elementwise binary
// operators with scalar broadcasting, a gain mixer and a sample mapping.
//
// None of the types keep state between calls beyond their output buffer;
// float64 blocks run through the algo-vecmath kernels where one exists.
package combine
