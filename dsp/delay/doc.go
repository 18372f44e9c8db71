// Package delay provides a circular delay line and a feedback delay unit
// generator built on it.
//
// [Line] is the raw ring buffer with integer and interpolated reads. [Delay]
// wraps a line with feedback, a delayed output gain and a direct gain, and
// can run either on memory it allocates or on memory supplied by the caller.
package delay
