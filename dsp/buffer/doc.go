// Package buffer provides the fixed-length sample buffer shared between
// unit generators, plus a pool that hands out block buffers of one size.
// Unit generators accept and return raw slices; Buffer is the owning
// wrapper used when a host wires generators together.
package buffer
