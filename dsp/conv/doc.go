// Package conv provides one-shot and streaming convolution.
//
// One-shot functions convolve two complete signals:
//
//	y, err := conv.Convolve(signal, kernel, conv.ModeFull)
//
// Kernels up to 64 taps are convolved directly; longer kernels use FFT
// overlap-add.
//
// For block processing against a fixed impulse response, build an IR once
// and attach any number of Convolvers to it:
//
//	ir, _ := conv.NewIR[float64, complex128](response, 256)
//	c, _ := conv.New(ir, conv.OverlapSave, 256)
//	out, _ := c.Process(in, 1)
//
// A Convolver splits the response into partitions of equal size and keeps a
// frequency-domain delay line of past input spectra. Its output is the
// convolution delayed by one partition.
package conv
