// Package vecmath adapts the algo-vecmath block kernels to the generic
// sample type used by the unit generators. float64 blocks dispatch to the
// SIMD kernels; float32 blocks use scalar loops.
package vecmath

import (
	algovec "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-ugen/dsp/core"
)

// Add computes dst[i] = a[i] + b[i] over len(dst) samples.
func Add[S core.Sample](dst, a, b []S) {
	if d, ok := any(dst).([]float64); ok {
		algovec.AddBlock(d, any(a).([]float64)[:len(d)], any(b).([]float64)[:len(d)])
		return
	}
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

// AddInPlace computes dst[i] += src[i] over len(dst) samples.
func AddInPlace[S core.Sample](dst, src []S) {
	if d, ok := any(dst).([]float64); ok {
		algovec.AddBlockInPlace(d, any(src).([]float64)[:len(d)])
		return
	}
	for i := range dst {
		dst[i] += src[i]
	}
}

// Mul computes dst[i] = a[i] * b[i] over len(dst) samples.
func Mul[S core.Sample](dst, a, b []S) {
	if d, ok := any(dst).([]float64); ok {
		algovec.MulBlock(d, any(a).([]float64)[:len(d)], any(b).([]float64)[:len(d)])
		return
	}
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

// Scale computes dst[i] = src[i] * s over len(dst) samples.
func Scale[S core.Sample](dst, src []S, s S) {
	if d, ok := any(dst).([]float64); ok {
		algovec.ScaleBlock(d, any(src).([]float64)[:len(d)], float64(s))
		return
	}
	for i := range dst {
		dst[i] = src[i] * s
	}
}

// Offset computes dst[i] = src[i] + s over len(dst) samples.
func Offset[S core.Sample](dst, src []S, s S) {
	for i := range dst {
		dst[i] = src[i] + s
	}
}

// MulAdd computes dst[i] = a[i]*b[i] + c[i] over len(dst) samples.
func MulAdd[S core.Sample](dst, a, b, c []S) {
	if d, ok := any(dst).([]float64); ok {
		n := len(d)
		algovec.MulAddBlock(d, any(a).([]float64)[:n], any(b).([]float64)[:n], any(c).([]float64)[:n])
		return
	}
	for i := range dst {
		dst[i] = a[i]*b[i] + c[i]
	}
}

// AddScaled computes dst[i] += src[i] * s over len(dst) samples.
// scratch must hold at least len(dst) samples; it is used by the
// float64 path to stage the scaled block.
func AddScaled[S core.Sample](dst, src, scratch []S, s S) {
	if d, ok := any(dst).([]float64); ok {
		n := len(d)
		tmp := any(scratch).([]float64)[:n]
		algovec.ScaleBlock(tmp, any(src).([]float64)[:n], float64(s))
		algovec.AddBlockInPlace(d, tmp)
		return
	}
	for i := range dst {
		dst[i] += src[i] * s
	}
}

// Dot returns the inner product of a and b over len(a) samples.
func Dot[S core.Sample](a, b []S) float64 {
	if x, ok := any(a).([]float64); ok {
		return algovec.DotProduct(x, any(b).([]float64)[:len(x)])
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// MaxAbs returns the largest absolute value in x, 0 for an empty slice.
func MaxAbs[S core.Sample](x []S) float64 {
	if len(x) == 0 {
		return 0
	}
	if v, ok := any(x).([]float64); ok {
		return algovec.MaxAbs(v)
	}
	var m float64
	for _, s := range x {
		a := float64(s)
		if a < 0 {
			a = -a
		}
		if a > m {
			m = a
		}
	}
	return m
}

// Magnitude computes dst[i] = sqrt(re[i]^2 + im[i]^2).
func Magnitude(dst, re, im []float64) {
	algovec.Magnitude(dst, re, im)
}

// Power computes dst[i] = re[i]^2 + im[i]^2.
func Power(dst, re, im []float64) {
	algovec.Power(dst, re, im)
}

// Sum returns the sum of all elements in x.
func Sum(x []float64) float64 {
	return algovec.Sum(x)
}
