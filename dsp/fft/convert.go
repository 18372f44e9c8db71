package fft

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ToComplex writes src into the real parts of dst and clears the
// imaginary parts. Elements of dst beyond len(src) are set to zero.
func ToComplex[F algofft.Float, C algofft.Complex](dst []C, src []F) {
	n := min(len(dst), len(src))
	switch d := any(dst).(type) {
	case []complex128:
		for i := range n {
			d[i] = complex(float64(src[i]), 0)
		}
	case []complex64:
		for i := range n {
			d[i] = complex(float32(src[i]), 0)
		}
	}
	clear(dst[n:])
}

// RealPart writes the real parts of src to dst.
func RealPart[F algofft.Float, C algofft.Complex](dst []F, src []C) {
	n := min(len(dst), len(src))
	switch s := any(src).(type) {
	case []complex128:
		for i := range n {
			dst[i] = F(real(s[i]))
		}
	case []complex64:
		for i := range n {
			dst[i] = F(real(s[i]))
		}
	}
}

// Magnitude writes |src[i]| to dst.
func Magnitude[F algofft.Float, C algofft.Complex](dst []F, src []C) {
	n := min(len(dst), len(src))
	switch s := any(src).(type) {
	case []complex128:
		for i := range n {
			dst[i] = F(math.Hypot(real(s[i]), imag(s[i])))
		}
	case []complex64:
		for i := range n {
			dst[i] = F(math.Hypot(float64(real(s[i])), float64(imag(s[i]))))
		}
	}
}

// Bin returns the real and imaginary parts of c.
func Bin[C algofft.Complex](c C) (re, im float64) {
	switch v := any(c).(type) {
	case complex128:
		return real(v), imag(v)
	case complex64:
		return float64(real(v)), float64(imag(v))
	}
	return 0, 0
}

// MakeBin builds a complex value of type C.
func MakeBin[C algofft.Complex](re, im float64) C {
	var c C
	switch p := any(&c).(type) {
	case *complex128:
		*p = complex(re, im)
	case *complex64:
		*p = complex64(complex(re, im))
	}
	return c
}

// packSpectrum copies the non-redundant half of a full spectrum into dst.
func packSpectrum[C algofft.Complex](dst, full []C, packed bool) {
	n := len(full)
	half := n / 2
	copy(dst[1:half], full[1:half])
	if packed {
		dc, _ := Bin(full[0])
		ny, _ := Bin(full[half])
		dst[0] = MakeBin[C](dc, ny)
		return
	}
	dc, _ := Bin(full[0])
	ny, _ := Bin(full[half])
	dst[0] = MakeBin[C](dc, 0)
	dst[half] = MakeBin[C](ny, 0)
}

// expandHermitian rebuilds the full conjugate-symmetric spectrum of a real
// signal from its non-redundant half.
func expandHermitian[C algofft.Complex](full, half []C, packed bool) {
	n := len(full)
	h := n / 2

	var dc, ny float64
	if packed {
		dc, ny = Bin(half[0])
	} else {
		dc, _ = Bin(half[0])
		ny, _ = Bin(half[h])
	}
	full[0] = MakeBin[C](dc, 0)
	full[h] = MakeBin[C](ny, 0)

	for k := 1; k < h; k++ {
		re, im := Bin(half[k])
		full[k] = half[k]
		full[n-k] = MakeBin[C](re, -im)
	}
}
