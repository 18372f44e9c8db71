package fft_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ugen/dsp/fft"
)

func ExampleEngine_RealForward() {
	e, err := fft.New64(8)
	if err != nil {
		fmt.Println(err)
		return
	}

	src := make([]float64, 8)
	for i := range src {
		src[i] = math.Cos(2 * math.Pi * float64(i) / 8)
	}

	spec := make([]complex128, e.Bins())
	if err := e.RealForward(spec, src); err != nil {
		fmt.Println(err)
		return
	}

	for k, c := range spec {
		fmt.Printf("%d:%.1f ", k, math.Abs(real(c)))
	}
	fmt.Println()

	// Output:
	// 0:0.0 1:4.0 2:0.0 3:0.0 4:0.0
}
