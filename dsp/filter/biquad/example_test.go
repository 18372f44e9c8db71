package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/dsp/filter/biquad"
)

func ExampleSection_ProcessSample() {
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	for i := range 6 {
		x := 0.0
		if i == 0 {
			x = 1
		}
		fmt.Printf("y[%d] = %.6f\n", i, s.ProcessSample(x))
	}
	// Output:
	// y[0] = 0.250000
	// y[1] = 0.550000
	// y[2] = 0.350000
	// y[3] = 0.048000
	// y[4] = -0.004400
	// y[5] = -0.002800
}

func ExampleLowpass() {
	c := biquad.Lowpass(1000, 0, 48000)
	fmt.Printf("corner: %+.2f dB\n", c.MagnitudeDB(1000, 48000))
	// Output:
	// corner: -3.01 dB
}

func ExampleFilter_Process() {
	f, err := biquad.New[float64](core.DefaultConfig(), biquad.Bandreject)
	if err != nil {
		fmt.Println(err)
		return
	}

	out, err := f.Process([]float64{1, 1, 1, 1}, core.Scalar(5000.0), core.Scalar(1000.0))
	if err != nil {
		fmt.Println(err)
		return
	}
	c := f.Coefficients()
	fmt.Println(len(out), c.Stable())
	// Output:
	// 4 true
}
