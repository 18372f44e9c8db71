package biquad

import (
	"math"
	"testing"
)

const sr = 48000.0

func gain(c Coefficients, f float64) float64 {
	return math.Sqrt(c.MagnitudeSquared(f, sr))
}

func TestButterworthCorners(t *testing.T) {
	const fc = 2000.0
	lp := Lowpass(fc, 0, sr)
	hp := Highpass(fc, 0, sr)

	tests := []struct {
		name string
		c    Coefficients
		f    float64
		want float64
	}{
		{"lowpass dc", lp, 0, 1},
		{"lowpass corner", lp, fc, math.Sqrt2 / 2},
		{"lowpass nyquist", lp, sr / 2, 0},
		{"highpass dc", hp, 0, 0},
		{"highpass corner", hp, fc, math.Sqrt2 / 2},
		{"highpass nyquist", hp, sr / 2, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if g := gain(tc.c, tc.f); math.Abs(g-tc.want) > 1e-6 {
				t.Fatalf("|H(%v)| = %v, want %v", tc.f, g, tc.want)
			}
		})
	}
}

func TestBandDesigns(t *testing.T) {
	const fc, bw = 3000.0, 400.0
	bp := Bandpass(fc, bw, sr)
	br := Bandreject(fc, bw, sr)

	if g := gain(bp, fc); math.Abs(g-1) > 1e-9 {
		t.Fatalf("bandpass centre gain = %v", g)
	}
	if g := gain(bp, 0); g > 1e-9 {
		t.Fatalf("bandpass dc gain = %v", g)
	}
	if g := gain(br, fc); g > 1e-6 {
		t.Fatalf("bandreject centre gain = %v", g)
	}
	if g := gain(br, 0); math.Abs(g-1) > 1e-9 {
		t.Fatalf("bandreject dc gain = %v", g)
	}
	if g := gain(br, sr/2); math.Abs(g-1) > 1e-9 {
		t.Fatalf("bandreject nyquist gain = %v", g)
	}

	// The band edges sit roughly bw apart around the centre.
	if g := gain(bp, fc+bw); g > 0.7 {
		t.Fatalf("bandpass gain one bandwidth away = %v", g)
	}
}

func TestResonScalings(t *testing.T) {
	const fc, bw = 1500.0, 100.0

	raw := Reson(fc, bw, sr)
	if raw.B0 != 1 {
		t.Fatalf("unscaled B0 = %v", raw.B0)
	}

	peak := ResonScaled1(fc, bw, sr)
	if peak.A1 != raw.A1 || peak.A2 != raw.A2 {
		t.Fatal("scaling changed the poles")
	}
	if g := gain(peak, fc); math.Abs(g-1) > 1e-9 {
		t.Fatalf("peak-scaled gain at centre = %v", g)
	}
	for _, f := range []float64{fc / 2, fc * 2} {
		if g := gain(peak, f); g >= 1 {
			t.Fatalf("peak-scaled gain at %v = %v, want < 1", f, g)
		}
	}

	rms := ResonScaled2(fc, bw, sr)
	var energy float64
	for _, h := range NewSection(rms).ImpulseResponse(1 << 15) {
		energy += h * h
	}
	if math.Abs(energy-1) > 1e-6 {
		t.Fatalf("rms-scaled noise gain = %v, want 1", energy)
	}
}

func TestDesignsClampArguments(t *testing.T) {
	designs := map[string]Design{
		"reson":      Reson,
		"reson1":     ResonScaled1,
		"reson2":     ResonScaled2,
		"lowpass":    Lowpass,
		"highpass":   Highpass,
		"bandpass":   Bandpass,
		"bandreject": Bandreject,
	}
	args := [][2]float64{
		{-100, -5},
		{sr, sr},
		{math.NaN(), math.NaN()},
		{1e9, 10},
	}

	for name, d := range designs {
		for _, a := range args {
			c := d(a[0], a[1], sr)
			for _, v := range []float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("%s%v: non-finite coefficients %+v", name, a, c)
				}
			}
		}

		if c := d(1000, 200, sr); !c.Stable() {
			t.Fatalf("%s: unstable at nominal settings: %+v", name, c)
		}
	}
}
