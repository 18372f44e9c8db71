package biquad

import "math"

// Design maps a centre or cutoff frequency and a bandwidth, both in Hz, to
// section coefficients. Designs that have no bandwidth parameter ignore bw.
type Design func(freq, bw, sampleRate float64) Coefficients

// Frequencies are clamped into (0, Nyquist) so the tangent warps stay finite.
func clampFreq(f, sampleRate float64) float64 {
	if math.IsNaN(f) {
		f = 0
	}
	return min(max(f, 1e-3), 0.499*sampleRate)
}

func resonPoles(freq, bw, sampleRate float64) (a1, a2 float64) {
	freq = clampFreq(freq, sampleRate)
	bw = clampFreq(bw, sampleRate)

	a2 = math.Exp(-2 * math.Pi * bw / sampleRate)
	a1 = (-4 * a2 / (1 + a2)) * math.Cos(2*math.Pi*freq/sampleRate)

	return a1, a2
}

// Reson is an unscaled two-pole resonator peaking at freq with pole radius
// exp(-pi*bw/fs).
func Reson(freq, bw, sampleRate float64) Coefficients {
	a1, a2 := resonPoles(freq, bw, sampleRate)
	return Coefficients{B0: 1, A1: a1, A2: a2}
}

// ResonScaled1 is a resonator with unity gain at its peak frequency.
func ResonScaled1(freq, bw, sampleRate float64) Coefficients {
	a1, a2 := resonPoles(freq, bw, sampleRate)
	g := (1 - a2) * math.Sqrt(max(0, 1-a1*a1/(4*a2)))

	return Coefficients{B0: g, A1: a1, A2: a2}
}

// ResonScaled2 is a resonator with unity white-noise (RMS) gain.
func ResonScaled2(freq, bw, sampleRate float64) Coefficients {
	a1, a2 := resonPoles(freq, bw, sampleRate)
	r := a2 + 1
	g := math.Sqrt(max(0, (r*r-a1*a1)*(1-a2)/r))

	return Coefficients{B0: g, A1: a1, A2: a2}
}

// Lowpass is a second-order Butterworth low-pass with -3 dB at freq.
func Lowpass(freq, _, sampleRate float64) Coefficients {
	w := 1 / math.Tan(math.Pi*clampFreq(freq, sampleRate)/sampleRate)
	sqw := math.Sqrt2 * w
	wsq := w * w
	g := 1 / (1 + sqw + wsq)

	return Coefficients{
		B0: g,
		B1: 2 * g,
		B2: g,
		A1: 2 * (1 - wsq) * g,
		A2: (1 - sqw + wsq) * g,
	}
}

// Highpass is a second-order Butterworth high-pass with -3 dB at freq.
func Highpass(freq, _, sampleRate float64) Coefficients {
	w := math.Tan(math.Pi * clampFreq(freq, sampleRate) / sampleRate)
	sqw := math.Sqrt2 * w
	wsq := w * w
	g := 1 / (1 + sqw + wsq)

	return Coefficients{
		B0: g,
		B1: -2 * g,
		B2: g,
		A1: 2 * (wsq - 1) * g,
		A2: (1 - sqw + wsq) * g,
	}
}

// Bandpass is a second-order Butterworth band-pass centred on freq with a
// -3 dB bandwidth of bw.
func Bandpass(freq, bw, sampleRate float64) Coefficients {
	w := 1 / math.Tan(math.Pi*clampFreq(bw, sampleRate)/sampleRate)
	cosw := 2 * math.Cos(2*math.Pi*clampFreq(freq, sampleRate)/sampleRate)
	g := 1 / (1 + w)

	return Coefficients{
		B0: g,
		B2: -g,
		A1: -w * cosw * g,
		A2: (w - 1) * g,
	}
}

// Bandreject is a second-order Butterworth notch at freq with a -3 dB
// bandwidth of bw.
func Bandreject(freq, bw, sampleRate float64) Coefficients {
	w := math.Tan(math.Pi * clampFreq(bw, sampleRate) / sampleRate)
	cosw := 2 * math.Cos(2*math.Pi*clampFreq(freq, sampleRate)/sampleRate)
	g := 1 / (1 + w)

	return Coefficients{
		B0: g,
		B1: -cosw * g,
		B2: g,
		A1: -cosw * g,
		A2: (1 - w) * g,
	}
}
