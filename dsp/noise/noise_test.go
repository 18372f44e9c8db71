package noise

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/internal/testutil"
)

func newGen[S core.Sample](t *testing.T, vs int, seed uint64) *Generator[S] {
	t.Helper()
	g, err := New[S](core.MustConfig(core.WithSampleRate(1000), core.WithVectorSize(vs)), seed)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestWhiteIsBoundedAndCentered(t *testing.T) {
	g := newGen[float64](t, 4096, 1)

	out, err := g.Process(core.Scalar(0.5))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireBounded(t, out, 0.5)

	var mean float64
	for _, v := range out {
		mean += v
	}
	mean /= float64(len(out))
	if math.Abs(mean) > 0.03 {
		t.Fatalf("mean = %g", mean)
	}

	// Uniform on [-a, a) has RMS a/sqrt(3).
	if rms := testutil.RMS(out); math.Abs(rms-0.5/math.Sqrt(3)) > 0.02 {
		t.Fatalf("rms = %g", rms)
	}
}

func TestSeedDeterminism(t *testing.T) {
	a := newGen[float64](t, 64, 7)
	b := newGen[float64](t, 64, 7)
	c := newGen[float64](t, 64, 8)

	ya, _ := a.Process(core.Scalar(1.0))
	yb, _ := b.Process(core.Scalar(1.0))
	testutil.RequireSliceNearlyEqual(t, yb, ya, 0)

	yc, _ := c.Process(core.Scalar(1.0))
	if d, _ := testutil.MaxAbsDiff(ya, yc); d == 0 {
		t.Fatal("different seeds produced the same block")
	}
}

func TestResetRewinds(t *testing.T) {
	g := newGen[float32](t, 32, 3)

	first, _ := g.Process(core.Scalar[float32](1))
	first = append([]float32(nil), first...)
	_, _ = g.Process(core.Scalar[float32](1))

	g.Reset()
	again, _ := g.Process(core.Scalar[float32](1))
	testutil.RequireSliceNearlyEqual(t, again, first, 0)
}

func TestSampleAndHold(t *testing.T) {
	g := newGen[float64](t, 40, 2)

	// 100 Hz at 1 kHz holds each value for 10 samples.
	out, err := g.ProcessRate(core.Scalar(1.0), core.Scalar(100.0), false)
	if err != nil {
		t.Fatal(err)
	}
	for i := range out {
		if i%10 != 0 && out[i] != out[i-1] {
			t.Fatalf("out[%d] = %g changed inside a hold period", i, out[i])
		}
	}
	if out[0] == out[10] && out[10] == out[20] {
		t.Fatal("held value never changed")
	}
}

func TestInterpolatedRamps(t *testing.T) {
	g := newGen[float64](t, 40, 5)

	out, err := g.ProcessRate(core.Scalar(1.0), core.Scalar(100.0), true)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireBounded(t, out, 1)

	// Within one period the steps are equal.
	for p := 0; p < 4; p++ {
		step := out[p*10+2] - out[p*10+1]
		for i := p*10 + 2; i < p*10+10; i++ {
			if math.Abs(out[i]-out[i-1]-step) > 1e-12 {
				t.Fatalf("period %d: uneven step at %d", p, i)
			}
		}
	}
}

func TestRateAtOrAboveSampleRateIsWhite(t *testing.T) {
	g := newGen[float64](t, 16, 9)
	w := newGen[float64](t, 16, 9)

	got, _ := g.ProcessRate(core.Scalar(1.0), core.Scalar(5000.0), false)
	want, _ := w.Process(core.Scalar(1.0))
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestNonPositiveRateHolds(t *testing.T) {
	g := newGen[float64](t, 64, 4)

	out, _ := g.ProcessRate(core.Scalar(1.0), core.Scalar(0.0), false)
	for i := range out {
		if out[i] != out[0] {
			t.Fatalf("out[%d] = %g, want held %g", i, out[i], out[0])
		}
	}
}

func TestTPDF(t *testing.T) {
	g := newGen[float64](t, 8192, 11)

	out, err := g.ProcessTPDF(core.Scalar(1.0))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireBounded(t, out, 1)

	// Triangular on [-1, 1] has RMS 1/sqrt(6).
	if rms := testutil.RMS(out); math.Abs(rms-1/math.Sqrt(6)) > 0.02 {
		t.Fatalf("rms = %g", rms)
	}

	var near int
	for _, v := range out {
		if math.Abs(v) < 0.5 {
			near++
		}
	}
	// Three quarters of a triangular distribution lies within half its range.
	if frac := float64(near) / float64(len(out)); math.Abs(frac-0.75) > 0.03 {
		t.Fatalf("fraction within 0.5 = %g", frac)
	}
}

func TestTPDFHasNoShortPeriod(t *testing.T) {
	for _, seed := range []uint64{1, 11, 42} {
		g := newGen[float64](t, 65536, seed)

		out, err := g.ProcessTPDF(core.Scalar(1.0))
		if err != nil {
			t.Fatal(err)
		}

		for p := 1; p <= 1024; p++ {
			repeats := true
			for i := 0; i+p < 4096; i++ {
				if out[i] != out[i+p] {
					repeats = false
					break
				}
			}
			if repeats {
				t.Fatalf("seed %d: sequence repeats every %d samples", seed, p)
			}
		}

		var near int
		for _, v := range out {
			if math.Abs(v) < 0.5 {
				near++
			}
		}
		if frac := float64(near) / float64(len(out)); math.Abs(frac-0.75) > 0.01 {
			t.Fatalf("seed %d: fraction within 0.5 = %g", seed, frac)
		}
	}
}

func TestTPDFFloat32VectorAmp(t *testing.T) {
	g := newGen[float32](t, 8, 1)

	amp := []float32{0, 0, 0, 0, 1, 1, 1, 1}
	out, err := g.ProcessTPDF(core.Vector(amp))
	if err != nil {
		t.Fatal(err)
	}
	for i := range 4 {
		if out[i] != 0 {
			t.Fatalf("out[%d] = %g with zero amplitude", i, out[i])
		}
	}
	testutil.RequireBounded(t, out, 1)
}

func TestProcessToLongerThanVector(t *testing.T) {
	g := newGen[float64](t, 4, 1)

	dst := make([]float64, 10)
	if err := g.ProcessTPDFTo(dst, core.Vector(testutil.Ones(10))); err != nil {
		t.Fatal(err)
	}
	testutil.RequireBounded(t, dst, 1)
	if testutil.RMS(dst[4:]) == 0 {
		t.Fatal("tail not filled")
	}
}

func TestShortControlRejected(t *testing.T) {
	g := newGen[float64](t, 8, 1)

	if _, err := g.Process(core.Vector([]float64{1, 1})); err == nil {
		t.Fatal("short amplitude vector accepted")
	}
	if _, err := g.ProcessRate(core.Scalar(1.0), core.Vector([]float64{1}), true); err == nil {
		t.Fatal("short rate vector accepted")
	}
}

func TestNonFiniteAmplitude(t *testing.T) {
	g := newGen[float64](t, 8, 1)

	out, err := g.Process(core.Scalar(math.NaN()))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireFinite(t, out)
}

func BenchmarkTPDF(b *testing.B) {
	g, _ := New[float64](core.DefaultConfig(), 1)
	amp := core.Scalar(1.0)

	for b.Loop() {
		_, _ = g.ProcessTPDF(amp)
	}
}
