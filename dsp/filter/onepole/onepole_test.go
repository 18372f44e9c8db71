package onepole

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/internal/testutil"
)

func newFilter(t *testing.T, opts ...Option) *Filter[float64] {
	t.Helper()
	f, err := New[float64](core.MustConfig(core.WithSampleRate(48000), core.WithVectorSize(512)), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestNyquistCutoffPassesInput(t *testing.T) {
	f := newFilter(t)
	in := testutil.DeterministicNoise(1, 1, 512)

	out, err := f.Process(in, core.Scalar(24000.0))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, in, 0)

	out, err = f.Process(in, core.Scalar(1e9))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestDCGainIsUnity(t *testing.T) {
	f := newFilter(t)
	var out []float64
	for range 20 {
		var err error
		out, err = f.Process(testutil.Ones(512), core.Scalar(500.0))
		if err != nil {
			t.Fatal(err)
		}
	}
	if math.Abs(out[511]-1) > 1e-9 {
		t.Fatalf("DC output = %v, want 1", out[511])
	}
}

func TestCutoffIsMinus3dB(t *testing.T) {
	const fc = 1000.0
	f := newFilter(t)

	in := testutil.DeterministicSine(fc, 48000, 1, 48000)
	out := make([]float64, len(in))
	if err := f.ProcessTo(out, in, core.Scalar(fc)); err != nil {
		t.Fatal(err)
	}

	gain := testutil.RMS(out[24000:]) / testutil.RMS(in[24000:])
	if math.Abs(gain-math.Sqrt(0.5)) > 1e-3 {
		t.Fatalf("gain at cutoff = %v, want %v", gain, math.Sqrt(0.5))
	}
}

func TestHighpassComplementsLowpass(t *testing.T) {
	lp := newFilter(t)
	hp := newFilter(t, WithHighpass())
	if !hp.Highpass() {
		t.Fatal("Highpass() = false")
	}

	in := testutil.DeterministicNoise(3, 1, 256)
	a, err := lp.Process(in, core.Scalar(2000.0))
	if err != nil {
		t.Fatal(err)
	}
	b, err := hp.Process(in, core.Scalar(2000.0))
	if err != nil {
		t.Fatal(err)
	}

	for i := range in {
		if math.Abs(a[i]+b[i]-in[i]) > 1e-12 {
			t.Fatalf("sample %d: lp+hp = %v, want %v", i, a[i]+b[i], in[i])
		}
	}
}

func TestVectorCutoffMatchesScalar(t *testing.T) {
	a := newFilter(t)
	b := newFilter(t)
	in := testutil.DeterministicNoise(5, 1, 128)

	want, err := a.Process(in, core.Scalar(300.0))
	if err != nil {
		t.Fatal(err)
	}
	got, err := b.Process(in, core.Vector(testutil.DC(300, 128)))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestImpulseResponseStaysFinite(t *testing.T) {
	for _, fc := range []float64{-10, 0, 1, 100, 10000, 23999, 24000, math.NaN(), math.Inf(1)} {
		f := newFilter(t)
		out, err := f.Process(testutil.Impulse(512, 0), core.Scalar(fc))
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireBounded(t, out, 1)
	}
}

func TestNonFiniteInputIsZeroed(t *testing.T) {
	f := newFilter(t)
	out, err := f.Process([]float64{math.NaN(), math.Inf(1), 1}, core.Scalar(1000.0))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireFinite(t, out)
	if out[0] != 0 || out[1] != 0 {
		t.Fatalf("out = %v, want leading zeros", out)
	}
}

func TestBlockErrors(t *testing.T) {
	f := newFilter(t)
	if _, err := f.Process(make([]float64, 1024), core.Scalar(1.0)); !errors.Is(err, core.ErrBlockSize) {
		t.Fatalf("error = %v, want ErrBlockSize", err)
	}
	if _, err := f.Process(make([]float64, 8), core.Vector(make([]float64, 4))); !errors.Is(err, core.ErrControlLength) {
		t.Fatalf("error = %v, want ErrControlLength", err)
	}
	if err := f.ProcessTo(make([]float64, 3), make([]float64, 4), core.Scalar(1.0)); !errors.Is(err, core.ErrLengthMismatch) {
		t.Fatalf("error = %v, want ErrLengthMismatch", err)
	}
}

func TestFloat32(t *testing.T) {
	f, err := New[float32](core.MustConfig(core.WithVectorSize(64)))
	if err != nil {
		t.Fatal(err)
	}
	out, err := f.Process(testutil.Convert[float32](testutil.Impulse(64, 0)), core.Scalar[float32](1000))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireBounded(t, out, 1)
	f.Reset()
}
