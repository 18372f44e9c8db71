package dither

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/internal/testutil"
)

var testCfg = core.MustConfig(core.WithSampleRate(44100), core.WithVectorSize(256))

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name  string
		cfg   core.Config
		depth int
		opts  []Option
		want  error
	}{
		{"zero sr", core.Config{VectorSize: 64}, 16, nil, core.ErrInvalidSampleRate},
		{"depth 1", testCfg, 1, nil, ErrInvalidBitDepth},
		{"depth 33", testCfg, 33, nil, ErrInvalidBitDepth},
		{"bad kind", testCfg, 16, []Option{WithKind(Kind(9))}, ErrInvalidKind},
		{"bad preset", testCfg, 16, []Option{WithPreset(Preset(-1))}, ErrInvalidPreset},
		{"negative amplitude", testCfg, 16, []Option{WithAmplitude(-1)}, ErrInvalidAmplitude},
		{"NaN amplitude", testCfg, 16, []Option{WithAmplitude(math.NaN())}, ErrInvalidAmplitude},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New[float64](tt.cfg, tt.depth, tt.opts...); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	q, err := New[float64](testCfg, 16)
	if err != nil {
		t.Fatal(err)
	}
	if q.BitDepth() != 16 || q.Kind() != Triangular || q.Amplitude() != 1 || q.FullScale() != 32767 {
		t.Fatalf("depth=%d kind=%v amp=%g full=%d", q.BitDepth(), q.Kind(), q.Amplitude(), q.FullScale())
	}
}

func TestUnditheredRounding(t *testing.T) {
	q, err := New[float64](testCfg, 8, WithKind(None))
	if err != nil {
		t.Fatal(err)
	}

	src := []float64{0, 1, -1, 0.5, -0.5, 2, -2, math.NaN()}
	dst := make([]int, len(src))
	if err := q.QuantizeTo(dst, src); err != nil {
		t.Fatal(err)
	}

	want := []int{0, 127, -127, 64, -64, 127, -128, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestDitherErrorIsBounded(t *testing.T) {
	for _, kind := range []Kind{Rectangular, Triangular} {
		t.Run(kind.String(), func(t *testing.T) {
			q, err := New[float64](testCfg, 16, WithKind(kind))
			if err != nil {
				t.Fatal(err)
			}

			src := testutil.DeterministicSine(440, 44100, 0.5, 4096)
			dst := make([]int, len(src))
			if err := q.QuantizeTo(dst, src); err != nil {
				t.Fatal(err)
			}

			var sum float64
			for i, v := range dst {
				e := float64(v) - src[i]*32767
				// Round-off plus at most one LSB of dither.
				if math.Abs(e) > 1.5+1e-9 {
					t.Fatalf("sample %d: error %g LSB", i, e)
				}
				sum += e
			}
			if mean := sum / float64(len(dst)); math.Abs(mean) > 0.05 {
				t.Fatalf("mean error %g LSB", mean)
			}
		})
	}
}

func TestDitherDecorrelatesSilence(t *testing.T) {
	q, err := New[float64](testCfg, 16)
	if err != nil {
		t.Fatal(err)
	}

	dst := make([]int, 1024)
	if err := q.QuantizeTo(dst, make([]float64, 1024)); err != nil {
		t.Fatal(err)
	}

	var nonzero int
	for _, v := range dst {
		if v < -1 || v > 1 {
			t.Fatalf("dithered silence reached %d", v)
		}
		if v != 0 {
			nonzero++
		}
	}
	if nonzero == 0 {
		t.Fatal("triangular dither left silence untouched")
	}
}

func TestTriangularErrorIsUnbiased(t *testing.T) {
	q, err := New[float64](testCfg, 16)
	if err != nil {
		t.Fatal(err)
	}

	// A constant halfway between two codes: without noise every sample
	// would round the same way.
	src := make([]float64, 1<<15)
	for i := range src {
		src[i] = 100.5 / 32767
	}
	dst := make([]int, len(src))
	if err := q.QuantizeTo(dst, src); err != nil {
		t.Fatal(err)
	}

	var sum float64
	for _, v := range dst {
		sum += float64(v) - 100.5
	}
	if mean := sum / float64(len(dst)); math.Abs(mean) > 0.02 {
		t.Fatalf("mean error %g LSB", mean)
	}
}

func TestShapedErrorStaysBounded(t *testing.T) {
	q, err := New[float32](testCfg, 16, WithPreset(Preset9FC))
	if err != nil {
		t.Fatal(err)
	}

	src := testutil.Convert[float32](testutil.DeterministicSine(1000, 44100, 0.8, 8192))
	dst := make([]int, len(src))
	if err := q.QuantizeTo(dst, src); err != nil {
		t.Fatal(err)
	}

	for i, v := range dst {
		if e := float64(v) - float64(src[i])*32767; math.Abs(e) > 64 {
			t.Fatalf("sample %d: shaped error %g LSB", i, e)
		}
	}
}

func TestProcessRescales(t *testing.T) {
	q, err := New[float64](testCfg, 24, WithKind(None))
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.DeterministicNoise(2, 0.9, 100)
	out, err := q.Process(in)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, in, 1.0/8388607)

	if _, err := q.Process(make([]float64, 257)); !errors.Is(err, core.ErrBlockSize) {
		t.Fatalf("oversized block: %v", err)
	}
}

func TestQuantizeToLongBlockAndMismatch(t *testing.T) {
	q, _ := New[float64](core.MustConfig(core.WithVectorSize(4)), 16, WithKind(None))

	src := testutil.Ones(10)
	dst := make([]int, 10)
	if err := q.QuantizeTo(dst, src); err != nil {
		t.Fatal(err)
	}
	for i, v := range dst {
		if v != 32767 {
			t.Fatalf("dst[%d] = %d", i, v)
		}
	}

	if err := q.QuantizeTo(make([]int, 3), src); !errors.Is(err, core.ErrLengthMismatch) {
		t.Fatalf("mismatch: %v", err)
	}
}

func TestResetReproduces(t *testing.T) {
	q, _ := New[float64](testCfg, 16, WithPreset(Preset3FC), WithSeed(9))

	src := testutil.DeterministicSine(300, 44100, 0.3, 512)
	a := make([]int, len(src))
	b := make([]int, len(src))
	_ = q.QuantizeTo(a, src)
	q.Reset()
	_ = q.QuantizeTo(b, src)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs after reset: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestFIRShaperFeedsBackError(t *testing.T) {
	s := NewFIRShaper([]float64{1, -0.5})
	if s.Order() != 2 {
		t.Fatalf("Order() = %d", s.Order())
	}

	if got := s.Shape(1); got != 1 {
		t.Fatalf("first Shape = %g", got)
	}
	s.RecordError(0.25)
	if got := s.Shape(1); got != 0.75 {
		t.Fatalf("second Shape = %g, want 0.75", got)
	}
	s.RecordError(-0.5)
	// 1 - (1*-0.5) - (-0.5*0.25)
	if got := s.Shape(1); got != 1.625 {
		t.Fatalf("third Shape = %g, want 1.625", got)
	}

	s.Reset()
	if got := s.Shape(1); got != 1 {
		t.Fatalf("Shape after Reset = %g", got)
	}
}

func TestNames(t *testing.T) {
	for _, k := range []Kind{None, Rectangular, Triangular} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	for p := PresetNone; p < presetCount; p++ {
		got, err := ParsePreset(p.String())
		if err != nil || got != p {
			t.Fatalf("ParsePreset(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParseKind("gaussian"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("ParseKind: %v", err)
	}
	if _, err := ParsePreset("x"); !errors.Is(err, ErrInvalidPreset) {
		t.Fatalf("ParsePreset: %v", err)
	}
	if Kind(7).String() != "Kind(7)" || Preset(40).String() != "Preset(40)" {
		t.Fatal("unexpected fallback names")
	}
	if PresetNone.Coefficients() != nil || len(Preset9FC.Coefficients()) != 9 {
		t.Fatal("unexpected preset coefficients")
	}
}

func BenchmarkQuantize(b *testing.B) {
	q, _ := New[float64](testCfg, 16, WithPreset(Preset9FC))
	src := testutil.DeterministicNoise(1, 0.5, 256)
	dst := make([]int, 256)

	for b.Loop() {
		_ = q.QuantizeTo(dst, src)
	}
}
