package table

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-ugen/dsp/fft"
)

func TestNewSetLayout(t *testing.T) {
	set, err := NewSet[float64](Saw, 44100, 2048)
	if err != nil {
		t.Fatal(err)
	}

	// floor(log2(44100/16)) = 11 octaves.
	if set.Len() != 11 {
		t.Fatalf("Len() = %d, want 11", set.Len())
	}

	for k := range set.Len() {
		tbl := set.Table(k)
		if tbl.Len() != 2048 {
			t.Fatalf("table %d len = %d", k, tbl.Len())
		}
		if math.Abs(tbl.Peak()-1) > 1e-12 {
			t.Fatalf("table %d peak = %v, want 1", k, tbl.Peak())
		}
		if tbl.Base() != 16*math.Exp2(float64(k)) {
			t.Fatalf("table %d base = %v", k, tbl.Base())
		}
	}

	if h := set.Harmonics(set.Len() - 1); h != 1 {
		t.Fatalf("top table harmonics = %d, want 1", h)
	}
}

func TestSetTablesAreBandLimited(t *testing.T) {
	const (
		n  = 1024
		sr = 48000.0
	)
	set, err := NewSet[float64](Square, sr, n)
	if err != nil {
		t.Fatal(err)
	}

	eng, err := fft.New64(n)
	if err != nil {
		t.Fatal(err)
	}
	spec := make([]complex128, eng.Bins())

	for k := range set.Len() {
		if err := eng.RealForward(spec, set.Table(k).Samples()); err != nil {
			t.Fatal(err)
		}

		keep := set.Harmonics(k)
		for h := keep + 1; h < len(spec); h++ {
			if cmplx.Abs(spec[h]) > 1e-9 {
				t.Fatalf("table %d: harmonic %d = %v beyond limit %d", k, h, spec[h], keep)
			}
		}
		if cmplx.Abs(spec[2]) > 1e-9 {
			t.Fatalf("table %d: square has even harmonic %v", k, spec[2])
		}

		// Played at the highest frequency it serves, the top partial stays
		// below 0.375*sr.
		top := float64(keep) * set.Table(k).Base()
		if keep > 1 && top > 0.375*sr+1e-9 {
			t.Fatalf("table %d: top partial %v Hz exceeds limit", k, top)
		}
	}
}

func TestSetSelect(t *testing.T) {
	set, err := NewSet[float32](Triangle, 44100, 256)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		freq float64
		want int
	}{
		{freq: 0, want: 0},
		{freq: 10, want: 0},
		{freq: 16, want: 0},
		{freq: 17, want: 1},
		{freq: 32, want: 1},
		{freq: -440, want: 5},
		{freq: 440, want: 5},
		{freq: 1e9, want: set.Len() - 1},
		{freq: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		if got := set.Index(tt.freq); got != tt.want {
			t.Fatalf("Index(%v) = %d, want %d", tt.freq, got, tt.want)
		}
	}

	if set.Select(440) != set.Table(5) {
		t.Fatal("Select did not return the indexed table")
	}
}

func TestNewSetFromTableKeepsSine(t *testing.T) {
	src := MustNew[float64](Sine, 512)
	set, err := NewSetFromTable(src, 44100, WithBase(20))
	if err != nil {
		t.Fatal(err)
	}
	if set.Base() != 20 {
		t.Fatalf("Base() = %v, want 20", set.Base())
	}

	for k := range set.Len() {
		got := set.Table(k).Samples()
		for i, v := range src.Samples() {
			if math.Abs(got[i]-v) > 1e-9 {
				t.Fatalf("table %d sample %d = %v, want %v", k, i, got[i], v)
			}
		}
	}
}

func TestNewSetFromTableUsesSourceBase(t *testing.T) {
	src, err := FromSamples(MustNew[float64](Saw, 512).Samples(), 100)
	if err != nil {
		t.Fatal(err)
	}

	set, err := NewSetFromTable(src, 44100)
	if err != nil {
		t.Fatal(err)
	}
	if set.Base() != 100 {
		t.Fatalf("Base() = %v, want 100", set.Base())
	}
	if got := set.Index(400); got != 2 {
		t.Fatalf("Index(400) = %d, want 2", got)
	}

	plain, err := NewSetFromTable(MustNew[float64](Saw, 512), 44100)
	if err != nil {
		t.Fatal(err)
	}
	if plain.Base() != DefaultBase || plain.Index(400) == set.Index(400) {
		t.Fatalf("unset base: Base() = %v, Index(400) = %d", plain.Base(), plain.Index(400))
	}

	over, err := NewSetFromTable(src, 44100, WithBase(50))
	if err != nil {
		t.Fatal(err)
	}
	if over.Base() != 50 {
		t.Fatalf("WithBase did not override the source base: %v", over.Base())
	}
}

func TestBandLimitedMatchesNaiveShape(t *testing.T) {
	set, err := NewSet[float64](Saw, 44100, 1024)
	if err != nil {
		t.Fatal(err)
	}

	// The lowest table keeps hundreds of partials and tracks the rising ramp
	// away from the discontinuity.
	tbl := set.Table(0).Samples()
	if !(tbl[256] < tbl[512] && tbl[512] < tbl[768]) {
		t.Fatalf("saw not rising: %v %v %v", tbl[256], tbl[512], tbl[768])
	}
}

func TestNewSetErrors(t *testing.T) {
	if _, err := NewSet[float64](Hann, 44100, 256); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("window set error = %v", err)
	}
	if _, err := NewSet[float64](Saw, 44100, 100); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("length error = %v", err)
	}
	if _, err := NewSet[float64](Saw, 0, 256); err == nil {
		t.Fatal("expected sample rate error")
	}
	if _, err := NewSet[float64](Saw, 44100, 256, WithBase(-1)); !errors.Is(err, ErrInvalidBase) {
		t.Fatalf("base error = %v", err)
	}
	if _, err := NewSetFromTable[float64](nil, 44100); !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("nil table error = %v", err)
	}
}
