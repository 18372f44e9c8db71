package table

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/dsp/fft"
)

// DefaultBase is the fundamental of the lowest table in a Set.
const DefaultBase = 16.0

// harmonicLimit is the highest partial frequency kept in a band-limited
// table, as a fraction of the sample rate.
const harmonicLimit = 0.375

// Set is a band-limited table set: table k holds the waveform with all
// partials above harmonicLimit*sampleRate removed when played at
// base*2^k. Select returns the table to use for a playback frequency.
type Set[S core.Sample] struct {
	tables     []*Table[S]
	base       float64
	sampleRate float64
}

type setConfig struct {
	base float64
}

// SetOption configures a Set.
type SetOption func(*setConfig) error

// WithBase sets the fundamental of the lowest table in Hz.
func WithBase(base float64) SetOption {
	return func(cfg *setConfig) error {
		if base <= 0 || !core.IsFinite(base) {
			return fmt.Errorf("%w: %v", ErrInvalidBase, base)
		}
		cfg.base = base
		return nil
	}
}

// NewSet builds a band-limited set for a built-in waveform. length must be
// a power of two of at least 4.
func NewSet[S core.Sample](typ Type, sampleRate float64, length int, opts ...SetOption) (*Set[S], error) {
	if !typ.Waveform() {
		return nil, fmt.Errorf("%w: %v is not a periodic waveform", ErrUnknownType, typ)
	}

	spec, err := harmonicSpectrum(typ, length)
	if err != nil {
		return nil, err
	}

	return buildSet[S](spec, length, sampleRate, opts)
}

// NewSetFromTable builds a band-limited set from an arbitrary one-period
// table. The table length must be a power of two of at least 4. A source
// base frequency, if set, becomes the set's base unless WithBase overrides it.
func NewSetFromTable[S core.Sample](src *Table[S], sampleRate float64, opts ...SetOption) (*Set[S], error) {
	if src == nil || src.Len() == 0 {
		return nil, ErrEmptyTable
	}

	n := src.Len()
	if err := checkSetLength(n); err != nil {
		return nil, err
	}

	eng, err := fft.New64(n)
	if err != nil {
		return nil, err
	}

	samples := make([]float64, n)
	for i, v := range src.data {
		samples[i] = float64(v)
	}

	spec := make([]complex128, eng.Bins())
	if err := eng.RealForward(spec, samples); err != nil {
		return nil, err
	}

	if src.base > 0 {
		opts = append([]SetOption{WithBase(src.base)}, opts...)
	}

	return buildSet[S](spec, n, sampleRate, opts)
}

// Len returns the number of tables.
func (s *Set[S]) Len() int {
	return len(s.tables)
}

// Base returns the fundamental of table 0.
func (s *Set[S]) Base() float64 {
	return s.base
}

// SampleRate returns the rate the set was built for.
func (s *Set[S]) SampleRate() float64 {
	return s.sampleRate
}

// Table returns table k. Its Base is the highest fundamental it serves.
func (s *Set[S]) Table(k int) *Table[S] {
	return s.tables[k]
}

// Index returns the table index for a playback frequency: the lowest
// table whose fundamental is at or above |freq|.
func (s *Set[S]) Index(freq float64) int {
	f := math.Abs(freq)
	if !(f > s.base) {
		return 0
	}

	k := int(math.Ceil(math.Log2(f / s.base)))
	if k >= len(s.tables) {
		k = len(s.tables) - 1
	}
	return k
}

// Select returns the table for a playback frequency.
func (s *Set[S]) Select(freq float64) *Table[S] {
	return s.tables[s.Index(freq)]
}

// Harmonics returns the number of partials kept in table k.
func (s *Set[S]) Harmonics(k int) int {
	return harmonicsFor(s.base*math.Exp2(float64(k)), s.sampleRate, s.tables[k].Len())
}

func checkSetLength(n int) error {
	if n < 4 || !fft.IsPowerOf2(n) {
		return fmt.Errorf("%w: set tables need a power of two >= 4, got %d", ErrInvalidLength, n)
	}
	return nil
}

// harmonicSpectrum returns the unpacked real spectrum of one period of a
// built-in waveform with all partials up to the table's Nyquist bin.
func harmonicSpectrum(typ Type, n int) ([]complex128, error) {
	if err := checkSetLength(n); err != nil {
		return nil, err
	}

	spec := make([]complex128, n/2+1)
	for h := 1; h < n/2; h++ {
		fh := float64(h)
		var c complex128
		switch typ {
		case Sine:
			if h == 1 {
				c = complex(0, -1)
			}
		case Cosine:
			if h == 1 {
				c = 1
			}
		case Saw:
			c = complex(0, 1/fh)
		case Square:
			if h%2 == 1 {
				c = complex(0, -1/fh)
			}
		case Triangle:
			if h%2 == 1 {
				sign := 1.0
				if h%4 == 3 {
					sign = -1
				}
				c = complex(0, -sign/(fh*fh))
			}
		case Pulse:
			c = 1
		}
		spec[h] = c
	}
	return spec, nil
}

// harmonicsFor returns how many partials a table with fundamental fr may
// keep at sampleRate.
func harmonicsFor(fr, sampleRate float64, n int) int {
	limit := harmonicLimit * sampleRate
	h := 1
	if fr <= limit {
		h = int(limit / fr)
	}
	return min(h, n/2-1)
}

func buildSet[S core.Sample](spec []complex128, n int, sampleRate float64, opts []SetOption) (*Set[S], error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidSampleRate, sampleRate)
	}

	cfg := setConfig{base: DefaultBase}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	count := int(math.Floor(math.Log2(sampleRate / cfg.base)))
	if count < 1 {
		count = 1
	}

	eng, err := fft.New64(n)
	if err != nil {
		return nil, err
	}

	set := &Set[S]{
		tables:     make([]*Table[S], count),
		base:       cfg.base,
		sampleRate: sampleRate,
	}

	work := make([]complex128, len(spec))
	samples := make([]float64, n)
	for k := range count {
		fr := cfg.base * math.Exp2(float64(k))
		keep := harmonicsFor(fr, sampleRate, n)

		clear(work)
		copy(work[1:keep+1], spec[1:keep+1])
		if err := eng.RealInverse(samples, work); err != nil {
			return nil, err
		}

		peak := 0.0
		for _, v := range samples {
			peak = math.Max(peak, math.Abs(v))
		}
		scale := 1.0
		if peak > 0 {
			scale = 1 / peak
		}

		data := make([]S, n)
		for i, v := range samples {
			data[i] = S(v * scale)
		}
		set.tables[k] = &Table[S]{data: data, base: fr}
	}

	return set, nil
}
