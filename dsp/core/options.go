package core

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidSampleRate is returned for zero, negative or non-finite sample rates.
	ErrInvalidSampleRate = errors.New("core: invalid sample rate")
	// ErrInvalidVectorSize is returned when the processing block size is not positive.
	ErrInvalidVectorSize = errors.New("core: invalid vector size")
)

const (
	// DefaultSampleRate is used when no sample rate option is given.
	DefaultSampleRate = 44100.0
	// DefaultVectorSize is the default number of samples per processing block.
	DefaultVectorSize = 64
)

// Config holds the settings shared by every unit generator of an engine.
// Both values are fixed for the lifetime of a component.
type Config struct {
	SampleRate float64
	VectorSize int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		VectorSize: DefaultVectorSize,
	}
}

// WithSampleRate sets the processing sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		cfg.SampleRate = sampleRate
	}
}

// WithVectorSize sets the number of samples processed per call.
func WithVectorSize(vectorSize int) Option {
	return func(cfg *Config) {
		cfg.VectorSize = vectorSize
	}
}

// NewConfig applies opts over DefaultConfig and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// MustConfig is like NewConfig but panics on invalid options.
// It is intended for tests and examples with constant settings.
func MustConfig(opts ...Option) Config {
	cfg, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Validate reports whether cfg can drive a unit generator.
func (c Config) Validate() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, c.SampleRate)
	}

	if c.VectorSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidVectorSize, c.VectorSize)
	}

	return nil
}

// Nyquist returns half the sample rate.
func (c Config) Nyquist() float64 {
	return c.SampleRate / 2
}

// SamplePeriod returns the duration of one sample in seconds.
func (c Config) SamplePeriod() float64 {
	return 1 / c.SampleRate
}
