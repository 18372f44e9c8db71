package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-ugen/dsp/conv"
	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/dsp/dither"
	"github.com/cwbudde/algo-ugen/internal/pcm"
)

var errNotWAV = errors.New("not a valid WAV file")

// readIR loads the first channel of a WAV file as a partitioned impulse
// response. A sample rate differing from sampleRate is logged, not resampled.
func readIR(path string, sampleRate float64, partition int, logger *slog.Logger) (*conv.IR[float64, complex128], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s: %w", path, errNotWAV)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if sr := pcm.SampleRate(buf); sr != 0 && !core.NearlyEqual(float64(sr), sampleRate, 1e-9) {
		logger.Warn("impulse response sample rate differs", "path", path, "ir_rate", sr, "rate", sampleRate)
	}

	ir, err := conv.IRFromPCM[float64, complex128](buf, 0, partition)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("loaded impulse response",
		"path", path, "samples", ir.Len(), "channels", pcm.Channels(buf), "partitions", ir.Partitions())

	return ir, nil
}

// writeWAV quantizes samples with the configured dither and writes a mono
// PCM WAV file.
func writeWAV(path string, samples []float64, o options) (err error) {
	kind, err := dither.ParseKind(o.dither)
	if err != nil {
		return err
	}
	cfg, err := core.NewConfig(core.WithSampleRate(o.sampleRate), core.WithVectorSize(o.vectorSize))
	if err != nil {
		return err
	}
	q, err := dither.New[float64](cfg, o.bits, dither.WithKind(kind), dither.WithSeed(o.seed))
	if err != nil {
		return err
	}

	codes := make([]int, len(samples))
	if err := q.QuantizeTo(codes, samples); err != nil {
		return err
	}
	buf := pcm.Wrap(codes, 1, int(o.sampleRate), o.bits)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := wav.NewEncoder(f, int(o.sampleRate), o.bits, 1, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return enc.Close()
}
