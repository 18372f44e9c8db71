// Package pcm converts go-audio buffers to and from normalized sample
// slices.
package pcm

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

var (
	// ErrNoData is returned for nil or empty buffers.
	ErrNoData = errors.New("pcm: buffer has no samples")
	// ErrChannel is returned when the requested channel does not exist.
	ErrChannel = errors.New("pcm: channel out of range")
)

const defaultBitDepth = 16

// Channels returns the channel count of buf, at least 1.
func Channels(buf audio.Buffer) int {
	if f := buf.PCMFormat(); f != nil && f.NumChannels > 0 {
		return f.NumChannels
	}
	return 1
}

// SampleRate returns the sample rate recorded in buf, 0 if unknown.
func SampleRate(buf audio.Buffer) int {
	if f := buf.PCMFormat(); f != nil {
		return f.SampleRate
	}
	return 0
}

// Channel extracts one channel of buf as float64 samples in [-1, 1].
// Integer buffers are scaled by their source bit depth (16 bit when unset).
func Channel(buf audio.Buffer, ch int) ([]float64, error) {
	if buf == nil {
		return nil, ErrNoData
	}

	nch := Channels(buf)
	if ch < 0 || ch >= nch {
		return nil, fmt.Errorf("%w: %d of %d", ErrChannel, ch, nch)
	}

	var (
		data  []float64
		scale = 1.0
	)
	switch b := buf.(type) {
	case *audio.IntBuffer:
		depth := b.SourceBitDepth
		if depth <= 0 {
			depth = defaultBitDepth
		}
		scale = 1 / math.Exp2(float64(depth-1))
		data = b.AsFloatBuffer().Data
	default:
		data = buf.AsFloatBuffer().Data
	}

	frames := len(data) / nch
	if frames == 0 {
		return nil, ErrNoData
	}

	out := make([]float64, frames)
	for i := range out {
		out[i] = data[i*nch+ch] * scale
	}
	return out, nil
}

// IntBuffer quantizes interleaved samples in [-1, 1] to an integer buffer
// of the given bit depth. Values outside the range are clipped.
func IntBuffer(interleaved []float64, channels, sampleRate, bitDepth int) *audio.IntBuffer {
	full := math.Exp2(float64(bitDepth-1)) - 1
	data := make([]int, len(interleaved))
	for i, v := range interleaved {
		switch {
		case v > 1:
			v = 1
		case v < -1:
			v = -1
		case v != v:
			v = 0
		}
		data[i] = int(math.Round(v * full))
	}

	return Wrap(data, channels, sampleRate, bitDepth)
}

// Wrap returns an integer buffer over already quantized interleaved codes.
func Wrap(data []int, channels, sampleRate, bitDepth int) *audio.IntBuffer {
	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
}
