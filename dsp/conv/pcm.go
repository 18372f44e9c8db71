package conv

import (
	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-ugen/internal/pcm"
)

// IRFromPCM builds an IR from one channel of a decoded audio buffer.
// Integer samples are normalized to [-1, 1] by their bit depth.
func IRFromPCM[F algofft.Float, C algofft.Complex](buf audio.Buffer, channel, partSize int) (*IR[F, C], error) {
	data, err := pcm.Channel(buf, channel)
	if err != nil {
		return nil, err
	}

	ir := make([]F, len(data))
	for i, v := range data {
		ir[i] = F(v)
	}

	return NewIR[F, C](ir, partSize)
}
