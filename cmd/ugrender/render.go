package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-ugen/dsp/buffer"
	"github.com/cwbudde/algo-ugen/dsp/combine"
	"github.com/cwbudde/algo-ugen/dsp/conv"
	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/dsp/delay"
	"github.com/cwbudde/algo-ugen/dsp/dither"
	"github.com/cwbudde/algo-ugen/dsp/env"
	"github.com/cwbudde/algo-ugen/dsp/fft"
	"github.com/cwbudde/algo-ugen/dsp/filter/eq"
	"github.com/cwbudde/algo-ugen/dsp/filter/twopole"
	"github.com/cwbudde/algo-ugen/dsp/noise"
	"github.com/cwbudde/algo-ugen/dsp/osc"
	"github.com/cwbudde/algo-ugen/dsp/table"
	"github.com/cwbudde/algo-ugen/internal/vecmath"
)

const tableLength = 2048

type options struct {
	sampleRate float64
	vectorSize int
	duration   float64
	gate       float64

	wave  string
	freq  float64
	amp   float64
	noise float64

	attack, decay, sustain, release float64

	cutoff  float64
	damping float64

	eqGain, eqFreq, eqBW float64

	delay    float64
	feedback float64

	ir        string
	wet       float64
	partition int

	gainDB float64
	bits   int
	dither string
	seed   uint64
	out    string
}

func defaultOptions() options {
	return options{
		sampleRate: core.DefaultSampleRate,
		vectorSize: core.DefaultVectorSize,
		duration:   2,
		gate:       1,
		wave:       "saw",
		freq:       220,
		amp:        0.5,
		attack:     0.01,
		decay:      0.2,
		sustain:    0.6,
		release:    0.5,
		cutoff:     2000,
		damping:    math.Sqrt2,
		eqGain:     1,
		eqFreq:     1000,
		eqBW:       500,
		delay:      0.25,
		feedback:   0.35,
		wet:        0.25,
		partition:  512,
		bits:       16,
		dither:     "triangular",
		seed:       1,
		out:        "out.wav",
	}
}

func (o options) validate() error {
	cfg := core.Config{SampleRate: o.sampleRate, VectorSize: o.vectorSize}
	if err := cfg.Validate(); err != nil {
		return err
	}
	typ, err := table.ParseType(o.wave)
	if err != nil {
		return err
	}
	if !typ.Waveform() {
		return fmt.Errorf("%v is not a waveform", typ)
	}
	if _, err := dither.ParseKind(o.dither); err != nil {
		return err
	}

	switch {
	case !(o.duration > 0):
		return fmt.Errorf("duration must be > 0: %v", o.duration)
	case o.gate < 0:
		return fmt.Errorf("gate must be >= 0: %v", o.gate)
	case !(o.freq > 0) || o.freq >= cfg.Nyquist():
		return fmt.Errorf("frequency must be in (0, %g): %v", cfg.Nyquist(), o.freq)
	case o.delay < 0:
		return fmt.Errorf("delay must be >= 0: %v", o.delay)
	case math.Abs(o.feedback) >= 1:
		return fmt.Errorf("feedback must be in (-1, 1): %v", o.feedback)
	case o.bits != 16 && o.bits != 24:
		return fmt.Errorf("bit depth must be 16 or 24: %d", o.bits)
	case !fft.IsPowerOf2(o.partition) || o.partition < 2:
		return fmt.Errorf("partition must be a power of two >= 2: %d", o.partition)
	case !core.IsFinite(o.gainDB):
		return fmt.Errorf("gain must be finite: %v", o.gainDB)
	case o.out == "":
		return errors.New("output path is empty")
	}

	return nil
}

// voice holds the unit generators of the chain.
type voice struct {
	opts options

	osc   *osc.Oscillator[float64]
	noise *noise.Generator[float64]
	add   *combine.Mix[float64]
	env   *env.Envelope[float64]
	vca   *combine.BinOp[float64]
	vcf   *twopole.Filter[float64]
	peq   *eq.Filter[float64]
	dly   *delay.Delay[float64]
	rev   *conv.Convolver[float64, complex128]
	wet   *combine.Mix[float64]
}

func newVoice(cfg core.Config, o options, ir *conv.IR[float64, complex128]) (*voice, error) {
	typ, err := table.ParseType(o.wave)
	if err != nil {
		return nil, err
	}
	set, err := table.NewSet[float64](typ, cfg.SampleRate, tableLength)
	if err != nil {
		return nil, err
	}

	v := &voice{opts: o}
	if v.osc, err = osc.NewBandLimited(cfg, set); err != nil {
		return nil, err
	}
	if v.noise, err = noise.New[float64](cfg, o.seed); err != nil {
		return nil, err
	}
	if v.add, err = combine.NewMix[float64](cfg); err != nil {
		return nil, err
	}
	if v.env, err = env.NewADSR[float64](cfg, o.attack, o.decay, o.sustain, o.release); err != nil {
		return nil, err
	}
	if v.vca, err = combine.NewBinOp[float64](cfg, combine.Mul); err != nil {
		return nil, err
	}
	if v.vcf, err = twopole.New[float64](cfg); err != nil {
		return nil, err
	}
	if v.peq, err = eq.New[float64](cfg); err != nil {
		return nil, err
	}
	if o.delay > 0 {
		if v.dly, err = delay.New[float64](cfg, o.delay, delay.WithDirect(1)); err != nil {
			return nil, err
		}
	}
	if ir != nil {
		if v.rev, err = conv.New(ir, conv.OverlapSave, cfg.VectorSize); err != nil {
			return nil, err
		}
		if v.wet, err = combine.NewMix[float64](cfg); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// block runs one vector through the chain and writes it to dst, which must
// hold the vector size.
func (v *voice) block(dst []float64, gate bool) error {
	o := v.opts

	tone, err := v.osc.Process(core.Scalar(o.amp), core.Scalar(o.freq))
	if err != nil {
		return err
	}
	if o.noise > 0 {
		hiss, err := v.noise.Process(core.Scalar(o.noise))
		if err != nil {
			return err
		}
		if tone, err = v.add.Process([][]float64{tone, hiss}, nil); err != nil {
			return err
		}
	}

	amp := v.env.Process(gate)
	sig, err := v.vca.Process(core.Vector(tone), core.Vector(amp))
	if err != nil {
		return err
	}
	if sig, err = v.vcf.Process(sig, core.Scalar(o.cutoff), core.Scalar(o.damping), 0, 0); err != nil {
		return err
	}
	if sig, err = v.peq.Process(sig, o.eqGain, o.eqFreq, o.eqBW); err != nil {
		return err
	}
	if v.dly != nil {
		if sig, err = v.dly.Process(sig, core.Scalar(o.delay), o.feedback, 0); err != nil {
			return err
		}
	}
	if v.rev != nil {
		tail, err := v.rev.Process(sig, 1)
		if err != nil {
			return err
		}
		if sig, err = v.wet.Process([][]float64{sig, tail}, []float64{1, o.wet}); err != nil {
			return err
		}
	}

	copy(dst, sig)
	return nil
}

// render runs the chain for the configured duration and returns the mono
// output. The gate is evaluated once per block.
func render(o options, ir *conv.IR[float64, complex128], logger *slog.Logger) ([]float64, error) {
	cfg, err := core.NewConfig(core.WithSampleRate(o.sampleRate), core.WithVectorSize(o.vectorSize))
	if err != nil {
		return nil, err
	}

	v, err := newVoice(cfg, o, ir)
	if err != nil {
		return nil, err
	}

	total := int(math.Round(o.duration * cfg.SampleRate))
	gateEnd := int(math.Round(o.gate * cfg.SampleRate))
	logger.Debug("rendering",
		"frames", total, "vsize", cfg.VectorSize, "wave", o.wave,
		"freq", o.freq, "cutoff", o.cutoff, "delay", o.delay, "reverb", v.rev != nil)
	if v.rev != nil {
		logger.Debug("reverb latency", "samples", v.rev.Latency(), "partitions", ir.Partitions())
	}

	pool := buffer.NewPool[float64](cfg.VectorSize)
	blk := pool.Get()
	defer pool.Put(blk)

	gain := core.DBToLinear(o.gainDB)
	out := make([]float64, total)
	for start := 0; start < total; start += cfg.VectorSize {
		x := blk.Samples()
		if err := v.block(x, start < gateEnd); err != nil {
			return nil, fmt.Errorf("block at frame %d: %w", start, err)
		}
		vecmath.Scale(x, x, gain)
		copy(out[start:], x)
	}
	logger.Debug("rendered", "peak_dbfs", core.LinearToDB(vecmath.MaxAbs(out)))

	return out, nil
}
