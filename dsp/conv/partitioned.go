package conv

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/dsp/fft"
)

// Method selects the block convolution scheme of a Convolver.
type Method int

const (
	// OverlapAdd transforms zero-padded input partitions and adds the
	// overlapping tails of consecutive results.
	OverlapAdd Method = iota
	// OverlapSave transforms the last two input partitions and keeps the
	// alias-free half of each result.
	OverlapSave
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case OverlapAdd:
		return "overlap-add"
	case OverlapSave:
		return "overlap-save"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// IR is an impulse response split into equal partitions, each stored as
// the spectrum of the partition zero-padded to twice its length. An IR is
// read-only after construction and may be shared by several Convolvers.
type IR[F algofft.Float, C algofft.Complex] struct {
	partSize int
	length   int
	parts    [][]C
}

// NewIR partitions ir into blocks of partSize samples, which must be a
// power of two >= 2. The last partition is zero-padded.
func NewIR[F algofft.Float, C algofft.Complex](ir []F, partSize int) (*IR[F, C], error) {
	if len(ir) == 0 {
		return nil, ErrEmptyKernel
	}
	if partSize < 2 || !fft.IsPowerOf2(partSize) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPartition, partSize)
	}

	eng, err := fft.New[F, C](2 * partSize)
	if err != nil {
		return nil, err
	}

	count := (len(ir) + partSize - 1) / partSize
	parts := make([][]C, count)
	frame := make([]F, 2*partSize)
	for k := range parts {
		clear(frame)
		copy(frame, ir[k*partSize:min((k+1)*partSize, len(ir))])

		parts[k] = make([]C, eng.Bins())
		if err := eng.RealForward(parts[k], frame); err != nil {
			return nil, err
		}
	}

	return &IR[F, C]{partSize: partSize, length: len(ir), parts: parts}, nil
}

// PartitionSize returns the partition length in samples.
func (ir *IR[F, C]) PartitionSize() int { return ir.partSize }

// Partitions returns the number of partitions.
func (ir *IR[F, C]) Partitions() int { return len(ir.parts) }

// Len returns the length of the impulse response in samples.
func (ir *IR[F, C]) Len() int { return ir.length }

// Convolver streams a signal through an IR. Output lags the exact
// convolution by one partition.
type Convolver[F algofft.Float, C algofft.Complex] struct {
	ir         *IR[F, C]
	method     Method
	vectorSize int
	eng        *fft.Engine[F, C]

	// fdl holds the spectra of the most recent input frames; head is the
	// slot the next frame is written to.
	fdl  [][]C
	head int
	mix  []C

	inbuf   []F // OverlapAdd: current partition; OverlapSave: previous and current
	frame   []F
	overlap []F
	outbuf  []F
	cnt     int

	out []F
}

// New creates a Convolver over ir. vectorSize bounds the block length of
// Process and sets the length of its output buffer.
func New[F algofft.Float, C algofft.Complex](ir *IR[F, C], method Method, vectorSize int) (*Convolver[F, C], error) {
	if ir == nil || len(ir.parts) == 0 {
		return nil, ErrEmptyKernel
	}
	if method != OverlapAdd && method != OverlapSave {
		return nil, fmt.Errorf("conv: unknown method %v", method)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("%w: vector size %d", core.ErrBlockSize, vectorSize)
	}

	p := ir.partSize
	eng, err := fft.New[F, C](2 * p)
	if err != nil {
		return nil, err
	}

	fdl := make([][]C, len(ir.parts))
	for k := range fdl {
		fdl[k] = make([]C, eng.Bins())
	}

	c := &Convolver[F, C]{
		ir:         ir,
		method:     method,
		vectorSize: vectorSize,
		eng:        eng,
		fdl:        fdl,
		mix:        make([]C, eng.Bins()),
		inbuf:      make([]F, 2*p),
		frame:      make([]F, 2*p),
		overlap:    make([]F, p),
		outbuf:     make([]F, p),
		out:        make([]F, vectorSize),
	}

	return c, nil
}

// Method returns the convolution scheme.
func (c *Convolver[F, C]) Method() Method { return c.method }

// Latency returns the output delay in samples.
func (c *Convolver[F, C]) Latency() int { return c.ir.partSize }

// IR returns the impulse response the convolver reads.
func (c *Convolver[F, C]) IR() *IR[F, C] { return c.ir }

// Reset clears the delay line and all pending output.
func (c *Convolver[F, C]) Reset() {
	for _, s := range c.fdl {
		clear(s)
	}
	clear(c.inbuf)
	clear(c.overlap)
	clear(c.outbuf)
	c.head = 0
	c.cnt = 0
}

// Process convolves in with the IR and scales the result. The returned
// slice is owned by the Convolver and valid until the next call.
func (c *Convolver[F, C]) Process(in []F, scale F) ([]F, error) {
	if len(in) > c.vectorSize {
		return nil, fmt.Errorf("%w: %d > %d", core.ErrBlockSize, len(in), c.vectorSize)
	}

	out := c.out[:len(in)]
	if err := c.ProcessTo(out, in, scale); err != nil {
		return nil, err
	}

	return out, nil
}

// ProcessTo writes the scaled convolution of src to dst. dst and src must
// have equal lengths and may alias.
func (c *Convolver[F, C]) ProcessTo(dst, src []F, scale F) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst=%d src=%d", ErrLengthMismatch, len(dst), len(src))
	}

	p := c.ir.partSize
	in := c.inbuf
	if c.method == OverlapSave {
		in = c.inbuf[p:]
	}

	for i, x := range src {
		if v := float64(x); math.IsNaN(v) || math.IsInf(v, 0) {
			x = 0
		}
		y := c.outbuf[c.cnt]
		in[c.cnt] = x
		dst[i] = y * scale

		c.cnt++
		if c.cnt == p {
			c.cnt = 0
			if err := c.partition(); err != nil {
				return err
			}
		}
	}

	return nil
}

// partition transforms the completed input frame, pushes it into the
// delay line and computes the next partition of output.
func (c *Convolver[F, C]) partition() error {
	p := c.ir.partSize

	copy(c.frame, c.inbuf)
	if c.method == OverlapAdd {
		clear(c.frame[p:])
	}
	if err := c.eng.RealForward(c.fdl[c.head], c.frame); err != nil {
		return err
	}
	if c.method == OverlapSave {
		copy(c.inbuf[:p], c.inbuf[p:])
	}

	clear(c.mix)
	n := len(c.fdl)
	for j, h := range c.ir.parts {
		x := c.fdl[(c.head-j+n)%n]
		for k := range c.mix {
			c.mix[k] += x[k] * h[k]
		}
	}
	c.head = (c.head + 1) % n

	if err := c.eng.RealInverse(c.frame, c.mix); err != nil {
		return err
	}

	if c.method == OverlapSave {
		copy(c.outbuf, c.frame[p:])
		return nil
	}
	for i := range c.outbuf {
		c.outbuf[i] = c.frame[i] + c.overlap[i]
		c.overlap[i] = c.frame[p+i]
	}

	return nil
}
