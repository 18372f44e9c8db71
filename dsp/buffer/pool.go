package buffer

import (
	"sync"

	"github.com/cwbudde/algo-ugen/dsp/core"
)

// Pool provides sync.Pool-based reuse of buffers of one fixed length,
// typically the engine vector size. Get and Put belong to setup and
// teardown code, not to per-block processing.
type Pool[S core.Sample] struct {
	length int
	pool   sync.Pool
}

// NewPool returns a Pool handing out buffers of the given length.
func NewPool[S core.Sample](length int) *Pool[S] {
	if length < 0 {
		length = 0
	}
	p := &Pool[S]{length: length}
	p.pool.New = func() any {
		return New[S](length)
	}
	return p
}

// Len returns the length of the buffers managed by p.
func (p *Pool[S]) Len() int {
	return p.length
}

// Get returns a zeroed Buffer. Callers must return it via Put when done.
func (p *Pool[S]) Get() *Buffer[S] {
	b := p.pool.Get().(*Buffer[S])
	b.Zero()
	return b
}

// Put returns a Buffer to the pool for reuse. Buffers of a different
// length are dropped. The caller must not use the buffer after calling Put.
func (p *Pool[S]) Put(b *Buffer[S]) {
	if b == nil || b.Len() != p.length {
		return
	}
	p.pool.Put(b)
}
