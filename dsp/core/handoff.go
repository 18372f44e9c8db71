package core

import "sync/atomic"

// Handoff passes parameter snapshots from one control goroutine to one
// audio goroutine without locks. The writer publishes a new immutable
// value with Store; the reader picks up the latest one at block start with
// Load. Published values must not be mutated afterwards.
type Handoff[T any] struct {
	p atomic.Pointer[T]
}

// NewHandoff returns a Handoff holding initial.
func NewHandoff[T any](initial T) *Handoff[T] {
	h := &Handoff[T]{}
	h.Store(initial)
	return h
}

// Store publishes v.
func (h *Handoff[T]) Store(v T) {
	h.p.Store(&v)
}

// Load returns the most recently published value, or the zero value if
// nothing was stored.
func (h *Handoff[T]) Load() T {
	if p := h.p.Load(); p != nil {
		return *p
	}

	var zero T
	return zero
}
