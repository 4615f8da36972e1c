package otel

import (
	"strings"
	"sync"
)

// DefaultRingSize is the default ring buffer capacity.
const DefaultRingSize = 256

// RingBuffer keeps the most recent events in memory. Goroutine-safe.
type RingBuffer struct {
	mu    sync.Mutex
	buf   []Event
	next  int
	count int
}

// NewRingBuffer creates a ring buffer with the given capacity.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingBuffer{buf: make([]Event, size)}
}

// Push adds an event, overwriting the oldest once full. The Extra map is
// copied so later writes by the caller cannot reach into the buffer.
func (r *RingBuffer) Push(e Event) {
	if e.Extra != nil {
		cp := make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			cp[k] = v
		}
		e.Extra = cp
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.next] = e
	r.next = (r.next + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Last returns up to n of the newest events, oldest first.
func (r *RingBuffer) Last(n int) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 || r.count == 0 {
		return nil
	}
	if n > r.count {
		n = r.count
	}

	out := make([]Event, n)
	size := len(r.buf)
	start := (r.next - n + size) % size
	for i := 0; i < n; i++ {
		out[i] = r.buf[(start+i)%size]
	}
	return out
}

// Snapshot returns every buffered event, oldest first.
func (r *RingBuffer) Snapshot() []Event {
	return r.Last(r.Len())
}

// Len returns the number of buffered events.
func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int {
	return len(r.buf)
}

// Stats counts buffered events by kind.
func (r *RingBuffer) Stats() map[EventKind]int {
	counts := make(map[EventKind]int)
	for _, e := range r.Snapshot() {
		counts[e.Kind]++
	}
	return counts
}

// Phase returns the buffered events whose kind starts with "<phase>.",
// oldest first.
func (r *RingBuffer) Phase(phase string) []Event {
	prefix := phase + "."
	var out []Event
	for _, e := range r.Snapshot() {
		if strings.HasPrefix(string(e.Kind), prefix) {
			out = append(out, e)
		}
	}
	return out
}
