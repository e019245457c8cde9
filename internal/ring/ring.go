// Package ring implements the fixed-capacity FIFO store that backs a
// buffered channel.
//
// A Ring is not safe for concurrent use; the owning channel serializes
// access with its own mutex.
package ring

// Ring is a fixed-capacity circular FIFO queue.
type Ring[T any] struct {
	buf  []T
	head int // index of the oldest element
	n    int // number of stored elements
}

// New creates a Ring that holds at most capacity elements.
// It panics if capacity is not positive.
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic("ring: New requires capacity > 0")
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push appends v at the tail. It reports false, leaving the ring
// unchanged, if the ring is full or has been reset.
func (r *Ring[T]) Push(v T) bool {
	if r.n == len(r.buf) {
		return false
	}
	r.buf[(r.head+r.n)%len(r.buf)] = v
	r.n++
	return true
}

// Pop removes and returns the oldest element. The vacated cell is zeroed
// so the ring does not keep the payload reachable.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if r.n == 0 {
		return zero, false
	}
	v := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = (r.head + 1) % len(r.buf)
	r.n--
	return v, true
}

// Len returns the number of stored elements.
func (r *Ring[T]) Len() int { return r.n }

// Reset drops every stored element and releases the backing array.
// Subsequent pushes fail.
func (r *Ring[T]) Reset() {
	r.buf = nil
	r.head = 0
	r.n = 0
}
