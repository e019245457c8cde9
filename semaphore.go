package semchan

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Semaphore is a counting semaphore with a configurable number of units
// available at creation. Channels use it for their empty/full/turnstile
// resources.
//
// Acquire is context-aware: it unblocks, consuming nothing, once ctx is
// done. A channel hands every parked Acquire its close context, so Close
// acts as a broadcast wake for all of them.
type Semaphore struct {
	w    *semaphore.Weighted
	size int64
	held atomic.Int64
}

// NewSemaphore creates a semaphore of the given size with available
// units free. Panics if size <= 0 or available is outside [0, size].
func NewSemaphore(size, available int) *Semaphore {
	if size <= 0 {
		panic("semchan: NewSemaphore requires size > 0")
	}
	if available < 0 || available > size {
		panic("semchan: NewSemaphore requires 0 <= available <= size")
	}
	s := &Semaphore{
		w:    semaphore.NewWeighted(int64(size)),
		size: int64(size),
	}
	if taken := int64(size - available); taken > 0 {
		// cannot block: nothing else holds the semaphore yet
		_ = s.w.Acquire(context.Background(), taken)
		s.held.Store(taken)
	}
	return s
}

// Acquire blocks until a unit is available or ctx is done.
// Returns ctx.Err() on cancellation, nil on success.
// A free unit is taken even if ctx is already done.
func (s *Semaphore) Acquire(ctx context.Context) error {
	if s.TryAcquire() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.w.Acquire(ctx, 1); err != nil {
		return err
	}
	s.held.Add(1)
	return nil
}

// TryAcquire attempts to take a unit without blocking.
func (s *Semaphore) TryAcquire() bool {
	if !s.w.TryAcquire(1) {
		return false
	}
	s.held.Add(1)
	return true
}

// Release returns a unit, waking one blocked Acquire if any.
// Panics if every unit is already available.
func (s *Semaphore) Release() {
	if s.held.Add(-1) < 0 {
		s.held.Add(1) // undo
		panic("semchan: Semaphore.Release called without matching Acquire")
	}
	s.w.Release(1)
}

// Available returns the number of free units.
// The value may be stale in concurrent contexts.
func (s *Semaphore) Available() int {
	return int(s.size - s.held.Load())
}
