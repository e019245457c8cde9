// Package waitq keeps track of the select calls parked on a channel.
//
// A Registry is an unordered set of Waiters keyed by identity. Channels
// call Notify whenever their state changes in a way that may let a
// parked select make progress; each select owns one Waiter and
// re-polls its cases every time that Waiter is woken.
package waitq

import (
	"hash/maphash"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v2"
)

// Waiter is the wake primitive of a single select call.
//
// The signal is level-triggered with one slot: any number of Wake calls
// made before the owner reads C collapse into one pending wake-up, and a
// wake-up delivered between a poll pass and the subsequent wait is never
// lost.
type Waiter struct {
	ID uuid.UUID
	ch chan struct{}
}

// NewWaiter creates a Waiter with a fresh random identity.
func NewWaiter() *Waiter {
	return &Waiter{
		ID: uuid.New(),
		ch: make(chan struct{}, 1),
	}
}

// Wake marks the waiter as signaled. It never blocks.
func (w *Waiter) Wake() {
	select {
	case w.ch <- struct{}{}:
	default:
		// already signaled
	}
}

// C returns the channel that delivers wake-ups.
func (w *Waiter) C() <-chan struct{} { return w.ch }

// Registry is a concurrent set of Waiters. The zero value is not usable;
// create one with New.
type Registry struct {
	m *xsync.MapOf[uuid.UUID, *Waiter]
}

func hashID(seed maphash.Seed, id uuid.UUID) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	_, _ = h.Write(id[:])
	return h.Sum64()
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{m: xsync.NewTypedMapOf[uuid.UUID, *Waiter](hashID)}
}

// Insert adds w. Inserting the same waiter twice is a no-op.
func (r *Registry) Insert(w *Waiter) {
	r.m.Store(w.ID, w)
}

// Remove deletes the waiter with the given identity if present.
func (r *Registry) Remove(id uuid.UUID) {
	r.m.Delete(id)
}

// Find looks up a waiter by identity.
func (r *Registry) Find(id uuid.UUID) (*Waiter, bool) {
	return r.m.Load(id)
}

// Len returns the number of registered waiters.
func (r *Registry) Len() int {
	return r.m.Size()
}

// Notify wakes every registered waiter.
func (r *Registry) Notify() {
	r.m.Range(func(_ uuid.UUID, w *Waiter) bool {
		w.Wake()
		return true
	})
}

// Clear removes every waiter without waking them.
func (r *Registry) Clear() {
	r.m.Range(func(id uuid.UUID, _ *Waiter) bool {
		r.m.Delete(id)
		return true
	})
}
