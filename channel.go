package semchan

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/baxromumarov/semchan/internal/ring"
	"github.com/baxromumarov/semchan/internal/waitq"
)

// Channel is a typed hand-off queue between goroutines.
//
// A Channel created with capacity > 0 is buffered: sends complete as long
// as the FIFO store has room. A Channel created with capacity 0 is a
// rendezvous channel: a send completes only once a receiver has taken
// the value.
//
// All methods are safe for concurrent use. A Channel is closed exactly
// once; after Close every send fails with [ErrClosed] while receives
// drain whatever is still buffered.
type Channel[T any] struct {
	cfg      config
	log      logrus.FieldLogger
	capacity int

	// mu guards closed transitions, destroyed, store, the rendezvous slot
	// and the pending counters. It is never held across a semaphore wait.
	mu        sync.Mutex
	closed    atomic.Bool
	destroyed bool

	// closeCtx is cancelled by Close; every parked semaphore wait observes it.
	closeCtx  context.Context
	closeWake context.CancelFunc

	// full counts filled cells (buffered) or offers plus stale units
	// (rendezvous).
	full *Semaphore

	// buffered mode
	store *ring.Ring[T]
	empty *Semaphore

	// rendezvous mode
	slot        T
	offered     bool
	stale       int
	pendingSend int
	pendingRecv int
	turnstile   *Semaphore
	taken       *Semaphore
	abandon     context.CancelFunc // set while a non-blocking send waits on a parked receiver

	sendWaiters *waitq.Registry
	recvWaiters *waitq.Registry

	sent     atomic.Int64
	received atomic.Int64
}

// New creates a channel with the given capacity. A capacity of zero
// creates a rendezvous channel.
// Panics if capacity < 0.
func New[T any](capacity int, opts ...Option) *Channel[T] {
	if capacity < 0 {
		panic("semchan: New requires capacity >= 0")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	closeCtx, closeWake := context.WithCancel(context.Background())
	c := &Channel[T]{
		cfg:         cfg,
		log:         cfg.logger.WithField("channel", cfg.name),
		capacity:    capacity,
		closeCtx:    closeCtx,
		closeWake:   closeWake,
		sendWaiters: waitq.New(),
		recvWaiters: waitq.New(),
	}

	if capacity > 0 {
		c.store = ring.New[T](capacity)
		c.empty = NewSemaphore(capacity, capacity)
		c.full = NewSemaphore(capacity, 0)
	} else {
		c.turnstile = NewSemaphore(1, 1)
		c.full = NewSemaphore(rendezvousUnits, 0)
		c.taken = NewSemaphore(1, 0)
	}
	return c
}

// Send delivers v, blocking until there is room (buffered) or a receiver
// has taken it (rendezvous). Returns [ErrClosed] if the channel is or
// becomes closed before v is delivered.
func (c *Channel[T]) Send(v T) error {
	return c.send(c.closeCtx, v)
}

// SendContext is like Send but also gives up when ctx is done, returning
// ctx.Err(). A close observed first is reported as [ErrClosed].
func (c *Channel[T]) SendContext(ctx context.Context, v T) error {
	ctx, stop := c.bind(ctx)
	defer stop()
	return c.send(ctx, v)
}

// SendTimeout is like Send but waits at most d, returning [ErrTimeout]
// when the wait expires.
func (c *Channel[T]) SendTimeout(v T, d time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return timedOut(c.SendContext(ctx, v))
}

// TrySend delivers v only if that is possible without waiting. It
// returns [ErrFull] otherwise, leaving the channel unchanged.
//
// On a rendezvous channel TrySend succeeds only when a receiver is
// already parked in a blocking receive.
func (c *Channel[T]) TrySend(v T) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if c.capacity == 0 {
		return c.trySendRendezvous(v)
	}
	return c.trySendBuffered(v)
}

func (c *Channel[T]) send(ctx context.Context, v T) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if c.capacity == 0 {
		return c.sendRendezvous(ctx, v)
	}
	return c.sendBuffered(ctx, v)
}

// Receive takes the next value, blocking until one is available. After
// Close it keeps returning buffered values in order, then [ErrClosed].
func (c *Channel[T]) Receive() (T, error) {
	return c.receive(c.closeCtx)
}

// ReceiveContext is like Receive but also gives up when ctx is done,
// returning ctx.Err().
func (c *Channel[T]) ReceiveContext(ctx context.Context) (T, error) {
	ctx, stop := c.bind(ctx)
	defer stop()
	return c.receive(ctx)
}

// ReceiveTimeout is like Receive but waits at most d, returning
// [ErrTimeout] when the wait expires.
func (c *Channel[T]) ReceiveTimeout(d time.Duration) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	v, err := c.ReceiveContext(ctx)
	return v, timedOut(err)
}

// TryReceive takes a value only if one is available without waiting. It
// returns [ErrEmpty] otherwise, leaving the channel unchanged.
//
// On a rendezvous channel TryReceive succeeds only when a sender has
// already offered a value.
func (c *Channel[T]) TryReceive() (T, error) {
	if c.capacity == 0 {
		return c.tryReceiveRendezvous()
	}
	return c.tryReceiveBuffered()
}

func (c *Channel[T]) receive(ctx context.Context) (T, error) {
	if c.capacity == 0 {
		return c.receiveRendezvous(ctx)
	}
	return c.receiveBuffered(ctx)
}

// Close marks the channel closed and wakes every goroutine blocked on it.
// Values already buffered stay receivable. Returns [ErrClosed] if the
// channel was already closed.
func (c *Channel[T]) Close() error {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return ErrClosed
	}
	c.closed.Store(true)
	c.mu.Unlock()

	c.closeWake()
	c.sendWaiters.Notify()
	c.recvWaiters.Notify()
	c.log.Debug("channel closed")
	return nil
}

// Destroy releases the channel's storage and waiter registries. It is
// valid only after Close, and only once no goroutine can still be inside
// an operation on the channel; Destroy does not wait for them.
//
// Returns [ErrDestroy], leaving the channel intact, if the channel is
// still open or was already destroyed.
func (c *Channel[T]) Destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed.Load() {
		c.log.Warn("destroy called on open channel")
		return ErrDestroy
	}
	if c.destroyed {
		return ErrDestroy
	}
	c.destroyed = true

	if c.store != nil {
		c.store.Reset()
	}
	var zero T
	c.slot, c.offered, c.abandon = zero, false, nil
	c.sendWaiters.Clear()
	c.recvWaiters.Clear()
	c.log.Debug("channel destroyed")
	return nil
}

// Cap returns the capacity given to New.
func (c *Channel[T]) Cap() int { return c.capacity }

// Len returns the number of buffered values. It is always zero for a
// rendezvous channel.
func (c *Channel[T]) Len() int {
	if c.capacity == 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

// Closed reports whether Close has been called.
func (c *Channel[T]) Closed() bool { return c.closed.Load() }

// Name returns the name set with [WithName].
func (c *Channel[T]) Name() string { return c.cfg.name }

// Stats is a point-in-time snapshot of channel activity.
type Stats struct {
	Name        string
	Cap         int
	Len         int
	Closed      bool
	Sent        int64 // values delivered into the channel
	Received    int64 // values taken out of the channel
	SendWaiters int   // selects parked on a send case
	RecvWaiters int   // selects parked on a receive case
}

// Stats returns a snapshot of channel activity. Safe to call concurrently.
func (c *Channel[T]) Stats() Stats {
	return Stats{
		Name:        c.cfg.name,
		Cap:         c.capacity,
		Len:         c.Len(),
		Closed:      c.closed.Load(),
		Sent:        c.sent.Load(),
		Received:    c.received.Load(),
		SendWaiters: c.sendWaiters.Len(),
		RecvWaiters: c.recvWaiters.Len(),
	}
}

// register adds w to the registry for direction d so that state changes
// on this channel wake the select owning w.
func (c *Channel[T]) register(w *waitq.Waiter, d Dir) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return ErrClosed
	}
	c.waiters(d).Insert(w)
	return nil
}

func (c *Channel[T]) unregister(id uuid.UUID, d Dir) {
	c.waiters(d).Remove(id)
}

func (c *Channel[T]) waiters(d Dir) *waitq.Registry {
	if d == SendDir {
		return c.sendWaiters
	}
	return c.recvWaiters
}

// bind derives a context that is done when either parent is done or the
// channel is closed.
func (c *Channel[T]) bind(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(c.closeCtx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// interrupted maps the error of an aborted semaphore wait. Close wins
// over the caller's context.
func (c *Channel[T]) interrupted(err error) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return err
}

func timedOut(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}
