package semchan

import (
	"context"
	"math"
)

// Rendezvous mode hands one value at a time through slot.
//
// A sender takes the turnstile, writes the slot, signals full and then
// waits on taken until a receiver has consumed the value; only then does
// it release the turnstile for the next sender. A receiver waits on full,
// empties the slot under mu and signals taken.
//
// A sender interrupted before any receiver took its value withdraws the
// value under mu. The full unit it signaled stays behind as a stale unit;
// the next receiver to acquire it finds no offer, discards it and waits
// again. Tokens in full therefore always equal offered + stale.
//
// pendingSend and pendingRecv count the goroutines currently inside a
// send or a parked receive; the non-blocking paths use them to decide
// readiness.

// rendezvousUnits bounds full in rendezvous mode; stale units make the
// count exceed one.
const rendezvousUnits = math.MaxInt32

func (c *Channel[T]) sendRendezvous(ctx context.Context, v T) error {
	c.enterSend()
	defer c.leaveSend()

	if err := c.turnstile.Acquire(ctx); err != nil {
		return c.interrupted(err)
	}
	if err := c.offer(v, false, nil); err != nil {
		return err
	}
	if err := c.awaitTaken(ctx); err != nil {
		return c.interrupted(err)
	}
	return nil
}

// trySendRendezvous succeeds only if a receiver is parked in a blocking
// receive. It still waits for that receiver to pick the value up; if all
// parked receivers give up first, the offer is withdrawn and ErrFull
// returned.
func (c *Channel[T]) trySendRendezvous(v T) error {
	if !c.turnstile.TryAcquire() {
		return ErrFull
	}
	c.enterSend()
	defer c.leaveSend()

	ctx, abandon := context.WithCancel(c.closeCtx)
	defer abandon()

	if err := c.offer(v, true, abandon); err != nil {
		return err
	}
	if err := c.awaitTaken(ctx); err != nil {
		if c.closed.Load() {
			return ErrClosed
		}
		return ErrFull
	}
	return nil
}

// offer publishes v in the slot. The caller holds the turnstile; it is
// released here on failure. With needReceiver set the offer is refused
// with ErrFull unless a receiver is parked.
func (c *Channel[T]) offer(v T, needReceiver bool, abandon context.CancelFunc) error {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		c.releaseTurnstile()
		return ErrClosed
	}
	if needReceiver && c.pendingRecv == 0 {
		c.mu.Unlock()
		c.releaseTurnstile()
		return ErrFull
	}
	c.slot, c.offered, c.abandon = v, true, abandon
	c.mu.Unlock()

	c.full.Release()
	c.recvWaiters.Notify()
	return nil
}

// awaitTaken waits until a receiver has consumed the offered value and
// then releases the turnstile. If the wait is interrupted while the value
// is still in the slot, the value is withdrawn and the interruption
// returned. If a receiver already took it, its acknowledgement is
// imminent and the send counts as delivered.
func (c *Channel[T]) awaitTaken(ctx context.Context) error {
	defer c.releaseTurnstile()

	if err := c.taken.Acquire(ctx); err != nil {
		c.mu.Lock()
		if c.offered || c.destroyed {
			var zero T
			c.slot, c.offered, c.abandon = zero, false, nil
			c.stale++
			c.mu.Unlock()
			return err
		}
		c.mu.Unlock()
		_ = c.taken.Acquire(context.Background())
	}
	c.sent.Add(1)
	return nil
}

func (c *Channel[T]) receiveRendezvous(ctx context.Context) (T, error) {
	var zero T

	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	c.pendingRecv++
	c.mu.Unlock()

	// a parked receiver makes non-blocking sends ready
	c.sendWaiters.Notify()

	for {
		if err := c.full.Acquire(ctx); err != nil {
			c.mu.Lock()
			c.pendingRecv--
			if c.pendingRecv == 0 && c.abandon != nil {
				c.abandon()
			}
			c.mu.Unlock()
			return zero, c.interrupted(err)
		}

		c.mu.Lock()
		if c.offered {
			c.pendingRecv--
			v := c.takeLocked()
			c.mu.Unlock()
			c.handedOff()
			return v, nil
		}
		if c.destroyed {
			c.pendingRecv--
			c.mu.Unlock()
			return zero, ErrClosed
		}
		c.stale--
		c.mu.Unlock()
	}
}

func (c *Channel[T]) tryReceiveRendezvous() (T, error) {
	var zero T

	c.mu.Lock()
	closed, senders := c.closed.Load(), c.pendingSend
	c.mu.Unlock()

	if closed {
		return zero, ErrClosed
	}
	if senders == 0 || !c.full.TryAcquire() {
		return zero, ErrEmpty
	}

	c.mu.Lock()
	if !c.offered {
		if !c.destroyed {
			c.stale--
		}
		c.mu.Unlock()
		return zero, ErrEmpty
	}
	v := c.takeLocked()
	c.mu.Unlock()
	c.handedOff()
	return v, nil
}

// takeLocked moves the value out of the slot. mu must be held.
func (c *Channel[T]) takeLocked() T {
	var zero T
	v := c.slot
	c.slot, c.offered, c.abandon = zero, false, nil
	return v
}

// handedOff acknowledges a taken value to its sender.
func (c *Channel[T]) handedOff() {
	c.taken.Release()
	c.received.Add(1)
}

func (c *Channel[T]) enterSend() {
	c.mu.Lock()
	c.pendingSend++
	c.mu.Unlock()
}

func (c *Channel[T]) leaveSend() {
	c.mu.Lock()
	c.pendingSend--
	c.mu.Unlock()
}

// releaseTurnstile lets the next sender in and wakes selects waiting to
// send, since the slot may be offered again.
func (c *Channel[T]) releaseTurnstile() {
	c.turnstile.Release()
	c.sendWaiters.Notify()
}
