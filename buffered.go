package semchan

import "context"

// Buffered mode is the bounded-buffer protocol: empty counts free cells,
// full counts stored values. Every path takes a unit first, then mu, and
// signals the opposite semaphore only after mu is released.

func (c *Channel[T]) sendBuffered(ctx context.Context, v T) error {
	if err := c.empty.Acquire(ctx); err != nil {
		return c.interrupted(err)
	}
	return c.push(v)
}

func (c *Channel[T]) trySendBuffered(v T) error {
	if !c.empty.TryAcquire() {
		return ErrFull
	}
	return c.push(v)
}

// push stores v. The caller holds one empty unit, which is handed back on
// every failure.
func (c *Channel[T]) push(v T) error {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		c.empty.Release()
		return ErrClosed
	}
	if !c.store.Push(v) {
		c.mu.Unlock()
		c.empty.Release()
		c.log.WithField("cap", c.capacity).Error("store rejected push while a free cell was reserved")
		return ErrGeneric
	}
	c.mu.Unlock()

	c.full.Release()
	c.sent.Add(1)
	c.recvWaiters.Notify()
	return nil
}

func (c *Channel[T]) receiveBuffered(ctx context.Context) (T, error) {
	if err := c.full.Acquire(ctx); err != nil {
		var zero T
		if !c.closed.Load() {
			return zero, err
		}
		// closed: whatever is still stored remains drainable
		if !c.full.TryAcquire() {
			return zero, ErrClosed
		}
	}
	return c.pop()
}

func (c *Channel[T]) tryReceiveBuffered() (T, error) {
	if !c.full.TryAcquire() {
		var zero T
		if c.closed.Load() {
			return zero, ErrClosed
		}
		return zero, ErrEmpty
	}
	return c.pop()
}

// pop removes the oldest value. The caller holds one full unit.
func (c *Channel[T]) pop() (T, error) {
	c.mu.Lock()
	v, ok := c.store.Pop()
	destroyed := c.destroyed
	c.mu.Unlock()

	if !ok {
		var zero T
		if destroyed {
			return zero, ErrClosed
		}
		c.full.Release()
		c.log.Error("store empty while a filled cell was reserved")
		return zero, ErrGeneric
	}

	c.empty.Release()
	c.received.Add(1)
	c.sendWaiters.Notify()
	return v, nil
}
