package semchan

import (
	"context"
	"errors"

	"github.com/bits-and-blooms/bitset"
	"github.com/google/uuid"

	"github.com/baxromumarov/semchan/internal/waitq"
)

// Dir is the direction of a select case.
type Dir int

const (
	SendDir Dir = iota
	RecvDir
)

func (d Dir) String() string {
	if d == SendDir {
		return "send"
	}
	return "recv"
}

// Case is one candidate operation of a [Select]. Build cases with
// [SendCase] and [RecvCase].
type Case interface {
	// Dir reports whether the case sends or receives.
	Dir() Dir

	valid() bool
	poll() error
	register(w *waitq.Waiter) error
	unregister(id uuid.UUID)
}

type sendCase[T any] struct {
	ch *Channel[T]
	v  T
}

// SendCase returns a case that sends v on ch.
func SendCase[T any](ch *Channel[T], v T) Case {
	return &sendCase[T]{ch: ch, v: v}
}

func (c *sendCase[T]) Dir() Dir    { return SendDir }
func (c *sendCase[T]) valid() bool { return c.ch != nil }
func (c *sendCase[T]) poll() error { return c.ch.TrySend(c.v) }

func (c *sendCase[T]) register(w *waitq.Waiter) error { return c.ch.register(w, SendDir) }
func (c *sendCase[T]) unregister(id uuid.UUID)        { c.ch.unregister(id, SendDir) }

type recvCase[T any] struct {
	ch  *Channel[T]
	dst *T
}

// RecvCase returns a case that receives from ch into *dst. dst is written
// only if this case is the one selected.
func RecvCase[T any](ch *Channel[T], dst *T) Case {
	return &recvCase[T]{ch: ch, dst: dst}
}

func (c *recvCase[T]) Dir() Dir    { return RecvDir }
func (c *recvCase[T]) valid() bool { return c.ch != nil && c.dst != nil }

func (c *recvCase[T]) poll() error {
	v, err := c.ch.TryReceive()
	if err == nil {
		*c.dst = v
	}
	return err
}

func (c *recvCase[T]) register(w *waitq.Waiter) error { return c.ch.register(w, RecvDir) }
func (c *recvCase[T]) unregister(id uuid.UUID)        { c.ch.unregister(id, RecvDir) }

// Select performs exactly one of the given cases and returns its index.
//
// Cases are polled in order and the first one that can proceed wins, so
// when several are ready the lowest index is chosen. If none is ready,
// Select parks until one of the involved channels changes state and then
// polls again from the first case.
//
// A case on a closed channel is never skipped: its [ErrClosed] is the
// result of the Select, with the index of that case. Errors are wrapped
// in a [*CaseError].
//
// Select returns (-1, [ErrNoCases]) when called without cases and
// [ErrNilSlot] for a case with a nil channel or receive destination.
func Select(cases ...Case) (int, error) {
	return SelectContext(context.Background(), cases...)
}

// SelectContext is like [Select] but gives up when ctx is done,
// returning (-1, ctx.Err()) with no case performed.
func SelectContext(ctx context.Context, cases ...Case) (int, error) {
	if err := validate(cases); err != nil {
		return IndexOf(err), err
	}

	w := waitq.NewWaiter()
	registered := bitset.New(uint(len(cases)))
	defer func() {
		for i, ok := registered.NextSet(0); ok; i, ok = registered.NextSet(i + 1) {
			cases[i].unregister(w.ID)
		}
	}()

	// Register before the first poll: a state change between a poll pass
	// and the wait below then leaves the waiter signaled. A destroyed
	// channel refuses registration; its case still polls as ErrClosed, so
	// an earlier ready case keeps precedence.
	for i, cs := range cases {
		if cs.register(w) == nil {
			registered.Set(uint(i))
		}
	}

	for {
		if i, done, err := pollCases(cases); done {
			return i, err
		}
		select {
		case <-w.C():
		case <-ctx.Done():
			return -1, ctx.Err()
		}
	}
}

// TrySelect polls every case once, in order, without parking. It returns
// (-1, [ErrNotReady]) if no case could proceed.
func TrySelect(cases ...Case) (int, error) {
	if err := validate(cases); err != nil {
		return IndexOf(err), err
	}
	if i, done, err := pollCases(cases); done {
		return i, err
	}
	return -1, ErrNotReady
}

func validate(cases []Case) error {
	if len(cases) == 0 {
		return ErrNoCases
	}
	for i, cs := range cases {
		if cs == nil || !cs.valid() {
			d := RecvDir
			if cs != nil {
				d = cs.Dir()
			}
			return &CaseError{Index: i, Dir: d, Err: ErrNilSlot}
		}
	}
	return nil
}

// pollCases runs one non-blocking pass. done is false only if every case
// reported it was not ready.
func pollCases(cases []Case) (int, bool, error) {
	for i, cs := range cases {
		err := cs.poll()
		if notReady(err) {
			continue
		}
		if err != nil {
			return i, true, &CaseError{Index: i, Dir: cs.Dir(), Err: err}
		}
		return i, true, nil
	}
	return -1, false, nil
}

func notReady(err error) bool {
	return errors.Is(err, ErrFull) || errors.Is(err, ErrEmpty)
}
