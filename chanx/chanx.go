package chanx

import (
	"context"
	"errors"

	"github.com/baxromumarov/semchan"
)

// Send sends v to ch, unblocking early if ctx is canceled.
// It returns nil on successful send, [semchan.ErrClosed] if ch is closed,
// or the context error if canceled.
func Send[T any](ctx context.Context, ch *semchan.Channel[T], v T) error {
	return ch.SendContext(ctx, v)
}

// Recv receives a value from ch, unblocking early if ctx is canceled.
// It returns the value, a boolean indicating whether a value was received
// (false means ch is closed and drained), and any other error.
func Recv[T any](ctx context.Context, ch *semchan.Channel[T]) (T, bool, error) {
	v, err := ch.ReceiveContext(ctx)
	switch {
	case err == nil:
		return v, true, nil
	case errors.Is(err, semchan.ErrClosed):
		return v, false, nil
	default:
		return v, false, err
	}
}
