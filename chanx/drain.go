package chanx

import (
	"context"

	"github.com/baxromumarov/semchan"
)

// OrDone bridges ch to a native receive channel. The returned channel
// yields values from ch until ch is closed and drained or ctx is
// cancelled, whichever comes first, and is then closed.
//
// A value taken from ch just as ctx is cancelled is dropped.
func OrDone[T any](ctx context.Context, ch *semchan.Channel[T]) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for {
			v, ok, err := Recv(ctx, ch)
			if !ok || err != nil {
				return
			}
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Drain receives and discards values from ch until it is closed and
// empty, and returns how many were discarded. It blocks while ch is open.
// Use this to unblock producers during shutdown.
func Drain[T any](ch *semchan.Channel[T]) int {
	n := 0
	for {
		if _, ok, _ := Recv(context.Background(), ch); !ok {
			return n
		}
		n++
	}
}
