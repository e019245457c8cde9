package chanx

import (
	"context"
	"errors"

	"github.com/baxromumarov/semchan"
)

// Merge forwards every value from ins to out (fan-in) until all inputs
// are closed and drained, then closes out. A single goroutine selects
// over the inputs, so values from one input keep their order.
//
// Merge blocks until it is done and returns nil, or returns early with
// the context error or [semchan.ErrClosed] if out is closed under it.
// Inputs are never closed by Merge.
func Merge[T any](ctx context.Context, out *semchan.Channel[T], ins ...*semchan.Channel[T]) error {
	live := append([]*semchan.Channel[T](nil), ins...)
	var v T
	for len(live) > 0 {
		cases := make([]semchan.Case, len(live))
		for i, in := range live {
			cases[i] = semchan.RecvCase(in, &v)
		}

		i, err := semchan.SelectContext(ctx, cases...)
		if errors.Is(err, semchan.ErrClosed) && i >= 0 {
			live = append(live[:i], live[i+1:]...)
			continue
		}
		if err != nil {
			return err
		}
		if err := out.SendContext(ctx, v); err != nil {
			return err
		}
	}
	return out.Close()
}

// FanOut hands each value received from in to whichever of outs can
// take it first; when several are ready the earliest listed wins. Once
// in is closed and drained every output is closed.
//
// FanOut blocks until it is done. It returns the context error, or
// [semchan.ErrClosed] wrapped in a [*semchan.CaseError] if an output is
// closed while values remain.
//
// FanOut panics if outs is empty.
func FanOut[T any](ctx context.Context, in *semchan.Channel[T], outs ...*semchan.Channel[T]) error {
	if len(outs) == 0 {
		panic("chanx: FanOut requires at least one output")
	}
	for {
		v, ok, err := Recv(ctx, in)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		cases := make([]semchan.Case, len(outs))
		for i, out := range outs {
			cases[i] = semchan.SendCase(out, v)
		}
		if _, err := semchan.SelectContext(ctx, cases...); err != nil {
			return err
		}
	}

	var errs []error
	for _, out := range outs {
		if err := out.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
