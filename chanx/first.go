package chanx

import (
	"context"

	"github.com/baxromumarov/semchan"
)

// First returns the first value received from any of chs, together with
// the index of the channel it came from. When several channels hold a
// value the earliest listed wins.
//
// A closed and drained input ends the wait with [semchan.ErrClosed]
// wrapped in a [*semchan.CaseError]. If ctx is cancelled first, First
// returns index -1 and the context error. Without channels it returns
// [semchan.ErrNoCases].
func First[T any](ctx context.Context, chs ...*semchan.Channel[T]) (T, int, error) {
	var v T
	cases := make([]semchan.Case, len(chs))
	for i, ch := range chs {
		cases[i] = semchan.RecvCase(ch, &v)
	}
	i, err := semchan.SelectContext(ctx, cases...)
	if err != nil {
		var zero T
		return zero, i, err
	}
	return v, i, nil
}
