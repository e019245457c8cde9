package chanx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/semchan"
)

func TestSendBatch(t *testing.T) {
	ch := semchan.New[int](3)

	err := SendBatch(context.Background(), ch, []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, ch.Len())

	got, err := RecvBatch(context.Background(), ch, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestSendBatch_StopsOnCancel(t *testing.T) {
	ch := semchan.New[int](2)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := SendBatch(ctx, ch, []int{1, 2, 3, 4})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 2, ch.Len())
}

func TestSendBatch_Closed(t *testing.T) {
	ch := semchan.New[int](4)
	require.NoError(t, ch.Close())

	err := SendBatch(context.Background(), ch, []int{1})
	assert.ErrorIs(t, err, semchan.ErrClosed)
}

func TestRecvBatch_PartialOnClose(t *testing.T) {
	got, err := RecvBatch(context.Background(), filled(t, 5, 6), 4)
	assert.NoError(t, err)
	assert.Equal(t, []int{5, 6}, got)
}

func TestRecvBatch_PartialOnCancel(t *testing.T) {
	ch := semchan.New[int](4)
	require.NoError(t, ch.Send(1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	got, err := RecvBatch(ctx, ch, 3)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []int{1}, got)
}

func TestRecvBatch_PanicsOnNonPositive(t *testing.T) {
	assert.PanicsWithValue(t, "chanx: RecvBatch requires n > 0", func() {
		_, _ = RecvBatch(context.Background(), semchan.New[int](1), 0)
	})
}
