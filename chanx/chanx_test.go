package chanx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/semchan"
)

// filled returns a closed channel holding vs.
func filled(t *testing.T, vs ...int) *semchan.Channel[int] {
	t.Helper()
	ch := semchan.New[int](len(vs) + 1)
	for _, v := range vs {
		require.NoError(t, ch.Send(v))
	}
	require.NoError(t, ch.Close())
	return ch
}

func TestSend(t *testing.T) {
	ch := semchan.New[int](1)

	err := Send(context.Background(), ch, 12)
	assert.NoError(t, err)

	val, err := ch.Receive()
	require.NoError(t, err)
	assert.Equal(t, 12, val)
}

func TestSend_ContextCanceled(t *testing.T) {
	ch := semchan.New[int](0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Send(ctx, ch, 12)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSend_Closed(t *testing.T) {
	ch := semchan.New[int](1)
	require.NoError(t, ch.Close())

	assert.ErrorIs(t, Send(context.Background(), ch, 1), semchan.ErrClosed)
}

func TestRecv(t *testing.T) {
	ch := filled(t, 7)

	val, ok, err := Recv(context.Background(), ch)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, val)

	// closed and drained
	_, ok, err = Recv(context.Background(), ch)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRecv_ContextCanceled(t *testing.T) {
	ch := semchan.New[int](1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := Recv(ctx, ch)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}
