package semchan

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLoggerRecordsLifecycle(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	ch := New[int](1, WithName("orders"), WithLogger(logger))

	require.ErrorIs(t, ch.Destroy(), ErrDestroy)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "orders", entry.Data["channel"])

	require.NoError(t, ch.Close())
	entry = hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "channel closed", entry.Message)

	require.NoError(t, ch.Destroy())
	assert.Equal(t, "channel destroyed", hook.LastEntry().Message)
	assert.Len(t, hook.AllEntries(), 3)
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	ch := New[int](1)
	require.NoError(t, ch.Close())
	require.NoError(t, ch.Destroy())
}

func TestOptionPanics(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		assert.Panics(t, func() {
			New[int](1, WithName(""))
		})
	})
	t.Run("nil logger", func(t *testing.T) {
		assert.Panics(t, func() {
			New[int](1, WithLogger(nil))
		})
	})
}
