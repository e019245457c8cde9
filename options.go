package semchan

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

type config struct {
	name   string
	logger logrus.FieldLogger
}

// Option configures a [Channel].
type Option func(*config)

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

var unnamed atomic.Int64

// defaultConfig names the channel "chan-<n>" so that unnamed channels
// still get distinct metric labels.
func defaultConfig() config {
	return config{
		name:   fmt.Sprintf("chan-%d", unnamed.Add(1)),
		logger: discardLogger,
	}
}

// WithName sets the name used in log entries and metric labels. Without
// it a channel is named "chan-<n>" with n unique in the process.
// It panics if name is empty.
func WithName(name string) Option {
	return func(c *config) {
		if name == "" {
			panic("semchan: WithName requires a non-empty name")
		}
		c.name = name
	}
}

// WithLogger routes the channel's lifecycle logging to l. By default
// nothing is logged.
//
// WithLogger panics if l is nil.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l == nil {
			panic("semchan: WithLogger requires non-nil logger")
		}
		c.logger = l
	}
}
