// Options for configuring Event instances.

package eventx

import (
	"io"
	"log/slog"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// settings carries the construction-time knobs of an Event. It is
// deliberately not generic so a single Option type serves every Event[T].
type settings struct {
	name   string
	logger *slog.Logger
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) log() *slog.Logger {
	if s.logger == nil {
		return discard
	}
	return s.logger
}

// Option configures an Event at construction time.
type Option func(*settings)

// WithName tags the event's log records with a name. Purely diagnostic.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithLogger routes the event's diagnostics to l. Without it they are
// discarded.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}
