package notifier

import (
	"context"

	"github.com/rs/zerolog"
)

// LogTransport writes notifications to the log instead of sending them.
// Useful for local development.
type LogTransport struct {
	logger zerolog.Logger
}

// NewLogTransport constructs a logging transport.
func NewLogTransport(logger zerolog.Logger) *LogTransport {
	return &LogTransport{logger: logger.With().Str("component", "notifier_log_transport").Logger()}
}

// Name implements Transport.
func (l *LogTransport) Name() string {
	return "log"
}

// Send logs the message envelope and reports success.
func (l *LogTransport) Send(_ context.Context, msg Message) error {
	l.logger.Info().
		Str("to", msg.To).
		Str("reply_to", msg.ReplyTo).
		Str("subject", msg.Subject).
		Int("text_bytes", len(msg.Text)).
		Msg("contact notification delivered to log")
	return nil
}
