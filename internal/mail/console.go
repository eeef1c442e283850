package mail

import (
	"context"
	"log/slog"
)

// LogSender writes messages to the log instead of sending them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that logs at info level.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "outgoing mail",
		"from", msg.From,
		"recipients", len(msg.To),
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
