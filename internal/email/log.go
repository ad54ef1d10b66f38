package email

import (
	"context"
	"log/slog"
)

// LogSender writes messages to the structured log instead of delivering
// them. It is the development default.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "Email (log provider)",
		"to", msg.To,
		"from", msg.From,
		"subject", msg.Subject,
		"body", msg.Text,
	)
	return nil
}
