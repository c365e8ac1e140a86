package notification

import (
	"context"
	"log/slog"
)

// LogSender records deliveries in the log. It stands in for push, email and
// SMS providers, which are configured outside this service.
type LogSender struct {
	channel string
	logger  *slog.Logger
}

// NewLogSender creates a sender for channel that writes to logger.
func NewLogSender(channel string, logger *slog.Logger) *LogSender {
	return &LogSender{channel: channel, logger: logger}
}

func (s *LogSender) Channel() string { return s.channel }

func (s *LogSender) Send(ctx context.Context, n *Notification, title, body string) error {
	if s.logger == nil {
		return nil
	}
	s.logger.InfoContext(ctx, "notification delivered",
		"channel", s.channel,
		"notification_id", n.ID,
		"user_id", n.UserID,
		"title", title,
		"body", body,
	)
	return nil
}
