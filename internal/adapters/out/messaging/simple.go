package messaging

import (
	"context"
	"errors"
	"log/slog"

	"restaurant/internal/core/domain/model/notification"
)

var ErrProviderFailure = errors.New("provider failure")

type LogSender struct {
	channel notification.Channel
	logger  *slog.Logger
}

func NewLogSender(channel notification.Channel, logger *slog.Logger) LogSender {
	return LogSender{channel: channel, logger: logger.With("component", "log_sender")}
}

func (s LogSender) Send(ctx context.Context, recipient, message string) error {
	s.logger.InfoContext(ctx, "message sent",
		"channel", string(s.channel),
		"recipient", recipient,
		"message", message,
	)
	return nil
}

type NoopSender struct{}

func (NoopSender) Send(context.Context, string, string) error {
	return nil
}

type FailSender struct{}

func (FailSender) Send(context.Context, string, string) error {
	return ErrProviderFailure
}
