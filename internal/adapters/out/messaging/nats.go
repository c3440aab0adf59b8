package messaging

import (
	"context"
	"fmt"

	"restaurant/internal/core/domain/model/notification"

	"github.com/nats-io/nats.go"
)

// natsPublisher is the part of *nats.Conn the sender uses.
type natsPublisher interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
}

// NATSSender publishes to subject and flushes, so that a broken connection is
// reported to the caller instead of dropping the message silently.
type NATSSender struct {
	channel notification.Channel
	conn    natsPublisher
	subject string
}

func NewNATSSender(channel notification.Channel, conn natsPublisher, subject string) *NATSSender {
	return &NATSSender{channel: channel, conn: conn, subject: subject}
}

func (s *NATSSender) Send(ctx context.Context, recipient, message string) error {
	body, err := encode(s.channel, recipient, message)
	if err != nil {
		return err
	}
	if err = s.conn.Publish(s.subject, body); err != nil {
		return fmt.Errorf("publish to %s: %w", s.subject, err)
	}
	return s.conn.FlushWithContext(ctx)
}

func ConnectNATS(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url, nats.Name("restaurant-orders"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return conn, nil
}
