package messaging

import (
	"context"
	"fmt"

	"restaurant/internal/core/domain/model/notification"

	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpPublisher is the part of *amqp.Channel the sender uses.
type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPSender publishes persistent messages to exchange with the channel name as
// routing key.
type AMQPSender struct {
	channel   notification.Channel
	publisher amqpPublisher
	exchange  string
}

func NewAMQPSender(channel notification.Channel, publisher amqpPublisher, exchange string) *AMQPSender {
	return &AMQPSender{channel: channel, publisher: publisher, exchange: exchange}
}

func (s *AMQPSender) Send(ctx context.Context, recipient, message string) error {
	body, err := encode(s.channel, recipient, message)
	if err != nil {
		return err
	}

	err = s.publisher.PublishWithContext(ctx, s.exchange, string(s.channel), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", s.exchange, err)
	}
	return nil
}

// DialAMQP connects to url, declares a durable topic exchange and returns the
// publishing channel together with a function that closes the connection.
func DialAMQP(url, exchange string) (*amqp.Channel, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return ch, conn.Close, nil
}
