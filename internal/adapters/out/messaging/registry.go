package messaging

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"restaurant/internal/core/domain/model/notification"
	"restaurant/internal/core/ports"
)

// Provider kinds understood by NewSenders.
const (
	KindLog     = "log"
	KindNoop    = "noop"
	KindFail    = "fail"
	KindWebhook = "webhook"
	KindAMQP    = "amqp"
	KindNATS    = "nats"
)

// ProviderConfig selects and configures the provider of one channel.
type ProviderConfig struct {
	Kind string
	// URL is the webhook endpoint or the broker address.
	URL   string
	Token string
	// Target is the AMQP exchange or the NATS subject.
	Target string
}

// Senders owns the providers built by NewSenders and their connections.
type Senders struct {
	byChannel map[notification.Channel]ports.MessageSender
	closers   []func() error
}

// NewSenders builds one sender per configured channel. An empty Kind falls back
// to the log provider. Connections opened so far are closed when a later
// provider fails to start.
func NewSenders(cfg map[notification.Channel]ProviderConfig, logger *slog.Logger) (*Senders, error) {
	s := &Senders{byChannel: make(map[notification.Channel]ports.MessageSender, len(cfg))}

	for channel, pc := range cfg {
		if err := channel.Validate(); err != nil {
			_ = s.Close()
			return nil, err
		}
		sender, err := s.build(channel, pc, logger)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("%s provider: %w", channel, err)
		}
		s.byChannel[channel] = sender
	}

	return s, nil
}

func (s *Senders) build(channel notification.Channel, pc ProviderConfig, logger *slog.Logger) (ports.MessageSender, error) {
	switch strings.ToLower(strings.TrimSpace(pc.Kind)) {
	case "", KindLog:
		return NewLogSender(channel, logger), nil
	case KindNoop:
		return NoopSender{}, nil
	case KindFail:
		return FailSender{}, nil
	case KindWebhook:
		if pc.URL == "" {
			return nil, errors.New("webhook url is required")
		}
		return NewWebhookSender(channel, pc.URL, pc.Token), nil
	case KindAMQP:
		if pc.URL == "" || pc.Target == "" {
			return nil, errors.New("amqp url and exchange are required")
		}
		ch, closeConn, err := DialAMQP(pc.URL, pc.Target)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, closeConn)
		return NewAMQPSender(channel, ch, pc.Target), nil
	case KindNATS:
		if pc.URL == "" || pc.Target == "" {
			return nil, errors.New("nats url and subject are required")
		}
		conn, err := ConnectNATS(pc.URL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() error {
			return conn.Drain()
		})
		return NewNATSSender(channel, conn, pc.Target), nil
	default:
		return nil, fmt.Errorf("unknown provider kind %q", pc.Kind)
	}
}

// ByChannel returns a copy of the channel to sender map.
func (s *Senders) ByChannel() map[notification.Channel]ports.MessageSender {
	result := make(map[notification.Channel]ports.MessageSender, len(s.byChannel))
	for channel, sender := range s.byChannel {
		result[channel] = sender
	}
	return result
}

func (s *Senders) Close() error {
	var errList []error
	for _, closeFn := range s.closers {
		errList = append(errList, closeFn())
	}
	s.closers = nil
	return errors.Join(errList...)
}
