package messaging

import (
	"encoding/json"
	"time"

	"restaurant/internal/core/domain/model/notification"
)

// Envelope is the JSON body published by the webhook, amqp and nats providers.
type Envelope struct {
	Channel   notification.Channel `json:"channel"`
	Recipient string               `json:"recipient"`
	Message   string               `json:"message"`
	SentAt    time.Time            `json:"sentAt"`
}

func encode(channel notification.Channel, recipient, message string) ([]byte, error) {
	return json.Marshal(Envelope{
		Channel:   channel,
		Recipient: recipient,
		Message:   message,
		SentAt:    time.Now().UTC(),
	})
}
