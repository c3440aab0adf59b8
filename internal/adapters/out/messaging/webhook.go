package messaging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"restaurant/internal/core/domain/model/notification"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultWebhookTimeout = 5 * time.Second

// WebhookSender POSTs an Envelope to url. Any non-2xx answer is a failure.
type WebhookSender struct {
	channel notification.Channel
	url     string
	token   string
	client  *http.Client
}

func NewWebhookSender(channel notification.Channel, url, token string) *WebhookSender {
	return &WebhookSender{
		channel: channel,
		url:     url,
		token:   token,
		client: &http.Client{
			Timeout:   defaultWebhookTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (s *WebhookSender) Send(ctx context.Context, recipient, message string) error {
	body, err := encode(s.channel, recipient, message)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s webhook rejected request: %s", s.channel, resp.Status)
	}
	return nil
}
