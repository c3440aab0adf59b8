package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/notification"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

var ErrNoSenderForChannel = errors.New("no sender configured for channel")

// DeliveryClaimTTL is how long a pending channel stays reserved for the sender
// that claimed it. Older claims are treated as abandoned.
const DeliveryClaimTTL = time.Minute

// ChannelOutcome is the result of one channel of a notification.
type ChannelOutcome struct {
	Channel notification.Channel
	Status  notification.DeliveryStatus
	Err     error
}

type SendOrderNotificationsResult struct {
	// NotificationID is zero when the status change is not customer facing.
	NotificationID kernel.UUID
	Outcomes       []ChannelOutcome
}

// Err joins the channel failures, or returns nil when no channel failed.
func (r SendOrderNotificationsResult) Err() error {
	var errList []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errList = append(errList, fmt.Errorf("channel %s: %w", o.Channel, o.Err))
		}
	}
	return errors.Join(errList...)
}

// SendOrderNotificationsCommandHandler turns a status change into customer messages.
//
// Channels are attempted concurrently and independently: a failing SMS provider
// does not keep the push message from going out. Outcomes are stored per
// (notification, channel); channels already delivered are not sent again, so the
// handler can be retried. A channel is claimed before sending, so concurrent
// handlers for the same notification do not both send it.
type SendOrderNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	composer   services.NotificationComposer
	renderer   *notification.Renderer
	senders    map[notification.Channel]ports.MessageSender
}

func NewSendOrderNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	composer services.NotificationComposer,
	renderer *notification.Renderer,
	senders map[notification.Channel]ports.MessageSender,
) SendOrderNotificationsCommandHandler {
	return SendOrderNotificationsCommandHandler{
		uowFactory: uowFactory,
		composer:   composer,
		renderer:   renderer,
		senders:    senders,
	}
}

// Handle returns an error when the order cannot be loaded or the message cannot
// be rendered (*notification.TemplateError). Channel failures are reported in the result.
func (h SendOrderNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd SendOrderNotificationsCommand,
) (SendOrderNotificationsResult, error) {
	if err := cmd.Validate(); err != nil {
		return SendOrderNotificationsResult{}, err
	}

	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return SendOrderNotificationsResult{}, err
	}

	req, ok := h.composer.Compose(o, cmd.Status())
	if !ok {
		return SendOrderNotificationsResult{}, nil
	}
	result := SendOrderNotificationsResult{
		NotificationID: req.ID,
		Outcomes:       make([]ChannelOutcome, len(req.Channels)),
	}

	message, err := h.renderer.Render(req.TemplateID, req.Variables)
	if err != nil {
		return result, err
	}

	deliveries := uow.DeliveryRepository()

	var g errgroup.Group
	for i, channel := range req.Channels {
		g.Go(func() error {
			result.Outcomes[i] = h.deliver(ctx, deliveries, req, channel, message)
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}

func (h SendOrderNotificationsCommandHandler) deliver(
	ctx context.Context,
	deliveries ports.DeliveryRepository,
	req notification.Request,
	channel notification.Channel,
	message string,
) ChannelOutcome {
	record, err := deliveries.Find(ctx, req.ID, channel)
	switch {
	case err == nil && record.IsFinal():
		return ChannelOutcome{Channel: channel, Status: record.Status}
	case errors.Is(err, errs.ErrObjectNotFound):
		record = notification.Delivery{
			NotificationID: req.ID,
			OrderID:        req.OrderID,
			Type:           req.Type,
			Channel:        channel,
		}
	case err != nil:
		return ChannelOutcome{Channel: channel, Status: notification.Failed, Err: err}
	}

	record.Recipient = req.Recipient.AddressFor(channel)
	record.UpdatedAt = time.Now().UTC()

	if record.Recipient == "" {
		record.Status = notification.Skipped
		return ChannelOutcome{Channel: channel, Status: record.Status, Err: deliveries.Save(ctx, record)}
	}

	claimed, err := deliveries.Claim(ctx, record, record.UpdatedAt.Add(-DeliveryClaimTTL))
	if err != nil {
		return ChannelOutcome{Channel: channel, Status: notification.Failed, Err: err}
	}
	if !claimed {
		return ChannelOutcome{Channel: channel, Status: notification.Pending}
	}

	var sendErr error
	if sender, ok := h.senders[channel]; ok {
		sendErr = sender.Send(ctx, record.Recipient, message)
	} else {
		sendErr = fmt.Errorf("%w: %s", ErrNoSenderForChannel, channel)
	}

	record.Attempts++
	record.Status = notification.Delivered
	record.LastError = ""
	if sendErr != nil {
		record.Status = notification.Failed
		record.LastError = sendErr.Error()
	}

	return ChannelOutcome{
		Channel: channel,
		Status:  record.Status,
		Err:     errors.Join(sendErr, deliveries.Save(ctx, record)),
	}
}
