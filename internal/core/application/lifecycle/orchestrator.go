// Package lifecycle coordinates an order status change with its side effects.
//
// The status change is committed synchronously; kitchen tickets and customer
// notifications follow asynchronously and on a best-effort basis. A side effect
// that fails is logged, counted and written to the dispatch failure log for the
// retry job. It never changes the result returned to the caller.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/dispatch"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "restaurant/lifecycle"

	DefaultDispatchTimeout = 5 * time.Second
)

type (
	// StatusTransitioner is satisfied by commands.TransitionOrderStatusCommandHandler.
	StatusTransitioner interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderStatusCommand) (*order.Order, error)
	}

	// FailureRecorder is satisfied by commands.RecordDispatchFailureCommandHandler.
	FailureRecorder interface {
		Handle(ctx context.Context, cmd commands.RecordDispatchFailureCommand) error
	}
)

type Option func(*Orchestrator)

// WithDispatchTimeout bounds every side effect. Non-positive values are ignored.
func WithDispatchTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Orchestrator) {
		if tp != nil {
			o.tracerProvider = tp
		}
	}
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *Orchestrator) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}

// Orchestrator runs status transitions and fans them out.
type Orchestrator struct {
	transitioner StatusTransitioner
	kitchen      commands.KitchenTicketsDispatcher
	notifier     commands.OrderNotificationsSender
	recorder     FailureRecorder

	timeout        time.Duration
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider

	tracer   trace.Tracer
	failures metric.Int64Counter

	inFlight sync.WaitGroup
}

func NewOrchestrator(
	transitioner StatusTransitioner,
	kitchen commands.KitchenTicketsDispatcher,
	notifier commands.OrderNotificationsSender,
	recorder FailureRecorder,
	opts ...Option,
) (*Orchestrator, error) {
	o := &Orchestrator{
		transitioner:   transitioner,
		kitchen:        kitchen,
		notifier:       notifier,
		recorder:       recorder,
		timeout:        DefaultDispatchTimeout,
		logger:         slog.Default(),
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(o)
	}

	o.logger = o.logger.With("component", "lifecycle_orchestrator")
	o.tracer = o.tracerProvider.Tracer(instrumentationName)

	failures, err := o.meterProvider.Meter(instrumentationName).Int64Counter(
		"restaurant.dispatch.failures",
		metric.WithDescription("Side effects of committed status transitions that did not complete"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create dispatch failure counter: %w", err)
	}
	o.failures = failures

	return o, nil
}

// Transition commits the status change and returns the committed order. Errors
// come only from the commit: not found, invalid transition, conflict or
// validation. Side effects are started after the commit and are not awaited.
func (o *Orchestrator) Transition(ctx context.Context, cmd commands.TransitionOrderStatusCommand) (*order.Order, error) {
	ctx, span := o.tracer.Start(ctx, "lifecycle.Transition", trace.WithAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("order.status.requested", cmd.Status().String()),
	))
	defer span.End()

	updated, err := o.transitioner.Handle(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	o.logger.InfoContext(ctx, "order status changed",
		"order_id", updated.ID().String(),
		"status", updated.Status().String(),
		"actor", cmd.Actor(),
	)

	o.fanOut(ctx, updated.ID(), updated.Status())
	return updated, nil
}

// Wait blocks until every side effect started so far has finished.
func (o *Orchestrator) Wait() {
	o.inFlight.Wait()
}

func (o *Orchestrator) fanOut(ctx context.Context, orderID kernel.UUID, status order.Status) {
	// Side effects outlive the request but keep its trace.
	detached := context.WithoutCancel(ctx)

	switch status {
	case order.Preparing:
		o.launch(detached, dispatch.Kitchen, orderID, status, o.dispatchKitchen)
	case order.Ready, order.Served:
		o.launch(detached, dispatch.Notification, orderID, status, o.sendNotifications)
	default:
	}
}

type sideEffect func(ctx context.Context, orderID kernel.UUID, status order.Status) error

func (o *Orchestrator) launch(
	ctx context.Context,
	kind dispatch.Kind,
	orderID kernel.UUID,
	status order.Status,
	run sideEffect,
) {
	o.inFlight.Add(1)
	go func() {
		defer o.inFlight.Done()

		runCtx, cancel := context.WithTimeout(ctx, o.timeout)
		defer cancel()

		runCtx, span := o.tracer.Start(runCtx, "lifecycle.dispatch."+string(kind), trace.WithAttributes(
			attribute.String("order.id", orderID.String()),
			attribute.String("order.status", status.String()),
		))
		defer span.End()

		err := safeRun(runCtx, orderID, status, run)
		switch {
		case err == nil:
			return
		case errors.Is(err, services.ErrOrderIsNotPreparing):
			// The order moved on before the tickets were cut; nothing to retry.
			o.logger.WarnContext(ctx, "kitchen dispatch skipped",
				"order_id", orderID.String(), "error", err)
			return
		}

		failure := errs.NewDispatchFailureErrorWithCause(string(kind), orderID.String(), err)
		span.RecordError(failure)
		span.SetStatus(codes.Error, failure.Error())
		o.failures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", string(kind)),
			attribute.String("order.status", status.String()),
		))
		o.logger.ErrorContext(ctx, "dispatch failed",
			"kind", string(kind),
			"order_id", orderID.String(),
			"status", status.String(),
			"error", failure,
		)

		o.recordFailure(ctx, kind, orderID, status, err)
	}()
}

func safeRun(ctx context.Context, orderID kernel.UUID, status order.Status, run sideEffect) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return run(ctx, orderID, status)
}

// recordFailure gets its own timeout: the dispatch context may already be spent.
func (o *Orchestrator) recordFailure(
	ctx context.Context,
	kind dispatch.Kind,
	orderID kernel.UUID,
	status order.Status,
	cause error,
) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	cmd, err := commands.NewRecordDispatchFailureCommand(orderID, kind, status, cause)
	if err == nil {
		err = o.recorder.Handle(ctx, cmd)
	}
	if err != nil {
		o.logger.ErrorContext(ctx, "dispatch failure not recorded",
			"kind", string(kind),
			"order_id", orderID.String(),
			"error", err,
		)
	}
}

func (o *Orchestrator) dispatchKitchen(ctx context.Context, orderID kernel.UUID, _ order.Status) error {
	cmd, err := commands.NewDispatchKitchenTicketsCommand(orderID)
	if err != nil {
		return err
	}
	res, err := o.kitchen.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	o.logger.InfoContext(ctx, "kitchen tickets dispatched",
		"order_id", orderID.String(),
		"tickets", len(res.Tickets),
		"created", res.Created,
		"failed_departments", len(res.Failures),
	)
	return res.Err()
}

func (o *Orchestrator) sendNotifications(ctx context.Context, orderID kernel.UUID, status order.Status) error {
	cmd, err := commands.NewSendOrderNotificationsCommand(orderID, status)
	if err != nil {
		return err
	}
	res, err := o.notifier.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	for _, outcome := range res.Outcomes {
		o.logger.InfoContext(ctx, "notification outcome",
			"order_id", orderID.String(),
			"channel", string(outcome.Channel),
			"status", string(outcome.Status),
		)
	}
	return res.Err()
}
