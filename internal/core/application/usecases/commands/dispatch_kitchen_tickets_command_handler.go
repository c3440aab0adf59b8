package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

const defaultDepartmentConcurrency = 4

// DispatchKitchenTicketsResult is a partial result: departments succeed or fail
// independently.
type DispatchKitchenTicketsResult struct {
	// Tickets holds one ticket per department that succeeded, ordered by department.
	Tickets []*kitchen.Ticket

	// Created counts tickets inserted by this call; the rest already existed.
	Created int

	// Failures maps department codes to the error that stopped them.
	Failures map[string]error
}

// Err joins the department failures, or returns nil when every department succeeded.
func (r DispatchKitchenTicketsResult) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	codes := make([]string, 0, len(r.Failures))
	for code := range r.Failures {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	errList := make([]error, 0, len(codes))
	for _, code := range codes {
		errList = append(errList, fmt.Errorf("department %s: %w", code, r.Failures[code]))
	}
	return errors.Join(errList...)
}

// DispatchKitchenTicketsCommandHandler creates the kitchen tickets of an order.
//
// Each department is handled in its own transaction so that a failing department
// never rolls back the others. A ticket that already exists for (order, department)
// is returned as is, which makes the handler safe to call repeatedly.
type DispatchKitchenTicketsCommandHandler struct {
	uowFactory  KitchenUoWFactory
	catalog     ports.MenuCatalog
	dispatcher  services.KitchenDispatcher
	concurrency int
}

// NewDispatchKitchenTicketsCommandHandler creates the handler. concurrency bounds
// the number of departments processed at once; values below 1 use a default.
func NewDispatchKitchenTicketsCommandHandler(
	uowFactory KitchenUoWFactory,
	catalog ports.MenuCatalog,
	concurrency int,
) DispatchKitchenTicketsCommandHandler {
	if concurrency < 1 {
		concurrency = defaultDepartmentConcurrency
	}
	return DispatchKitchenTicketsCommandHandler{
		uowFactory:  uowFactory,
		catalog:     catalog,
		dispatcher:  services.NewKitchenDispatcher(),
		concurrency: concurrency,
	}
}

// Handle returns an error only when the order cannot be split at all; department
// failures are reported in the result.
func (h DispatchKitchenTicketsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchKitchenTicketsCommand,
) (DispatchKitchenTicketsResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchKitchenTicketsResult{}, err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return DispatchKitchenTicketsResult{}, err
	}

	prepTimes, err := h.prepTimes(ctx, o)
	if err != nil {
		return DispatchKitchenTicketsResult{}, err
	}

	batches, err := h.dispatcher.Split(o, prepTimes)
	if err != nil {
		return DispatchKitchenTicketsResult{}, err
	}

	var (
		mu     sync.Mutex
		result = DispatchKitchenTicketsResult{Failures: map[string]error{}}
		g      errgroup.Group
	)
	g.SetLimit(h.concurrency)

	for _, batch := range batches {
		g.Go(func() error {
			ticket, created, deptErr := h.dispatchDepartment(ctx, o, batch)

			mu.Lock()
			defer mu.Unlock()
			if deptErr != nil {
				result.Failures[batch.Department.String()] = deptErr
				return nil
			}
			result.Tickets = append(result.Tickets, ticket)
			if created {
				result.Created++
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(result.Tickets, func(i, j int) bool {
		return result.Tickets[i].Department().String() < result.Tickets[j].Department().String()
	})

	return result, nil
}

func (h DispatchKitchenTicketsCommandHandler) prepTimes(ctx context.Context, o *order.Order) (map[kernel.UUID]time.Duration, error) {
	lines := o.Lines()
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.MenuItemID())
	}

	items, err := h.catalog.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}

	prepTimes := make(map[kernel.UUID]time.Duration, len(items))
	for id, item := range items {
		prepTimes[id] = item.PrepTime()
	}
	return prepTimes, nil
}

// dispatchDepartment fetches the department's ticket or creates it.
func (h DispatchKitchenTicketsCommandHandler) dispatchDepartment(
	ctx context.Context,
	o *order.Order,
	batch services.DepartmentBatch,
) (*kitchen.Ticket, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.KitchenTicketRepository()

	existing, err := repo.FindByOrderAndDepartment(ctx, o.ID(), batch.Department)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	ticket, err := h.dispatcher.BuildTicket(o, batch, time.Now())
	if err != nil {
		return nil, false, err
	}

	if err = repo.Add(ctx, ticket); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			// a concurrent dispatch inserted the ticket first
			_ = uow.Rollback(ctx)
			existing, err = h.uowFactory.Create().KitchenTicketRepository().
				FindByOrderAndDepartment(ctx, o.ID(), batch.Department)
			return existing, false, err
		}
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return ticket, true, nil
}
