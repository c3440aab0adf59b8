package commands_test

import (
	"errors"
	"testing"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type kitchenFixture struct {
	order   *order.Order
	beer    menu.Item
	steak   menu.Item
	uow     *MockUoW
	orders  *MockOrderRepository
	tickets *MockTicketRepository
	catalog *MockMenuCatalog
}

// newKitchenFixture builds an order with BAR x1 and KITCHEN x2 in the given status.
func newKitchenFixture(t *testing.T, status order.Status) kitchenFixture {
	t.Helper()
	f := kitchenFixture{
		beer:    mustMenuItem(t, "BAR", 30000, 2*time.Minute),
		steak:   mustMenuItem(t, "KITCHEN", 90000, 25*time.Minute),
		uow:     new(MockUoW),
		orders:  new(MockOrderRepository),
		tickets: new(MockTicketRepository),
		catalog: new(MockMenuCatalog),
	}
	f.order = orderFromMenu(t, status, order.Contact{}, f.beer, f.steak)

	f.uow.On("OrderRepository").Return(f.orders)
	f.uow.On("KitchenTicketRepository").Return(f.tickets)
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Commit", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.orders.On("Get", mock.Anything, f.order.ID()).Return(f.order, nil)
	f.catalog.On("Lookup", mock.Anything, mock.Anything).
		Return(map[kernel.UUID]menu.Item{f.beer.ID(): f.beer, f.steak.ID(): f.steak}, nil)
	return f
}

func (f kitchenFixture) handle(t *testing.T) (commands.DispatchKitchenTicketsResult, error) {
	t.Helper()
	cmd, err := commands.NewDispatchKitchenTicketsCommand(f.order.ID())
	require.NoError(t, err)
	return commands.NewDispatchKitchenTicketsCommandHandler(kitchenUoWFactory{f.uow}, f.catalog, 2).Handle(t.Context(), cmd)
}

func notFound(dept string) error {
	return errs.NewObjectNotFoundError("ticket", dept)
}

func TestDispatchKitchenTicketsCommandHandler_CreatesOneTicketPerDepartment(t *testing.T) {
	f := newKitchenFixture(t, order.Preparing)
	bar, kitchenDept := kernel.MustDepartment("BAR"), kernel.MustDepartment("KITCHEN")
	f.tickets.On("FindByOrderAndDepartment", mock.Anything, f.order.ID(), bar).Return(nil, notFound("BAR"))
	f.tickets.On("FindByOrderAndDepartment", mock.Anything, f.order.ID(), kitchenDept).Return(nil, notFound("KITCHEN"))
	f.tickets.On("Add", mock.Anything, mock.AnythingOfType("*kitchen.Ticket")).Return(nil).Twice()

	result, err := f.handle(t)

	require.NoError(t, err)
	require.NoError(t, result.Err())
	assert.Equal(t, 2, result.Created)
	require.Len(t, result.Tickets, 2)

	barTicket, kitchenTicket := result.Tickets[0], result.Tickets[1]
	assert.Equal(t, "BAR", barTicket.Department().String())
	require.Len(t, barTicket.Items(), 1)
	assert.Equal(t, 1, barTicket.Items()[0].Quantity())
	assert.True(t, barTicket.Items()[0].MenuItemID().IsEqual(f.beer.ID()))

	assert.Equal(t, "KITCHEN", kitchenTicket.Department().String())
	require.Len(t, kitchenTicket.Items(), 1)
	assert.Equal(t, 2, kitchenTicket.Items()[0].Quantity())
	assert.Equal(t, 25*time.Minute, kitchenTicket.EstimatedTime())
	assert.Equal(t, kitchen.Pending, kitchenTicket.Status())
	f.tickets.AssertExpectations(t)
}

func TestDispatchKitchenTicketsCommandHandler_ReusesExistingTickets(t *testing.T) {
	f := newKitchenFixture(t, order.Preparing)
	bar, kitchenDept := kernel.MustDepartment("BAR"), kernel.MustDepartment("KITCHEN")
	existing, err := kitchen.NewTicket(f.order.ID(), f.order.Number(), bar, order.Normal,
		[]kitchen.Item{mustTicketItem(t, 0, f.beer.ID(), 1)}, testNow)
	require.NoError(t, err)

	f.tickets.On("FindByOrderAndDepartment", mock.Anything, f.order.ID(), bar).Return(existing, nil)
	f.tickets.On("FindByOrderAndDepartment", mock.Anything, f.order.ID(), kitchenDept).Return(nil, notFound("KITCHEN"))
	f.tickets.On("Add", mock.Anything, mock.AnythingOfType("*kitchen.Ticket")).Return(nil).Once()

	result, err := f.handle(t)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Tickets, 2)
	assert.Same(t, existing, result.Tickets[0])
	f.tickets.AssertNumberOfCalls(t, "Add", 1)
}

func TestDispatchKitchenTicketsCommandHandler_ResolvesInsertRace(t *testing.T) {
	f := newKitchenFixture(t, order.Preparing)
	bar, kitchenDept := kernel.MustDepartment("BAR"), kernel.MustDepartment("KITCHEN")
	winner, err := kitchen.NewTicket(f.order.ID(), f.order.Number(), bar, order.Normal,
		[]kitchen.Item{mustTicketItem(t, 0, f.beer.ID(), 1)}, testNow)
	require.NoError(t, err)

	f.tickets.On("FindByOrderAndDepartment", mock.Anything, f.order.ID(), bar).Return(nil, notFound("BAR")).Once()
	f.tickets.On("FindByOrderAndDepartment", mock.Anything, f.order.ID(), bar).Return(winner, nil).Once()
	f.tickets.On("FindByOrderAndDepartment", mock.Anything, f.order.ID(), kitchenDept).Return(nil, notFound("KITCHEN"))
	f.tickets.On("Add", mock.Anything, mock.MatchedBy(func(tk *kitchen.Ticket) bool {
		return tk.Department().String() == "BAR"
	})).Return(errs.NewConflictError("kitchen ticket", "BAR")).Once()
	f.tickets.On("Add", mock.Anything, mock.MatchedBy(func(tk *kitchen.Ticket) bool {
		return tk.Department().String() == "KITCHEN"
	})).Return(nil).Once()

	result, err := f.handle(t)

	require.NoError(t, err)
	require.NoError(t, result.Err())
	assert.Equal(t, 1, result.Created)
	assert.Same(t, winner, result.Tickets[0])
}

func TestDispatchKitchenTicketsCommandHandler_DepartmentFailureIsIsolated(t *testing.T) {
	f := newKitchenFixture(t, order.Preparing)
	bar, kitchenDept := kernel.MustDepartment("BAR"), kernel.MustDepartment("KITCHEN")
	dbErr := errors.New("disk full")

	f.tickets.On("FindByOrderAndDepartment", mock.Anything, f.order.ID(), bar).Return(nil, notFound("BAR"))
	f.tickets.On("FindByOrderAndDepartment", mock.Anything, f.order.ID(), kitchenDept).Return(nil, notFound("KITCHEN"))
	f.tickets.On("Add", mock.Anything, mock.MatchedBy(func(tk *kitchen.Ticket) bool {
		return tk.Department().String() == "KITCHEN"
	})).Return(dbErr)
	f.tickets.On("Add", mock.Anything, mock.MatchedBy(func(tk *kitchen.Ticket) bool {
		return tk.Department().String() == "BAR"
	})).Return(nil)

	result, err := f.handle(t)

	require.NoError(t, err)
	require.Len(t, result.Tickets, 1)
	assert.Equal(t, "BAR", result.Tickets[0].Department().String())
	require.ErrorIs(t, result.Failures["KITCHEN"], dbErr)
	require.ErrorIs(t, result.Err(), dbErr)
	assert.Contains(t, result.Err().Error(), "department KITCHEN")
}

func TestDispatchKitchenTicketsCommandHandler_RequiresPreparingOrder(t *testing.T) {
	f := newKitchenFixture(t, order.Confirmed)

	_, err := f.handle(t)

	require.ErrorIs(t, err, services.ErrOrderIsNotPreparing)
	f.tickets.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestDispatchKitchenTicketsCommandHandler_OrderNotFound(t *testing.T) {
	uow := new(MockUoW)
	orders := new(MockOrderRepository)
	id := kernel.NewUUID()
	uow.On("OrderRepository").Return(orders)
	orders.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("order", id.String()))

	cmd, err := commands.NewDispatchKitchenTicketsCommand(id)
	require.NoError(t, err)
	_, err = commands.NewDispatchKitchenTicketsCommandHandler(kitchenUoWFactory{uow}, new(MockMenuCatalog), 0).
		Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func mustTicketItem(t *testing.T, lineIndex int, menuItemID kernel.UUID, qty int) kitchen.Item {
	t.Helper()
	item, err := kitchen.NewItem(lineIndex, menuItemID, qty, "", 0)
	require.NoError(t, err)
	return item
}
