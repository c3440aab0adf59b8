package commands_test

import (
	"context"
	"testing"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/dispatch"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/notification"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockTicketRepository struct{ mock.Mock }

func (m *MockTicketRepository) Add(ctx context.Context, t *kitchen.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTicketRepository) Update(ctx context.Context, t *kitchen.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTicketRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*kitchen.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchen.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByOrderAndDepartment(
	ctx context.Context,
	orderID kernel.UUID,
	department kernel.Department,
) (*kitchen.Ticket, error) {
	args := m.Called(ctx, orderID, department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchen.Ticket), args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Find(
	ctx context.Context,
	id kernel.UUID,
	channel notification.Channel,
) (notification.Delivery, error) {
	args := m.Called(ctx, id, channel)
	return args.Get(0).(notification.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) Claim(ctx context.Context, d notification.Delivery, staleBefore time.Time) (bool, error) {
	args := m.Called(ctx, d, staleBefore)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryRepository) Save(ctx context.Context, d notification.Delivery) error {
	return m.Called(ctx, d).Error(0)
}

type MockFailureRepository struct{ mock.Mock }

func (m *MockFailureRepository) Add(ctx context.Context, f *dispatch.Failure) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFailureRepository) Update(ctx context.Context, f *dispatch.Failure) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFailureRepository) ListRetryable(ctx context.Context, maxAttempts, limit int) ([]*dispatch.Failure, error) {
	args := m.Called(ctx, maxAttempts, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dispatch.Failure), args.Error(1)
}

type MockMenuCatalog struct{ mock.Mock }

func (m *MockMenuCatalog) Lookup(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]menu.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]menu.Item), args.Error(1)
}

type MockSender struct{ mock.Mock }

func (m *MockSender) Send(ctx context.Context, recipient, message string) error {
	return m.Called(ctx, recipient, message).Error(0)
}

// MockUoW implements every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) KitchenTicketRepository() ports.KitchenTicketRepository {
	return m.Called().Get(0).(ports.KitchenTicketRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	return m.Called().Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) DispatchFailureRepository() ports.DispatchFailureRepository {
	return m.Called().Get(0).(ports.DispatchFailureRepository)
}

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type kitchenUoWFactory struct{ uow *MockUoW }

func (f kitchenUoWFactory) Create() commands.KitchenUoW { return f.uow }

type notificationUoWFactory struct{ uow *MockUoW }

func (f notificationUoWFactory) Create() commands.NotificationUoW { return f.uow }

type failureUoWFactory struct{ uow *MockUoW }

func (f failureUoWFactory) Create() commands.FailureUoW { return f.uow }

var testNow = time.Date(2025, 3, 14, 19, 0, 0, 0, time.UTC)

func mustMenuItem(t *testing.T, dept string, price int64, prep time.Duration) menu.Item {
	t.Helper()
	item, err := menu.NewItem(kernel.NewUUID(), "item-"+dept, kernel.MustDepartment(dept),
		decimal.NewFromInt(price), prep, true)
	require.NoError(t, err)
	return item
}

func orderFromMenu(t *testing.T, status order.Status, contact order.Contact, items ...menu.Item) *order.Order {
	t.Helper()
	lines := make([]order.Line, 0, len(items))
	for i, item := range items {
		line, err := order.NewLine(item.ID(), i+1, item.Price(), item.Department(), "")
		require.NoError(t, err)
		lines = append(lines, line)
	}
	id := kernel.NewUUID()
	o, err := order.RestoreOrder(id, order.NewNumber(id), status, order.Takeaway, lines,
		order.Details{Contact: contact}, 1, testNow, testNow)
	require.NoError(t, err)
	return o
}
