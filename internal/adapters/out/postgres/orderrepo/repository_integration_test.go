package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/pgtest"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Reset(suite.db))
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsLinesAndHistory() {
	ctx := context.Background()
	o := suite.newDineInOrder()

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Equal(1, o.Version())
	suite.Empty(o.PendingStatusChanges())

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.Number(), got.Number())
	suite.Equal(order.Received, got.Status())
	suite.Equal(order.DineIn, got.Type())
	suite.Equal(7, *got.TableNumber())
	suite.Equal(order.High, got.Priority())
	suite.Equal("+6281234567", got.Contact().Phone())
	suite.True(decimal.RequireFromString("107500").Equal(got.TotalAmount()))
	suite.Equal(1, got.Version())

	lines := got.Lines()
	suite.Require().Len(lines, 2)
	suite.Equal("KITCHEN", lines[0].Department().String())
	suite.Equal("BAR", lines[1].Department().String())
	suite.Equal("no ice", lines[1].Notes())

	suite.Equal(int64(1), suite.historyCount(o.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_Conflict() {
	ctx := context.Background()
	o := suite.newDineInOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	dup := suite.newDineInOrderWithID(o.ID())
	err := suite.repository.Add(ctx, dup)

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersionAndAppendsHistory() {
	ctx := context.Background()
	o := suite.newDineInOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.ChangeStatus(order.Confirmed, "", "waiter-1", time.Now()))
	suite.Require().NoError(o.ChangeStatus(order.Preparing, "rush", "waiter-1", time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	suite.Equal(2, o.Version())

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, got.Status())
	suite.Equal(2, got.Version())
	suite.Equal(int64(3), suite.historyCount(o.ID()))

	var actors []string
	suite.Require().NoError(suite.db.Table("order_status_history").
		Where("order_id = ?", o.ID().Bytes()).Order("id").Pluck("actor", &actors).Error)
	suite.Equal([]string{"customer", "waiter-1", "waiter-1"}, actors)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflict() {
	ctx := context.Background()
	o := suite.newDineInOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.ChangeStatus(order.Confirmed, "", "waiter-1", time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.ChangeStatus(order.Cancelled, "", "waiter-2", time.Now()))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrConflict)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, got.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Missing_NotFound() {
	o := suite.newDineInOrder()
	suite.Require().NoError(o.ChangeStatus(order.Confirmed, "", "waiter-1", time.Now()))

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetForUpdate(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_InsideTransaction() {
	ctx := context.Background()
	o := suite.newDineInOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	err := suite.db.Transaction(func(tx *gorm.DB) error {
		locked, err := orderrepo.NewGormOrderRepository(tx).GetForUpdate(ctx, o.ID())
		if err != nil {
			return err
		}
		suite.Equal(o.Number(), locked.Number())
		return nil
	})
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) historyCount(id kernel.UUID) int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.StatusChangeDTO{}).
		Where("order_id = ?", id.Bytes()).Count(&count).Error)
	return count
}

func (suite *OrderRepositoryIntegrationTestSuite) newDineInOrder() *order.Order {
	return suite.newDineInOrderWithID(kernel.NewUUID())
}

func (suite *OrderRepositoryIntegrationTestSuite) newDineInOrderWithID(id kernel.UUID) *order.Order {
	steak, err := order.NewLine(kernel.NewUUID(), 1, decimal.NewFromInt(95000), kernel.MustDepartment("KITCHEN"), "")
	suite.Require().NoError(err)
	lemonade, err := order.NewLine(kernel.NewUUID(), 1, decimal.NewFromInt(12500), kernel.MustDepartment("BAR"), "no ice")
	suite.Require().NoError(err)
	contact, err := order.NewContact("+6281234567", "", "")
	suite.Require().NoError(err)

	table := 7
	o, err := order.NewOrder(id, order.NewNumber(id), order.DineIn, []order.Line{steak, lemonade}, order.Details{
		TableNumber: &table,
		Contact:     contact,
		Priority:    order.High,
	}, time.Now())
	suite.Require().NoError(err)
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
