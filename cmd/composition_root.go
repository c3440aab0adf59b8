package cmd

import (
	"context"
	"log/slog"
	"time"

	httpin "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/core/application/lifecycle"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/notification"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	catalog    *menurepo.GormMenuCatalog
	senders    map[notification.Channel]ports.MessageSender
	logger     *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	senders map[notification.Channel]ports.MessageSender,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    menurepo.NewGormMenuCatalog(gormDB),
		senders:    senders,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) kitchenUoWFactory() commands.KitchenUoWFactory {
	return FuncKitchenUoWFactory(func() commands.KitchenUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) failureUoWFactory() commands.FailureUoWFactory {
	return FuncFailureUoWFactory(func() commands.FailureUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.catalog)
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDispatchKitchenTicketsCommandHandler() commands.DispatchKitchenTicketsCommandHandler {
	return commands.NewDispatchKitchenTicketsCommandHandler(c.kitchenUoWFactory(), c.catalog, c.configs.KitchenConcurrency)
}

func (c *CompositionRoot) CreateSendOrderNotificationsCommandHandler() commands.SendOrderNotificationsCommandHandler {
	return commands.NewSendOrderNotificationsCommandHandler(
		c.notificationUoWFactory(),
		services.NewNotificationComposer(c.configs.Currency, c.configs.ChannelPlan()),
		notification.NewRenderer(c.configs.Locale, notification.DefaultTemplates()...),
		c.senders,
	)
}

func (c *CompositionRoot) CreateRecordDispatchFailureCommandHandler() commands.RecordDispatchFailureCommandHandler {
	return commands.NewRecordDispatchFailureCommandHandler(c.failureUoWFactory())
}

func (c *CompositionRoot) CreateRetryFailedDispatchesCommandHandler() commands.RetryFailedDispatchesCommandHandler {
	return commands.NewRetryFailedDispatchesCommandHandler(
		c.failureUoWFactory(),
		c.CreateDispatchKitchenTicketsCommandHandler(),
		c.CreateSendOrderNotificationsCommandHandler(),
		c.configs.DispatchTimeout,
	)
}

func (c *CompositionRoot) CreateUpdateTicketItemStatusCommandHandler() commands.UpdateTicketItemStatusCommandHandler {
	return commands.NewUpdateTicketItemStatusCommandHandler(c.kitchenUoWFactory())
}

func (c *CompositionRoot) CreateUpsertMenuItemCommandHandler() commands.UpsertMenuItemCommandHandler {
	return commands.NewUpsertMenuItemCommandHandler(c.catalog)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTicketsQueryHandler() queries.GetOrderTicketsQueryHandler {
	return queries.NewGetOrderTicketsQueryHandler(c.gormDB)
}

// CreateOrchestrator builds the single orchestrator of the process. Wait on it
// before closing the database so that running side effects can finish.
func (c *CompositionRoot) CreateOrchestrator() (*lifecycle.Orchestrator, error) {
	return lifecycle.NewOrchestrator(
		c.CreateTransitionOrderStatusCommandHandler(),
		c.CreateDispatchKitchenTicketsCommandHandler(),
		c.CreateSendOrderNotificationsCommandHandler(),
		c.CreateRecordDispatchFailureCommandHandler(),
		lifecycle.WithDispatchTimeout(c.configs.DispatchTimeout),
		lifecycle.WithLogger(c.logger),
	)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(c.CreateRetryFailedDispatchesCommandHandler(), jobs.RetryConfig{
		Schedule:    c.configs.RetrySchedule,
		MaxAttempts: c.configs.RetryMaxAttempts,
		BatchSize:   c.configs.RetryBatchSize,
	}, c.logger)
}

func (c *CompositionRoot) CreateRouter(orchestrator *lifecycle.Orchestrator) (*echo.Echo, error) {
	server := httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		orchestrator,
		c.CreateUpdateTicketItemStatusCommandHandler(),
		c.CreateUpsertMenuItemCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrderTicketsQueryHandler(),
	)
	return httpin.NewRouter(server, c.pingDatabase, c.logger)
}

func (c *CompositionRoot) pingDatabase() error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncKitchenUoWFactory func() commands.KitchenUoW

func (f FuncKitchenUoWFactory) Create() commands.KitchenUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncFailureUoWFactory func() commands.FailureUoW

func (f FuncFailureUoWFactory) Create() commands.FailureUoW {
	return f()
}
