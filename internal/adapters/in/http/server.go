package http

import (
	"context"
	"net/http"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/generated/servers"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Use case ports of the HTTP adapter. The command and query handlers and the
// lifecycle orchestrator satisfy them.
type (
	OrderPlacer interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	OrderTransitioner interface {
		Transition(ctx context.Context, cmd commands.TransitionOrderStatusCommand) (*order.Order, error)
	}

	TicketItemUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateTicketItemStatusCommand) (*kitchen.Ticket, error)
	}

	MenuItemUpserter interface {
		Handle(ctx context.Context, cmd commands.UpsertMenuItemCommand) (menu.Item, error)
	}

	OrderReader interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.GetOrderQueryResponse, error)
	}

	OrderTicketsReader interface {
		Handle(ctx context.Context, query queries.GetOrderTicketsQuery) ([]queries.GetOrderTicketsQueryResponse, error)
	}
)

// Server implements servers.ServerInterface on top of the application use cases.
type Server struct {
	// Command side
	placeOrder       OrderPlacer
	transitionOrder  OrderTransitioner
	updateTicketItem TicketItemUpdater
	upsertMenuItem   MenuItemUpserter

	// Query side
	getOrder        OrderReader
	getOrderTickets OrderTicketsReader
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(
	placeOrder OrderPlacer,
	transitionOrder OrderTransitioner,
	updateTicketItem TicketItemUpdater,
	upsertMenuItem MenuItemUpserter,
	getOrder OrderReader,
	getOrderTickets OrderTicketsReader,
) *Server {
	return &Server{
		placeOrder:       placeOrder,
		transitionOrder:  transitionOrder,
		updateTicketItem: updateTicketItem,
		upsertMenuItem:   upsertMenuItem,
		getOrder:         getOrder,
		getOrderTickets:  getOrderTickets,
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := createOrderCommand(body)
	if err != nil {
		return err
	}

	placed, err := s.placeOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.OrderResponse{Order: snapshotFromOrder(placed)})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	view, err := s.getOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.OrderResponse{Order: snapshotFromView(view)})
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) TransitionOrder(ctx echo.Context, orderID servers.OrderId) error {
	actor, err := authorize(ctx, PermissionTransitionOrders)
	if err != nil {
		return err
	}

	var body servers.TransitionOrderJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	id, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return err
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return err
	}
	cmd, err := commands.NewTransitionOrderStatusCommand(id, status, deref(body.Notes), actor.ID)
	if err != nil {
		return err
	}

	updated, err := s.transitionOrder.Transition(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.OrderResponse{Order: snapshotFromOrder(updated)})
}

// GetOrderTickets handles GET /api/v1/orders/{orderId}/tickets.
func (s *Server) GetOrderTickets(ctx echo.Context, orderID servers.OrderId) error {
	id, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderTicketsQuery(id)
	if err != nil {
		return err
	}

	views, err := s.getOrderTickets.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]servers.Ticket, len(views))
	for i, view := range views {
		response[i] = ticketFromView(view)
	}
	return ctx.JSON(http.StatusOK, response)
}

// UpdateTicketItem handles PATCH /api/v1/kitchen/tickets/{ticketId}/items/{itemIndex}.
func (s *Server) UpdateTicketItem(ctx echo.Context, ticketID servers.TicketId, itemIndex int) error {
	if _, err := authorize(ctx, PermissionUpdateTickets); err != nil {
		return err
	}

	var body servers.UpdateTicketItemJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	id, err := toKernelUUID("ticketId", ticketID)
	if err != nil {
		return err
	}
	status := kitchen.Unknown
	if body.Status != nil {
		if status, err = kitchen.ParseStatus(*body.Status); err != nil {
			return err
		}
	}
	cmd, err := commands.NewUpdateTicketItemStatusCommand(id, itemIndex, status, body.Chef)
	if err != nil {
		return err
	}

	ticket, err := s.updateTicketItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ticketFromDomain(ticket))
}

// UpsertMenuItem handles PUT /api/v1/menu/items/{menuItemId}.
func (s *Server) UpsertMenuItem(ctx echo.Context, menuItemID servers.MenuItemId) error {
	if _, err := authorize(ctx, PermissionWriteMenu); err != nil {
		return err
	}

	var body servers.UpsertMenuItemJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	id, err := toKernelUUID("menuItemId", menuItemID)
	if err != nil {
		return err
	}
	price, err := decimal.NewFromString(body.Price)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("price", err)
	}
	available := true
	if body.Available != nil {
		available = *body.Available
	}

	cmd, err := commands.NewUpsertMenuItemCommand(
		id,
		body.Name,
		body.Department,
		price,
		time.Duration(body.PrepSeconds)*time.Second,
		available,
	)
	if err != nil {
		return err
	}

	item, err := s.upsertMenuItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.MenuItem{
		Id:          item.ID().Bytes(),
		Name:        item.Name(),
		Department:  item.Department().String(),
		Price:       item.Price().StringFixed(2),
		PrepSeconds: int(item.PrepTime() / time.Second),
		Available:   item.IsAvailable(),
	})
}

func createOrderCommand(body servers.NewOrder) (commands.CreateOrderCommand, error) {
	orderType, err := order.ParseType(body.Type)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	priority, err := order.ParsePriority(deref(body.Priority))
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	id := kernel.NewUUID()
	if body.Id != nil {
		if id, err = toKernelUUID("id", *body.Id); err != nil {
			return commands.CreateOrderCommand{}, err
		}
	}

	details := order.Details{
		TableNumber: body.TableNumber,
		Priority:    priority,
		Notes:       deref(body.Notes),
	}
	if body.CustomerId != nil {
		customerID, err := toKernelUUID("customerId", *body.CustomerId)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		details.CustomerID = &customerID
	}
	if body.Contact != nil {
		contact, err := order.NewContact(deref(body.Contact.Phone), deref(body.Contact.Email), deref(body.Contact.PushToken))
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		details.Contact = contact
	}

	lines := make([]commands.CreateOrderLine, len(body.Lines))
	for i, line := range body.Lines {
		menuItemID, err := toKernelUUID("menuItemId", line.MenuItemId)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		lines[i] = commands.CreateOrderLine{
			MenuItemID: menuItemID,
			Quantity:   line.Quantity,
			Notes:      deref(line.Notes),
		}
	}

	return commands.NewCreateOrderCommand(id, orderType, lines, details)
}
