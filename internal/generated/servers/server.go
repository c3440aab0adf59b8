package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Place an order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Read an order with its status history
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Move an order to a new status
	// (POST /api/v1/orders/{orderId}/transitions)
	TransitionOrder(ctx echo.Context, orderId OrderId) error
	// List the kitchen tickets of an order
	// (GET /api/v1/orders/{orderId}/tickets)
	GetOrderTickets(ctx echo.Context, orderId OrderId) error
	// Progress a ticket item or assign the chef
	// (PATCH /api/v1/kitchen/tickets/{ticketId}/items/{itemIndex})
	UpdateTicketItem(ctx echo.Context, ticketId TicketId, itemIndex int) error
	// Create or replace a menu item
	// (PUT /api/v1/menu/items/{menuItemId})
	UpsertMenuItem(ctx echo.Context, menuItemId MenuItemId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func pathParam(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var orderId OrderId
	if err := pathParam(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

// TransitionOrder converts echo context to params.
func (w *ServerInterfaceWrapper) TransitionOrder(ctx echo.Context) error {
	var orderId OrderId
	if err := pathParam(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.TransitionOrder(ctx, orderId)
}

// GetOrderTickets converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderTickets(ctx echo.Context) error {
	var orderId OrderId
	if err := pathParam(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.GetOrderTickets(ctx, orderId)
}

// UpdateTicketItem converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateTicketItem(ctx echo.Context) error {
	var ticketId TicketId
	if err := pathParam(ctx, "ticketId", &ticketId); err != nil {
		return err
	}
	var itemIndex int
	if err := pathParam(ctx, "itemIndex", &itemIndex); err != nil {
		return err
	}
	return w.Handler.UpdateTicketItem(ctx, ticketId, itemIndex)
}

// UpsertMenuItem converts echo context to params.
func (w *ServerInterfaceWrapper) UpsertMenuItem(ctx echo.Context) error {
	var menuItemId MenuItemId
	if err := pathParam(ctx, "menuItemId", &menuItemId); err != nil {
		return err
	}
	return w.Handler.UpsertMenuItem(ctx, menuItemId)
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/transitions", wrapper.TransitionOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId/tickets", wrapper.GetOrderTickets)
	router.PATCH(baseURL+"/api/v1/kitchen/tickets/:ticketId/items/:itemIndex", wrapper.UpdateTicketItem)
	router.PUT(baseURL+"/api/v1/menu/items/:menuItemId", wrapper.UpsertMenuItem)
}
