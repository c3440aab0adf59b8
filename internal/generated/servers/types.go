// Package servers holds the HTTP contract of the restaurant API: wire types,
// the ServerInterface implemented by adapters/in/http and the embedded
// OpenAPI document the requests are validated against.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error kinds.
const (
	ErrorKindNotFound          ErrorKind = "NotFound"
	ErrorKindInvalidTransition ErrorKind = "InvalidTransition"
	ErrorKindConflict          ErrorKind = "ConflictError"
	ErrorKindValidation        ErrorKind = "ValidationError"
	ErrorKindForbidden         ErrorKind = "Forbidden"
	ErrorKindInternal          ErrorKind = "InternalError"
)

type ErrorKind string

type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

type Contact struct {
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	PushToken *string `json:"pushToken,omitempty"`
}

type NewOrderLine struct {
	MenuItemId openapi_types.UUID `json:"menuItemId"`
	Notes      *string            `json:"notes,omitempty"`
	Quantity   int                `json:"quantity"`
}

type NewOrder struct {
	Contact     *Contact            `json:"contact,omitempty"`
	CustomerId  *openapi_types.UUID `json:"customerId,omitempty"`
	Id          *openapi_types.UUID `json:"id,omitempty"`
	Lines       []NewOrderLine      `json:"lines"`
	Notes       *string             `json:"notes,omitempty"`
	Priority    *string             `json:"priority,omitempty"`
	TableNumber *int                `json:"tableNumber,omitempty"`
	Type        string              `json:"type"`
}

type Transition struct {
	Notes  *string `json:"notes,omitempty"`
	Status string  `json:"status"`
}

type OrderLine struct {
	Department string             `json:"department"`
	Index      int                `json:"index"`
	MenuItemId openapi_types.UUID `json:"menuItemId"`
	Notes      *string            `json:"notes,omitempty"`
	Quantity   int                `json:"quantity"`
	UnitPrice  string             `json:"unitPrice"`
}

type StatusChange struct {
	Actor string    `json:"actor"`
	At    time.Time `json:"at"`
	From  *string   `json:"from,omitempty"`
	Notes *string   `json:"notes,omitempty"`
	To    string    `json:"to"`
}

type OrderSnapshot struct {
	CreatedAt   time.Time           `json:"createdAt"`
	CustomerId  *openapi_types.UUID `json:"customerId,omitempty"`
	History     *[]StatusChange     `json:"history,omitempty"`
	Id          openapi_types.UUID  `json:"id"`
	Lines       []OrderLine         `json:"lines"`
	Notes       *string             `json:"notes,omitempty"`
	Number      string              `json:"number"`
	Priority    string              `json:"priority"`
	Status      string              `json:"status"`
	TableNumber *int                `json:"tableNumber,omitempty"`
	TotalAmount string              `json:"totalAmount"`
	Type        string              `json:"type"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Version     int                 `json:"version"`
}

type OrderResponse struct {
	Order OrderSnapshot `json:"order"`
}

type TicketItem struct {
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
	Index       int                `json:"index"`
	MenuItemId  openapi_types.UUID `json:"menuItemId"`
	Notes       *string            `json:"notes,omitempty"`
	Quantity    int                `json:"quantity"`
	Status      string             `json:"status"`
}

type Ticket struct {
	AssignedChef     *string            `json:"assignedChef,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	Department       string             `json:"department"`
	EstimatedSeconds int                `json:"estimatedSeconds"`
	Id               openapi_types.UUID `json:"id"`
	Items            []TicketItem       `json:"items"`
	Number           string             `json:"number"`
	Priority         string             `json:"priority"`
	Status           string             `json:"status"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

type TicketItemUpdate struct {
	Chef   *string `json:"chef,omitempty"`
	Status *string `json:"status,omitempty"`
}

type MenuItemInput struct {
	Available   *bool  `json:"available,omitempty"`
	Department  string `json:"department"`
	Name        string `json:"name"`
	PrepSeconds int    `json:"prepSeconds"`
	Price       string `json:"price"`
}

type MenuItem struct {
	Available   bool               `json:"available"`
	Department  string             `json:"department"`
	Id          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	PrepSeconds int                `json:"prepSeconds"`
	Price       string             `json:"price"`
}

// OrderId is the orderId path parameter.
type OrderId = openapi_types.UUID

// TicketId is the ticketId path parameter.
type TicketId = openapi_types.UUID

// MenuItemId is the menuItemId path parameter.
type MenuItemId = openapi_types.UUID

type CreateOrderJSONRequestBody = NewOrder

type TransitionOrderJSONRequestBody = Transition

type UpdateTicketItemJSONRequestBody = TicketItemUpdate

type UpsertMenuItemJSONRequestBody = MenuItemInput
