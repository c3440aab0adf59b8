package postgres

import (
	"restaurant/internal/adapters/out/postgres/deliveryrepo"
	"restaurant/internal/adapters/out/postgres/failurerepo"
	"restaurant/internal/adapters/out/postgres/menurepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/ticketrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, parents first.
func Models() []any {
	return []any{
		&menurepo.MenuItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.StatusChangeDTO{},
		&ticketrepo.TicketDTO{},
		&ticketrepo.TicketItemDTO{},
		&deliveryrepo.DeliveryDTO{},
		&failurerepo.FailureDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
