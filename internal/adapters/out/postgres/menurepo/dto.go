// Package menurepo reads the menu catalog from the menu_items table.
package menurepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MenuItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"size:200;not null"`
	Department  string          `gorm:"size:32;not null;index"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PrepSeconds int64           `gorm:"not null;default:0"`
	Available   bool            `gorm:"not null;default:true"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func fromDomain(item menu.Item) MenuItemDTO {
	return MenuItemDTO{
		ID:          item.ID().Bytes(),
		Name:        item.Name(),
		Department:  item.Department().String(),
		Price:       item.Price(),
		PrepSeconds: int64(item.PrepTime() / time.Second),
		Available:   item.IsAvailable(),
	}
}

func toDomain(dto MenuItemDTO) (menu.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return menu.Item{}, err
	}
	department, err := kernel.NewDepartment(dto.Department)
	if err != nil {
		return menu.Item{}, err
	}
	return menu.NewItem(id, dto.Name, department, dto.Price, time.Duration(dto.PrepSeconds)*time.Second, dto.Available)
}
