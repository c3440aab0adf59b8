package menurepo

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMenuCatalog implements ports.MenuCatalog.
type GormMenuCatalog struct {
	db *gorm.DB
}

func NewGormMenuCatalog(db *gorm.DB) *GormMenuCatalog {
	return &GormMenuCatalog{db: db}
}

// Lookup returns the known items among ids. Duplicated ids are looked up once.
func (c *GormMenuCatalog) Lookup(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]menu.Item, error) {
	result := make(map[kernel.UUID]menu.Item, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[id.Bytes()]; ok {
			continue
		}
		seen[id.Bytes()] = struct{}{}
		raw = append(raw, id.Bytes())
	}

	var dtos []MenuItemDTO
	if err := c.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result[item.ID()] = item
	}
	return result, nil
}

// Upsert stores catalog entries, replacing existing rows with the same id.
func (c *GormMenuCatalog) Upsert(ctx context.Context, items ...menu.Item) error {
	if len(items) == 0 {
		return nil
	}
	dtos := make([]MenuItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, fromDomain(item))
	}
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&dtos).Error
}
