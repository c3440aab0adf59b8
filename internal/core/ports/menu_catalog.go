package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
)

// MenuCatalog resolves menu items. Unknown ids are simply absent from the result.
type MenuCatalog interface {
	Lookup(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]menu.Item, error)
}
