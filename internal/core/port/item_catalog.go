package port

import (
	"context"

	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

// ItemCatalogPort - контракт источника карточек вещей. Сейчас за ним стоят
// демо-данные, по замыслу - удаленный каталог.
type ItemCatalogPort interface {
	Featured(ctx context.Context) ([]domain.ItemSummary, error)
	RecentlyViewed(ctx context.Context, userEmail string) ([]domain.ItemSummary, error)
	All(ctx context.Context) ([]domain.ItemSummary, error)
}
