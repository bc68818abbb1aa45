package usecases_port

import (
	"context"

	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

// ListFeaturedItemsUseCasePort - подборка рекомендуемых вещей с признаком
// избранного для текущего пользователя.
type ListFeaturedItemsUseCasePort interface {
	Execute(ctx context.Context, identity *domain.Identity) ([]domain.ItemWithFavorite, error)
}

// ListRecentlyViewedUseCasePort - недавно просмотренные вещи.
type ListRecentlyViewedUseCasePort interface {
	Execute(ctx context.Context, identity *domain.Identity) ([]domain.ItemWithFavorite, error)
}

// FindItemsUseCasePort - поиск по каталогу с применением FilterState.
type FindItemsUseCasePort interface {
	Execute(ctx context.Context, filters domain.FilterState) ([]domain.ItemSummary, error)
}
