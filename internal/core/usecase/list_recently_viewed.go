package usecase

import (
	"context"
	"fmt"

	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port/usecases_port"
)

// ListRecentlyViewedUseCase - недавно просмотренные вещи с признаком избранного.
type ListRecentlyViewedUseCase struct {
	catalog      port.ItemCatalogPort
	getFavorites usecases_port.GetUserFavoritesUseCasePort
}

func NewListRecentlyViewedUseCase(catalog port.ItemCatalogPort, getFavorites usecases_port.GetUserFavoritesUseCasePort) *ListRecentlyViewedUseCase {
	return &ListRecentlyViewedUseCase{
		catalog:      catalog,
		getFavorites: getFavorites,
	}
}

func (uc *ListRecentlyViewedUseCase) Execute(ctx context.Context, identity *domain.Identity) ([]domain.ItemWithFavorite, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListRecentlyViewed"})

	ucLogger.Info("Use case started", nil)

	if identity == nil || !identity.SignedIn {
		// Секция видна только вошедшим пользователям.
		return []domain.ItemWithFavorite{}, nil
	}

	items, err := uc.catalog.RecentlyViewed(ctx, identity.Email)
	if err != nil {
		ucLogger.Error("Catalog returned an error", err, nil)
		return nil, fmt.Errorf("failed to load recently viewed items: %w", err)
	}

	favorites, err := uc.getFavorites.Execute(ctx, identity.Email)
	if err != nil {
		ucLogger.Warn("Could not load favorites", port.Fields{"error": err.Error()})
		favorites = nil
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"items_count": len(items)})
	return domain.AttachFavorites(items, favorites), nil
}
