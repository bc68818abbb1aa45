package usecase

import (
	"context"
	"fmt"

	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port/usecases_port"
)

// ListFeaturedItemsUseCase собирает подборку рекомендуемых вещей и помечает
// каждую признаком избранного для текущего пользователя.
type ListFeaturedItemsUseCase struct {
	catalog      port.ItemCatalogPort
	getFavorites usecases_port.GetUserFavoritesUseCasePort
}

func NewListFeaturedItemsUseCase(catalog port.ItemCatalogPort, getFavorites usecases_port.GetUserFavoritesUseCasePort) *ListFeaturedItemsUseCase {
	return &ListFeaturedItemsUseCase{
		catalog:      catalog,
		getFavorites: getFavorites,
	}
}

func (uc *ListFeaturedItemsUseCase) Execute(ctx context.Context, identity *domain.Identity) ([]domain.ItemWithFavorite, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListFeaturedItems"})

	ucLogger.Info("Use case started", nil)

	items, err := uc.catalog.Featured(ctx)
	if err != nil {
		ucLogger.Error("Catalog returned an error", err, nil)
		return nil, fmt.Errorf("failed to load featured items: %w", err)
	}

	favorites := uc.favoritesFor(ctx, identity)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"items_count":     len(items),
		"favorites_count": len(favorites),
	})
	return domain.AttachFavorites(items, favorites), nil
}

// favoritesFor возвращает избранное пользователя или пустой список:
// подборка должна показываться и тогда, когда избранное недоступно.
func (uc *ListFeaturedItemsUseCase) favoritesFor(ctx context.Context, identity *domain.Identity) []domain.FavoriteRecord {
	if identity == nil || !identity.SignedIn {
		return nil
	}
	favorites, err := uc.getFavorites.Execute(ctx, identity.Email)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Could not load favorites", port.Fields{"error": err.Error()})
		return nil
	}
	return favorites
}
