package usecase

import (
	"context"

	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port"
)

// GetUserFavoritesUseCase читает избранное из удаленного хранилища и держит
// локальный кэш в актуальном состоянии. Кэш используется как фолбэк, когда
// удаленное хранилище недоступно; авторитетным он не является.
type GetUserFavoritesUseCase struct {
	store port.FavoriteStorePort
	cache port.FavoritesCachePort
}

func NewGetUserFavoritesUseCase(store port.FavoriteStorePort, cache port.FavoritesCachePort) *GetUserFavoritesUseCase {
	return &GetUserFavoritesUseCase{
		store: store,
		cache: cache,
	}
}

func (uc *GetUserFavoritesUseCase) Execute(ctx context.Context, userEmail string) ([]domain.FavoriteRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetUserFavorites",
		"user_email": userEmail,
	})

	ucLogger.Info("Use case started", nil)

	records, err := uc.store.ListByUser(ctx, userEmail)
	if err != nil {
		// Удаленное хранилище недоступно - деградируем до локального снимка.
		ucLogger.Error("Remote store failed, falling back to local cache", err, nil)

		cached, cacheErr := uc.cache.Read(ctx, userEmail)
		if cacheErr != nil {
			ucLogger.Error("Local cache read failed, degrading to empty list", cacheErr, nil)
			return []domain.FavoriteRecord{}, nil
		}
		ucLogger.Info("Served favorites from local cache", port.Fields{"count": len(cached)})
		return cached, nil
	}

	// Снимок перезаписывается целиком после каждого успешного чтения,
	// иначе кэш и удаленное хранилище расходятся навсегда.
	if err := uc.cache.Write(ctx, userEmail, records); err != nil {
		ucLogger.Warn("Failed to refresh local cache", port.Fields{"error": err.Error()})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(records)})
	return records, nil
}
