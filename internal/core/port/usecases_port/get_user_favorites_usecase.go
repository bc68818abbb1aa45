package usecases_port

import (
	"context"

	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

// GetUserFavoritesUseCasePort - контракт получения избранного пользователя
// (удаленное хранилище с фолбэком на локальный кэш).
type GetUserFavoritesUseCasePort interface {
	Execute(ctx context.Context, userEmail string) ([]domain.FavoriteRecord, error)
}
