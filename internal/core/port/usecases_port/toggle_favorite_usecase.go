package usecases_port

import (
	"context"

	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

// ToggleFavoriteUseCasePort - контракт контроллера переключения избранного.
// refresh - опциональный callback, вызываемый после успешной записи, чтобы
// вызывающая сторона перечитала истину из удаленного хранилища.
type ToggleFavoriteUseCasePort interface {
	Execute(ctx context.Context, itemID string, favorites []domain.FavoriteRecord, identity *domain.Identity, refresh func(ctx context.Context) error) error
}
