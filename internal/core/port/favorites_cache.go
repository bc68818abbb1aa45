package port

import (
	"context"

	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

// FavoritesCachePort - контракт локального кэша избранного.
// Кэш best-effort: он никогда не авторитетен и может расходиться с удаленным
// хранилищем между обновлениями.
type FavoritesCachePort interface {
	// Read возвращает снимок избранного по ключу favorites_<email>.
	// При первом обращении может установить демо-запись.
	Read(ctx context.Context, userEmail string) ([]domain.FavoriteRecord, error)

	// Write перезаписывает снимок целиком (без слияния).
	Write(ctx context.Context, userEmail string, records []domain.FavoriteRecord) error
}
