package port

import (
	"context"

	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

// FavoriteStorePort - контракт для клиента удаленного хранилища избранного.
// Все три операции без ретраев: ошибка логируется и пробрасывается вызывающему.
type FavoriteStorePort interface {
	// Create создает запись и возвращает ее вместе с назначенным сервером id.
	Create(ctx context.Context, record domain.FavoriteRecord) (*domain.FavoriteRecord, error)

	// Delete удаляет запись по id. Идемпотентность не гарантируется:
	// повторное удаление может вернуть domain.ErrFavoriteNotFound.
	Delete(ctx context.Context, id string) error

	// ListByUser возвращает все записи пользователя. Порядок не определен.
	ListByUser(ctx context.Context, userEmail string) ([]domain.FavoriteRecord, error)
}
