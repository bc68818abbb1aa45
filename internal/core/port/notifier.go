package port

import (
	"context"

	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

// NotifierPort - контракт для рассылки событий об изменении избранного.
// Представления подписываются на события вместо опроса списка.
type NotifierPort interface {
	PublishFavoritesChanged(ctx context.Context, event domain.FavoritesEvent)
}
