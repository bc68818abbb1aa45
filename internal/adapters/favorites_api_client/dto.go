package favorites_api_client

import (
	"time"

	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

// DTO для запроса на создание записи
type createFavoriteRequest struct {
	UserEmail string `json:"user_email"`
	ItemID    string `json:"item_id"`
}

// DTO для ответа хранилища. Должна в точности совпадать
// с тем, что отдает /api/favorites.
type favoriteRecordResponse struct {
	ID        string     `json:"id"`
	UserEmail string     `json:"user_email"`
	ItemID    string     `json:"item_id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (dto favoriteRecordResponse) toDomain() domain.FavoriteRecord {
	return domain.FavoriteRecord{
		ID:        dto.ID,
		UserEmail: dto.UserEmail,
		ItemID:    dto.ItemID,
		CreatedAt: dto.CreatedAt,
	}
}
