package domain

import (
	"time"
)

// FavoriteRecord представляет собой одну запись о добавлении вещи в избранное.
// ID назначается удаленным хранилищем при создании, поэтому может отсутствовать.
type FavoriteRecord struct {
	ID        string     `json:"id,omitempty"`
	UserEmail string     `json:"user_email"`
	ItemID    string     `json:"item_id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// IsFavorited проверяет, есть ли в списке запись с данным item_id.
// Порядок записей в списке не важен.
func IsFavorited(itemID string, favorites []FavoriteRecord) bool {
	for _, fav := range favorites {
		if fav.ItemID == itemID {
			return true
		}
	}
	return false
}

// FindFavoriteByItemID возвращает первую запись с данным item_id или nil.
// Предполагается, что на пару (user_email, item_id) существует не больше
// одной записи, но клиентская сторона это не гарантирует.
func FindFavoriteByItemID(itemID string, favorites []FavoriteRecord) *FavoriteRecord {
	for i := range favorites {
		if favorites[i].ItemID == itemID {
			return &favorites[i]
		}
	}
	return nil
}

// FavoritesEvent - событие изменения избранного, рассылаемое подписчикам.
type FavoritesEvent struct {
	Type      string `json:"type"` // "added" или "removed"
	UserEmail string `json:"user_email"`
	ItemID    string `json:"item_id"`
}

const (
	FavoriteAdded   = "added"
	FavoriteRemoved = "removed"
)
