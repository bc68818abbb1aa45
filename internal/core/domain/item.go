package domain

import "time"

// ItemSummary - карточка вещи из каталога. Для этого сервиса данные read-only:
// источником служит внешний каталог (пока - демо-данные).
type ItemSummary struct {
	ID             string
	Title          string
	Description    string
	Category       string
	Location       string
	Latitude       float64
	Longitude      float64
	DailyRate      float64
	Availability   bool
	InstantBooking bool
	Images         []string
	Videos         []string
	Rating         float64
	ViewCount      int
	FavoriteCount  int
	CreatedDate    time.Time
}

// ItemWithFavorite - карточка вещи вместе с признаком "в избранном"
// для текущего пользователя.
type ItemWithFavorite struct {
	Item      ItemSummary
	Favorited bool
}

// AttachFavorites помечает каждую вещь признаком избранного по списку записей.
func AttachFavorites(items []ItemSummary, favorites []FavoriteRecord) []ItemWithFavorite {
	result := make([]ItemWithFavorite, len(items))
	for i, item := range items {
		result[i] = ItemWithFavorite{
			Item:      item,
			Favorited: IsFavorited(item.ID, favorites),
		}
	}
	return result
}
