package catalog

import (
	"context"
	"time"

	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

// MockCatalog - демо-каталог вместо удаленного сервиса каталога.
// Данные совпадают с подборкой на главной странице.
type MockCatalog struct {
	items []domain.ItemSummary
}

func NewMockCatalog() *MockCatalog {
	return &MockCatalog{items: demoItems()}
}

// Featured возвращает подборку рекомендуемых вещей.
func (c *MockCatalog) Featured(ctx context.Context) ([]domain.ItemSummary, error) {
	return cloneItems(c.items), nil
}

// RecentlyViewed возвращает недавно просмотренные вещи. Истории просмотров
// пока нет, показываем первую вещь подборки.
func (c *MockCatalog) RecentlyViewed(ctx context.Context, userEmail string) ([]domain.ItemSummary, error) {
	return cloneItems(c.items[:1]), nil
}

// All возвращает весь каталог (для поиска с фильтрами).
func (c *MockCatalog) All(ctx context.Context) ([]domain.ItemSummary, error) {
	return cloneItems(c.items), nil
}

func cloneItems(items []domain.ItemSummary) []domain.ItemSummary {
	out := make([]domain.ItemSummary, len(items))
	copy(out, items)
	return out
}

func demoItems() []domain.ItemSummary {
	return []domain.ItemSummary{
		{
			ID:             "1",
			Title:          "Pressure washer",
			Category:       "tools",
			Location:       "Pozuelo",
			Latitude:       40.4359,
			Longitude:      -3.8143,
			DailyRate:      10,
			Availability:   true,
			InstantBooking: true,
			Images:         []string{"https://images.unsplash.com/photo-1628177142898-93e36b4afd25?w=400&h=500&fit=crop"},
			Rating:         4.8,
			ViewCount:      120,
			FavoriteCount:  12,
			CreatedDate:    time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             "2",
			Title:          "Drone",
			Category:       "electronics",
			Location:       "Paris",
			Latitude:       48.8566,
			Longitude:      2.3522,
			DailyRate:      25,
			Availability:   true,
			InstantBooking: true,
			Images:         []string{"https://images.unsplash.com/photo-1473968512647-3e447244af8f?w=400&h=500&fit=crop"},
			Rating:         4.5,
			ViewCount:      340,
			FavoriteCount:  41,
			CreatedDate:    time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             "3",
			Title:          "Skis",
			Category:       "sports",
			Location:       "Madrid",
			Latitude:       40.4168,
			Longitude:      -3.7038,
			DailyRate:      15,
			Availability:   true,
			InstantBooking: true,
			Images:         []string{"https://images.unsplash.com/photo-1551524164-6cf77f5e7f8b?w=400&h=500&fit=crop"},
			Rating:         4.2,
			ViewCount:      95,
			FavoriteCount:  7,
			CreatedDate:    time.Date(2025, time.January, 21, 0, 0, 0, 0, time.UTC),
		},
	}
}
