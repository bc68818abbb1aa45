package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/mmcloughlin/geohash"
	"golang.org/x/text/cases"
)

// Возможные значения сортировки. Должны совпадать с тем, что шлет фронтенд.
const (
	SortRelevance = "relevance"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortRating    = "rating"
	SortNewest    = "newest"
	SortPopular   = "popular"
)

// Значения фильтра доступности.
const (
	AvailabilityAll         = "all"
	AvailabilityAvailable   = "available"
	AvailabilityUnavailable = "unavailable"
)

// DistanceFilter - фильтр "не дальше чем N км от точки".
type DistanceFilter struct {
	Enabled       bool    `json:"enabled"`
	MaxDistanceKm float64 `json:"max_distance"`
	CenterLat     float64 `json:"center_lat"`
	CenterLon     float64 `json:"center_lon"`
}

// DateFilter - фильтр по периоду аренды.
type DateFilter struct {
	Enabled   bool      `json:"enabled"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// RatingFilter - фильтр по минимальному рейтингу.
type RatingFilter struct {
	Enabled   bool    `json:"enabled"`
	MinRating float64 `json:"min_rating"`
}

// FilterState - набор независимых полей фильтрации и сортировки с главной
// страницы. Каждое поле опционально, никакие инварианты их не связывают.
type FilterState struct {
	SearchQuery   string         `json:"search_query"`
	LocationQuery string         `json:"location_query"`
	Category      string         `json:"category"` // "all" или одна из категорий каталога
	PriceMin      *float64       `json:"price_min,omitempty"`
	PriceMax      *float64       `json:"price_max,omitempty"`
	Availability  string         `json:"availability"`
	Distance      DistanceFilter `json:"distance"`
	Date          DateFilter     `json:"date"`
	Rating        RatingFilter   `json:"rating"`
	SortBy        string         `json:"sort_by"`
	View          string         `json:"view"` // "list" или "map"; на фильтрацию не влияет
	LocationError string         `json:"location_error,omitempty"`
}

var foldCaser = cases.Fold()

// ApplyFilters - чистая функция: отбирает и сортирует вещи по FilterState.
// Сортировка стабильная, при равенстве ключа порядок определяется id вещи.
// SortRelevance сохраняет исходный порядок каталога.
//
// У ItemSummary нет календаря занятости, поэтому включенный фильтр по датам
// пропускает только вещи с Availability == true.
func ApplyFilters(items []ItemSummary, f FilterState) []ItemSummary {
	result := make([]ItemSummary, 0, len(items))
	for _, item := range items {
		if matchesFilters(item, f) {
			result = append(result, item)
		}
	}
	sortItems(result, f.SortBy)
	return result
}

func matchesFilters(item ItemSummary, f FilterState) bool {
	if q := strings.TrimSpace(f.SearchQuery); q != "" {
		haystack := foldCaser.String(item.Title + " " + item.Description + " " + item.Category)
		if !strings.Contains(haystack, foldCaser.String(q)) {
			return false
		}
	}

	if q := strings.TrimSpace(f.LocationQuery); q != "" {
		if !strings.Contains(foldCaser.String(item.Location), foldCaser.String(q)) {
			return false
		}
	}

	if f.Category != "" && f.Category != "all" && item.Category != f.Category {
		return false
	}

	if f.PriceMin != nil && item.DailyRate < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && item.DailyRate > *f.PriceMax {
		return false
	}

	switch f.Availability {
	case AvailabilityAvailable:
		if !item.Availability {
			return false
		}
	case AvailabilityUnavailable:
		if item.Availability {
			return false
		}
	}

	if f.Distance.Enabled && !withinDistance(item, f.Distance) {
		return false
	}

	if f.Date.Enabled && !item.Availability {
		return false
	}

	if f.Rating.Enabled && item.Rating < f.Rating.MinRating {
		return false
	}

	return true
}

// withinDistance аппроксимирует "не дальше N км" через geohash: берем точность,
// при которой размер ячейки не меньше радиуса, и пропускаем вещи, чья ячейка
// совпадает с ячейкой центра или с одной из восьми соседних.
func withinDistance(item ItemSummary, d DistanceFilter) bool {
	if item.Latitude == 0 && item.Longitude == 0 {
		// Нет координат - вещь не участвует в гео-фильтрации.
		return false
	}

	precision := precisionForRadius(d.MaxDistanceKm)
	center := geohash.Encode(d.CenterLat, d.CenterLon)[:precision]
	cell := geohash.Encode(item.Latitude, item.Longitude)[:precision]

	if cell == center {
		return true
	}
	for _, neighbor := range geohash.Neighbors(center) {
		if cell == neighbor {
			return true
		}
	}
	return false
}

// precisionForRadius подбирает длину geohash-префикса по радиусу в км.
// Размеры ячеек: 6 знаков ~1.2км, 5 ~4.9км, 4 ~39км, 3 ~156км.
func precisionForRadius(radiusKm float64) uint {
	switch {
	case radiusKm <= 1.2:
		return 6
	case radiusKm <= 4.9:
		return 5
	case radiusKm <= 39:
		return 4
	case radiusKm <= 156:
		return 3
	default:
		return 2
	}
}

func sortItems(items []ItemSummary, sortBy string) {
	var less func(a, b ItemSummary) bool

	switch sortBy {
	case SortPriceLow:
		less = func(a, b ItemSummary) bool { return a.DailyRate < b.DailyRate }
	case SortPriceHigh:
		less = func(a, b ItemSummary) bool { return a.DailyRate > b.DailyRate }
	case SortRating:
		less = func(a, b ItemSummary) bool { return a.Rating > b.Rating }
	case SortNewest:
		less = func(a, b ItemSummary) bool { return a.CreatedDate.After(b.CreatedDate) }
	case SortPopular:
		less = func(a, b ItemSummary) bool { return a.ViewCount > b.ViewCount }
	default:
		// SortRelevance и неизвестные ключи: исходный порядок каталога.
		return
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.ID < b.ID
	})
}
