package rest

import "time"

// ToggleFavoriteRequest - тело запроса на переключение избранного.
type ToggleFavoriteRequest struct {
	ItemID string `json:"item_id"`
}

// FavoriteRecordResponse - запись избранного в ответе.
type FavoriteRecordResponse struct {
	ID        string     `json:"id,omitempty"`
	UserEmail string     `json:"user_email"`
	ItemID    string     `json:"item_id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// FavoritesListResponse - список избранного пользователя.
type FavoritesListResponse struct {
	Data  []FavoriteRecordResponse `json:"data"`
	Total int                      `json:"total"`
}

// ItemCardResponse - карточка вещи в ответе.
// Должна соответствовать тому, что ожидает фронтенд.
type ItemCardResponse struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	Location       string   `json:"location"`
	DailyRate      float64  `json:"daily_rate"`
	Availability   bool     `json:"availability"`
	InstantBooking bool     `json:"instant_booking"`
	Images         []string `json:"images"`
	Videos         []string `json:"videos,omitempty"`
	Rating         float64  `json:"rating"`
	ViewCount      int      `json:"view_count"`
	FavoriteCount  int      `json:"favorite_count"`
	CreatedDate    string   `json:"created_date"`
	IsFavorited    bool     `json:"is_favorited"`
}

// ItemListResponse - список карточек.
type ItemListResponse struct {
	Data  []ItemCardResponse `json:"data"`
	Total int                `json:"total"`
}

// SignInRequest - тело запроса на вход по email и паролю.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse - результат попытки входа.
type SignInResponse struct {
	Status     string `json:"status"`
	SessionID  string `json:"session_id,omitempty"`
	RedirectTo string `json:"redirect_to,omitempty"`
	Message    string `json:"message,omitempty"`
}

// SignInViewResponse - состояние страницы входа, вычисленное из query-параметров.
type SignInViewResponse struct {
	ErrorBanner      string `json:"error_banner,omitempty"`
	SuccessBanner    bool   `json:"success_banner"`
	SuccessExpiresAt string `json:"success_expires_at,omitempty"`
	CanonicalURL     string `json:"canonical_url"`
}

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}
