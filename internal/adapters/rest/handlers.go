package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/skyegle0602/Rentany-frontend/internal/adapters/notifier"
	"github.com/skyegle0602/Rentany-frontend/internal/constants"
	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port/usecases_port"
)

// MarketplaceHandler - обработчики вещей и избранного.
type MarketplaceHandler struct {
	toggleUC       usecases_port.ToggleFavoriteUseCasePort
	getFavoritesUC usecases_port.GetUserFavoritesUseCasePort
	featuredUC     usecases_port.ListFeaturedItemsUseCasePort
	recentUC       usecases_port.ListRecentlyViewedUseCasePort
	findItemsUC    usecases_port.FindItemsUseCasePort
	sseNotifier    *notifier.SSENotifier
}

// NewMarketplaceHandler - конструктор.
func NewMarketplaceHandler(
	toggleUC usecases_port.ToggleFavoriteUseCasePort,
	getFavoritesUC usecases_port.GetUserFavoritesUseCasePort,
	featuredUC usecases_port.ListFeaturedItemsUseCasePort,
	recentUC usecases_port.ListRecentlyViewedUseCasePort,
	findItemsUC usecases_port.FindItemsUseCasePort,
	sseNotifier *notifier.SSENotifier) *MarketplaceHandler {
	return &MarketplaceHandler{
		toggleUC:       toggleUC,
		getFavoritesUC: getFavoritesUC,
		featuredUC:     featuredUC,
		recentUC:       recentUC,
		findItemsUC:    findItemsUC,
		sseNotifier:    sseNotifier,
	}
}

// GetUserFavorites обрабатывает GET /api/v1/favorites
func (h *MarketplaceHandler) GetUserFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUserFavorites"})

	identity := contextkeys.IdentityFromContext(r.Context())
	if identity == nil {
		logger.Error("Missing identity in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Missing identity in context")
		return
	}

	records, err := h.getFavoritesUC.Execute(r.Context(), identity.Email)
	if err != nil {
		logger.Error("Get user favorites use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve favorites")
		return
	}

	response := FavoritesListResponse{
		Data:  make([]FavoriteRecordResponse, len(records)),
		Total: len(records),
	}
	for i, record := range records {
		response.Data[i] = FavoriteRecordResponse{
			ID:        record.ID,
			UserEmail: record.UserEmail,
			ItemID:    record.ItemID,
			CreatedAt: record.CreatedAt,
		}
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// ToggleFavorite обрабатывает POST /api/v1/favorites/toggle
func (h *MarketplaceHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ToggleFavorite"})

	identity := contextkeys.IdentityFromContext(r.Context())

	var reqDTO ToggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body for toggle", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if reqDTO.ItemID == "" {
		WriteJSONError(w, http.StatusBadRequest, "item_id is required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"item_id": reqDTO.ItemID})
	handlerLogger.Info("Processing request to toggle favorite", nil)

	// Текущий список избранного - вход контроллера: по нему определяется,
	// добавляем мы запись или удаляем.
	var favorites []domain.FavoriteRecord
	if identity != nil {
		favorites, _ = h.getFavoritesUC.Execute(r.Context(), identity.Email)
	}

	// После успешного переключения перечитываем список - use case сам решает,
	// когда дергать refresh.
	err := h.toggleUC.Execute(r.Context(), reqDTO.ItemID, favorites, identity, func(ctx context.Context) error {
		_, refreshErr := h.getFavoritesUC.Execute(ctx, identity.Email)
		return refreshErr
	})
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		http.Redirect(w, r, constants.RouteSignIn, http.StatusSeeOther)
		return
	case errors.Is(err, domain.ErrToggleInProgress):
		WriteJSONError(w, http.StatusConflict, "Favorite toggle already in progress")
		return
	case err != nil:
		handlerLogger.Error("Toggle favorite use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to toggle favorite")
		return
	}

	handlerLogger.Info("Successfully toggled favorite", nil)
	w.WriteHeader(http.StatusAccepted)
}

// GetFeaturedItems обрабатывает GET /api/v1/items/featured
func (h *MarketplaceHandler) GetFeaturedItems(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFeaturedItems"})

	identity := contextkeys.IdentityFromContext(r.Context())
	items, err := h.featuredUC.Execute(r.Context(), identity)
	if err != nil {
		logger.Error("List featured items use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to load featured items")
		return
	}

	RespondWithJSON(w, http.StatusOK, itemsWithFavoritesToResponse(items))
}

// GetRecentlyViewed обрабатывает GET /api/v1/items/recent
func (h *MarketplaceHandler) GetRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetRecentlyViewed"})

	identity := contextkeys.IdentityFromContext(r.Context())
	items, err := h.recentUC.Execute(r.Context(), identity)
	if err != nil {
		logger.Error("List recently viewed use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to load recently viewed items")
		return
	}

	RespondWithJSON(w, http.StatusOK, itemsWithFavoritesToResponse(items))
}

// SearchItems обрабатывает POST /api/v1/items/search
func (h *MarketplaceHandler) SearchItems(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SearchItems"})

	var filters domain.FilterState
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
		logger.Warn("Failed to decode filter state", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid filter state")
		return
	}

	items, err := h.findItemsUC.Execute(r.Context(), filters)
	if err != nil {
		logger.Error("Find items use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to search items")
		return
	}

	response := ItemListResponse{
		Data:  make([]ItemCardResponse, len(items)),
		Total: len(items),
	}
	for i, item := range items {
		response.Data[i] = itemToResponse(item, false)
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// SubscribeFavorites обрабатывает GET /api/v1/favorites/subscribe (SSE).
func (h *MarketplaceHandler) SubscribeFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubscribeFavorites"})

	identity := contextkeys.IdentityFromContext(r.Context())
	if identity == nil {
		WriteJSONError(w, http.StatusUnauthorized, "Missing identity in context")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteJSONError(w, http.StatusInternalServerError, "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.sseNotifier.AddClient(identity.Email)
	defer h.sseNotifier.RemoveClient(identity.Email, ch)

	logger.Info("SSE subscription opened", port.Fields{"user_email": identity.Email})

	for {
		select {
		case <-r.Context().Done():
			logger.Info("SSE subscription closed", nil)
			return
		case message := <-ch:
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func itemsWithFavoritesToResponse(items []domain.ItemWithFavorite) ItemListResponse {
	response := ItemListResponse{
		Data:  make([]ItemCardResponse, len(items)),
		Total: len(items),
	}
	for i, item := range items {
		response.Data[i] = itemToResponse(item.Item, item.Favorited)
	}
	return response
}

func itemToResponse(item domain.ItemSummary, favorited bool) ItemCardResponse {
	return ItemCardResponse{
		ID:             item.ID,
		Title:          item.Title,
		Category:       item.Category,
		Location:       item.Location,
		DailyRate:      item.DailyRate,
		Availability:   item.Availability,
		InstantBooking: item.InstantBooking,
		Images:         item.Images,
		Videos:         item.Videos,
		Rating:         item.Rating,
		ViewCount:      item.ViewCount,
		FavoriteCount:  item.FavoriteCount,
		CreatedDate:    item.CreatedDate.Format(time.RFC3339),
		IsFavorited:    favorited,
	}
}
