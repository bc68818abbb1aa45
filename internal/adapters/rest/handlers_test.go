package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skyegle0602/Rentany-frontend/internal/constants"
	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

type fakeToggleUseCase struct {
	err        error
	lastItemID string
}

func (uc *fakeToggleUseCase) Execute(ctx context.Context, itemID string, favorites []domain.FavoriteRecord, identity *domain.Identity, refresh func(ctx context.Context) error) error {
	uc.lastItemID = itemID
	return uc.err
}

type fakeGetFavoritesUseCase struct {
	records []domain.FavoriteRecord
	err     error
}

func (uc *fakeGetFavoritesUseCase) Execute(ctx context.Context, userEmail string) ([]domain.FavoriteRecord, error) {
	return uc.records, uc.err
}

type fakeListItemsUseCase struct {
	items []domain.ItemWithFavorite
	err   error
}

func (uc *fakeListItemsUseCase) Execute(ctx context.Context, identity *domain.Identity) ([]domain.ItemWithFavorite, error) {
	return uc.items, uc.err
}

type fakeFindItemsUseCase struct {
	items       []domain.ItemSummary
	lastFilters domain.FilterState
}

func (uc *fakeFindItemsUseCase) Execute(ctx context.Context, filters domain.FilterState) ([]domain.ItemSummary, error) {
	uc.lastFilters = filters
	return uc.items, nil
}

func requestWithIdentity(req *http.Request) *http.Request {
	identity := &domain.Identity{UserID: "user_1", Email: "user@example.com", SignedIn: true}
	return req.WithContext(contextkeys.ContextWithIdentity(req.Context(), identity))
}

func newTestMarketplaceHandler(toggle *fakeToggleUseCase, getFavorites *fakeGetFavoritesUseCase) *MarketplaceHandler {
	return NewMarketplaceHandler(
		toggle,
		getFavorites,
		&fakeListItemsUseCase{},
		&fakeListItemsUseCase{},
		&fakeFindItemsUseCase{},
		nil,
	)
}

func TestToggleFavoriteAccepted(t *testing.T) {
	toggle := &fakeToggleUseCase{}
	handler := newTestMarketplaceHandler(toggle, &fakeGetFavoritesUseCase{})

	body := strings.NewReader(`{"item_id": "42"}`)
	req := requestWithIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/favorites/toggle", body))
	rec := httptest.NewRecorder()
	handler.ToggleFavorite(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if toggle.lastItemID != "42" {
		t.Fatalf("item id was not passed to use case, got %q", toggle.lastItemID)
	}
}

func TestToggleFavoriteRequiresItemID(t *testing.T) {
	handler := newTestMarketplaceHandler(&fakeToggleUseCase{}, &fakeGetFavoritesUseCase{})

	body := strings.NewReader(`{}`)
	req := requestWithIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/favorites/toggle", body))
	rec := httptest.NewRecorder()
	handler.ToggleFavorite(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestToggleFavoriteInProgressConflict(t *testing.T) {
	handler := newTestMarketplaceHandler(&fakeToggleUseCase{err: domain.ErrToggleInProgress}, &fakeGetFavoritesUseCase{})

	body := strings.NewReader(`{"item_id": "42"}`)
	req := requestWithIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/favorites/toggle", body))
	rec := httptest.NewRecorder()
	handler.ToggleFavorite(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestToggleFavoriteUnauthenticatedRedirects(t *testing.T) {
	handler := newTestMarketplaceHandler(&fakeToggleUseCase{err: domain.ErrNotAuthenticated}, &fakeGetFavoritesUseCase{})

	body := strings.NewReader(`{"item_id": "42"}`)
	// Без identity в контексте.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/toggle", body)
	rec := httptest.NewRecorder()
	handler.ToggleFavorite(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != constants.RouteSignIn {
		t.Fatalf("expected redirect to sign-in, got %q", got)
	}
}

func TestGetUserFavoritesResponse(t *testing.T) {
	getFavorites := &fakeGetFavoritesUseCase{
		records: []domain.FavoriteRecord{
			{ID: "fav_1", UserEmail: "user@example.com", ItemID: "1"},
			{ID: "fav_2", UserEmail: "user@example.com", ItemID: "3"},
		},
	}
	handler := newTestMarketplaceHandler(&fakeToggleUseCase{}, getFavorites)

	req := requestWithIdentity(httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil))
	rec := httptest.NewRecorder()
	handler.GetUserFavorites(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp FavoritesListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Data) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Data[0].ItemID != "1" || resp.Data[1].ItemID != "3" {
		t.Fatalf("unexpected records: %+v", resp.Data)
	}
}

func TestSearchItemsPassesFilterState(t *testing.T) {
	findItems := &fakeFindItemsUseCase{
		items: []domain.ItemSummary{{ID: "3", Title: "Skis"}},
	}
	handler := NewMarketplaceHandler(
		&fakeToggleUseCase{},
		&fakeGetFavoritesUseCase{},
		&fakeListItemsUseCase{},
		&fakeListItemsUseCase{},
		findItems,
		nil,
	)

	body := strings.NewReader(`{"search_query": "skis", "sort_by": "price_low", "availability": "available"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/items/search", body)
	rec := httptest.NewRecorder()
	handler.SearchItems(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if findItems.lastFilters.SearchQuery != "skis" || findItems.lastFilters.SortBy != domain.SortPriceLow {
		t.Fatalf("filter state was not passed through, got %+v", findItems.lastFilters)
	}

	var resp ItemListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 || resp.Data[0].ID != "3" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGetFeaturedItemsMarksFavorites(t *testing.T) {
	featured := &fakeListItemsUseCase{
		items: []domain.ItemWithFavorite{
			{Item: domain.ItemSummary{ID: "1", Title: "Pressure washer"}, Favorited: true},
			{Item: domain.ItemSummary{ID: "2", Title: "Drone"}, Favorited: false},
		},
	}
	handler := NewMarketplaceHandler(
		&fakeToggleUseCase{},
		&fakeGetFavoritesUseCase{},
		featured,
		&fakeListItemsUseCase{},
		&fakeFindItemsUseCase{},
		nil,
	)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/featured", nil)
	rec := httptest.NewRecorder()
	handler.GetFeaturedItems(rec, req)

	var resp ItemListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Data[0].IsFavorited || resp.Data[1].IsFavorited {
		t.Fatalf("favorite flags are wrong: %+v", resp.Data)
	}
}
