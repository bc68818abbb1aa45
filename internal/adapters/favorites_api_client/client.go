package favorites_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/contracts"
	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port"
)

// FavoritesAPIClient - клиент удаленного хранилища избранного.
// Три CRUD-операции поверх REST, без ретраев: ошибки логируются
// и пробрасываются вызывающему.
type FavoritesAPIClient struct {
	baseURL    string // Например, "http://favorites-api:3000"
	httpClient *http.Client
}

// NewFavoritesAPIClient - конструктор.
func NewFavoritesAPIClient(baseURL string) *FavoritesAPIClient {
	return &FavoritesAPIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *FavoritesAPIClient) doRequest(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Заголовок для сквозной трассировки
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// Create реализует порт FavoriteStorePort: POST /api/favorites.
// Возвращает запись с назначенным сервером id.
func (c *FavoritesAPIClient) Create(ctx context.Context, record domain.FavoriteRecord) (*domain.FavoriteRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "FavoritesAPIClient",
		"method":    "Create",
		"item_id":   record.ItemID,
	})

	if record.UserEmail == "" || record.ItemID == "" {
		return nil, fmt.Errorf("%w: user_email and item_id are required", domain.ErrValidation)
	}

	reqBody, err := json.Marshal(createFavoriteRequest{
		UserEmail: record.UserEmail,
		ItemID:    record.ItemID,
	})
	if err != nil {
		clientLogger.Error("Failed to marshal request body", err, nil)
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.baseURL+"/api/favorites", bytes.NewBuffer(reqBody))
	if err != nil {
		clientLogger.Error("Failed to perform request to favorites store", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteWrite, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("%w: favorites store returned status %d, body: %s", domain.ErrRemoteWrite, resp.StatusCode, string(bodyBytes))
		clientLogger.Error("Received non-2xx response from favorites store", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		clientLogger.Error("Failed to read response body", err, nil)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем ответ по контракту до маппинга в доменную модель
	if err := contracts.Validate("FavoriteRecord", bodyBytes); err != nil {
		clientLogger.Error("Favorites store response violates contract", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteWrite, err)
	}

	var dto favoriteRecordResponse
	if err := json.Unmarshal(bodyBytes, &dto); err != nil {
		clientLogger.Error("Failed to decode response from favorites store", err, nil)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	created := dto.toDomain()
	clientLogger.Info("Favorite created", port.Fields{"favorite_id": created.ID})
	return &created, nil
}

// Delete реализует порт FavoriteStorePort: DELETE /api/favorites/{id}.
// Идемпотентность не гарантируется: 404 возвращается как
// domain.ErrFavoriteNotFound, решение принимает вызывающий.
func (c *FavoritesAPIClient) Delete(ctx context.Context, id string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component":   "FavoritesAPIClient",
		"method":      "Delete",
		"favorite_id": id,
	})

	if id == "" {
		return fmt.Errorf("%w: favorite id is required", domain.ErrValidation)
	}

	resp, err := c.doRequest(ctx, http.MethodDelete, c.baseURL+"/api/favorites/"+url.PathEscape(id), nil)
	if err != nil {
		clientLogger.Error("Failed to perform request to favorites store", err, nil)
		return fmt.Errorf("%w: %v", domain.ErrRemoteWrite, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		clientLogger.Warn("Favorite not found remotely", nil)
		return fmt.Errorf("%w: id %s", domain.ErrFavoriteNotFound, id)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("%w: favorites store returned status %d, body: %s", domain.ErrRemoteWrite, resp.StatusCode, string(bodyBytes))
		clientLogger.Error("Received non-2xx response from favorites store", err, port.Fields{"status_code": resp.StatusCode})
		return err
	}

	clientLogger.Info("Favorite deleted", nil)
	return nil
}

// ListByUser реализует порт FavoriteStorePort: GET /api/favorites?user_email=.
// Порядок записей в ответе не определен.
func (c *FavoritesAPIClient) ListByUser(ctx context.Context, userEmail string) ([]domain.FavoriteRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component":  "FavoritesAPIClient",
		"method":     "ListByUser",
		"user_email": userEmail,
	})

	requestURL := c.baseURL + "/api/favorites?user_email=" + url.QueryEscape(userEmail)
	resp, err := c.doRequest(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		clientLogger.Error("Failed to perform request to favorites store", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteRead, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("%w: favorites store returned status %d, body: %s", domain.ErrRemoteRead, resp.StatusCode, string(bodyBytes))
		clientLogger.Error("Received non-OK response from favorites store", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		clientLogger.Error("Failed to read response body", err, nil)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if err := contracts.Validate("FavoriteList", bodyBytes); err != nil {
		clientLogger.Error("Favorites store response violates contract", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteRead, err)
	}

	var dtos []favoriteRecordResponse
	if err := json.Unmarshal(bodyBytes, &dtos); err != nil {
		clientLogger.Error("Failed to decode response from favorites store", err, nil)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Маппим DTO ответа в доменную модель, изолируя ядро от деталей API
	records := make([]domain.FavoriteRecord, len(dtos))
	for i, dto := range dtos {
		records[i] = dto.toDomain()
	}

	clientLogger.Info("Favorites listed", port.Fields{"count": len(records)})
	return records, nil
}
