package identity_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/skyegle0602/Rentany-frontend/internal/constants"
	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/contracts"
	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port"
)

// Client - клиент внешнего identity-провайдера. Провайдер для нас непрозрачный
// оракул: мы читаем проекцию сессии и вызываем операции входа, но сами
// аутентификацию не реализуем.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// Какие OAuth-провайдеры настроены на стороне identity-сервиса.
	oauthProviders map[string]bool
}

// NewClient - конструктор клиента.
func NewClient(baseURL string, oauthProviders []string) *Client {
	enabled := make(map[string]bool, len(oauthProviders))
	for _, p := range oauthProviders {
		enabled[p] = true
	}
	return &Client{
		baseURL:        baseURL,
		httpClient:     &http.Client{},
		oauthProviders: enabled,
	}
}

func (c *Client) doRequest(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

// CurrentIdentity читает проекцию текущей сессии: GET /api/user/current.
// Любой не-2xx ответ (включая 404) означает "пользователя нет" - это не
// ошибка, а нормальное состояние до входа.
func (c *Client) CurrentIdentity(ctx context.Context) (*domain.Identity, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "IdentityClient",
		"method":    "CurrentIdentity",
	})

	resp, err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/api/user/current", nil)
	if err != nil {
		clientLogger.Warn("Failed to reach identity provider", port.Fields{"error": err.Error()})
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		clientLogger.Warn("Failed to read identity response", port.Fields{"error": err.Error()})
		return nil, nil
	}

	if err := contracts.Validate("UserData", bodyBytes); err != nil {
		clientLogger.Error("Identity provider response violates contract", err, nil)
		return nil, nil
	}

	var dto userDataResponse
	if err := json.Unmarshal(bodyBytes, &dto); err != nil {
		clientLogger.Warn("Failed to decode identity response", port.Fields{"error": err.Error()})
		return nil, nil
	}

	// Нормализуем проекцию ровно один раз: дальше никто не разбирает
	// "сырые" формы объекта пользователя.
	return &domain.Identity{
		UserID:   dto.ID,
		Email:    dto.Email,
		Username: dto.Username,
		SignedIn: true,
	}, nil
}

// PasswordSignIn выполняет вход по email и паролю: POST /api/auth/signin.
func (c *Client) PasswordSignIn(ctx context.Context, email, password string) (*domain.SignInResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "IdentityClient",
		"method":    "PasswordSignIn",
	})

	reqBody, err := json.Marshal(signInRequest{Identifier: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sign-in request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.baseURL+"/api/auth/signin", bytes.NewBuffer(reqBody))
	if err != nil {
		clientLogger.Error("Failed to reach identity provider", err, nil)
		return nil, fmt.Errorf("failed to sign in. Please check your credentials and try again: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		// Провайдер еще не готов принимать запросы.
		return nil, domain.ErrAuthNotReady
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.classifyProviderError(clientLogger, resp)
	}

	var dto signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		clientLogger.Error("Failed to decode sign-in response", err, nil)
		return nil, fmt.Errorf("failed to decode sign-in response: %w", err)
	}

	return &domain.SignInResult{
		Status:    dto.Status,
		SessionID: dto.CreatedSessionID,
	}, nil
}

// ActivateSession делает созданную провайдером сессию активной.
func (c *Client) ActivateSession(ctx context.Context, sessionID string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component":  "IdentityClient",
		"method":     "ActivateSession",
		"session_id": sessionID,
	})

	activateURL := c.baseURL + "/api/auth/sessions/" + url.PathEscape(sessionID) + "/activate"
	resp, err := c.doRequest(ctx, http.MethodPost, activateURL, nil)
	if err != nil {
		clientLogger.Error("Failed to reach identity provider", err, nil)
		return fmt.Errorf("failed to activate session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("identity provider returned status %d, body: %s", resp.StatusCode, string(bodyBytes))
		clientLogger.Error("Failed to activate session", err, nil)
		return err
	}

	clientLogger.Info("Session activated", nil)
	return nil
}

// OAuthRedirectURL строит URL редиректа на OAuth-провайдера. После провайдера
// пользователь вернется на /auth/sso-callback, а при полном успехе - на /home.
func (c *Client) OAuthRedirectURL(ctx context.Context, provider, origin string) (string, error) {
	if !c.oauthProviders[provider] {
		// Подсказка многострочная и действенная: пользователю есть что проверить.
		return "", fmt.Errorf("%w: failed to sign in with %s. Please check:\n"+
			"1. %s OAuth is enabled in the identity dashboard\n"+
			"2. Sign-ups are allowed in the identity settings\n"+
			"3. Your environment variables are set correctly\n"+
			"4. Your domain is configured at the identity provider",
			domain.ErrProviderConfig, provider, provider)
	}

	redirectURL := url.Values{}
	redirectURL.Set("redirect_url", origin+constants.RouteSSOCallback)
	redirectURL.Set("redirect_url_complete", origin+constants.RouteHome)

	return c.baseURL + "/oauth/" + url.PathEscape(provider) + "/authorize?" + redirectURL.Encode(), nil
}

// classifyProviderError разбирает тело ошибки провайдера. Код session_exists
// означает, что сессия уже есть - трактуем как успех на уровне вызывающего.
func (c *Client) classifyProviderError(logger port.LoggerPort, resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(resp.Body)

	var providerErr providerErrorResponse
	if err := json.Unmarshal(bodyBytes, &providerErr); err == nil && len(providerErr.Errors) > 0 {
		first := providerErr.Errors[0]
		if first.Code == "session_exists" {
			return domain.ErrAlreadyAuthenticated
		}
		logger.Warn("Provider rejected sign-in", port.Fields{"provider_message": first.Message})
		if first.Message != "" {
			return fmt.Errorf("%s", first.Message)
		}
	}

	logger.Warn("Provider returned unparseable error", port.Fields{"status_code": resp.StatusCode})
	return fmt.Errorf("failed to sign in. Please try again")
}
