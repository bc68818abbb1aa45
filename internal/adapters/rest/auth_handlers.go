package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port/usecases_port"
)

// AuthHandler - обработчики страницы входа.
type AuthHandler struct {
	signInUC usecases_port.SignInUseCasePort
}

func NewAuthHandler(signInUC usecases_port.SignInUseCasePort) *AuthHandler {
	return &AuthHandler{signInUC: signInUC}
}

// GetSignInView обрабатывает GET /auth/signin - вычисляет состояние
// страницы входа из query-параметров (?error=, ?reset=success).
func (h *AuthHandler) GetSignInView(w http.ResponseWriter, r *http.Request) {
	state := domain.NewSignInViewState(r.URL.Path, r.URL.Query(), time.Now())

	response := SignInViewResponse{
		ErrorBanner:   state.ErrorBanner,
		SuccessBanner: state.SuccessBanner,
		CanonicalURL:  state.CanonicalURL,
	}
	if state.SuccessBanner {
		response.SuccessExpiresAt = state.SuccessExpiresAt.Format(time.RFC3339)
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// SignIn обрабатывает POST /api/v1/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SignIn"})

	var reqDTO SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode sign-in request", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	identity := contextkeys.IdentityFromContext(r.Context())

	result, err := h.signInUC.Execute(r.Context(), identity, reqDTO.Email, reqDTO.Password)
	switch {
	case errors.Is(err, domain.ErrValidation):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, domain.ErrAuthNotReady):
		WriteJSONError(w, http.StatusServiceUnavailable, "Authentication is not ready yet. Please try again.")
		return
	case err != nil:
		// Сообщение провайдера уже приведено к виду для пользователя
		// в identity-клиенте.
		logger.Warn("Sign-in attempt failed", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusUnauthorized, err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, signInResultToResponse(result))
}

// OAuthSignIn обрабатывает POST /api/v1/auth/oauth/{provider}
func (h *AuthHandler) OAuthSignIn(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "OAuthSignIn"})

	provider := chi.URLParam(r, "provider")
	identity := contextkeys.IdentityFromContext(r.Context())

	origin := r.Header.Get("Origin")
	if origin == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		origin = scheme + "://" + r.Host
	}

	result, err := h.signInUC.ExecuteOAuth(r.Context(), identity, provider, origin)
	switch {
	case errors.Is(err, domain.ErrProviderConfig):
		// Текст ошибки содержит инструкции по настройке провайдера -
		// отдаем его как есть.
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logger.Error("OAuth sign-in failed", err, port.Fields{"provider": provider})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to start OAuth sign-in")
		return
	}

	RespondWithJSON(w, http.StatusOK, signInResultToResponse(result))
}

func signInResultToResponse(result *domain.SignInResult) SignInResponse {
	return SignInResponse{
		Status:     result.Status,
		SessionID:  result.SessionID,
		RedirectTo: result.RedirectTo,
		Message:    result.Message,
	}
}
