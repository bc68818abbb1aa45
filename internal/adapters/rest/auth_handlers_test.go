package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

type fakeSignInUseCase struct {
	result    *domain.SignInResult
	err       error
	oauthErr  error
	oauthURL  string
	lastEmail string
}

func (uc *fakeSignInUseCase) Execute(ctx context.Context, identity *domain.Identity, email, password string) (*domain.SignInResult, error) {
	uc.lastEmail = email
	return uc.result, uc.err
}

func (uc *fakeSignInUseCase) ExecuteOAuth(ctx context.Context, identity *domain.Identity, provider, origin string) (*domain.SignInResult, error) {
	if uc.oauthErr != nil {
		return nil, uc.oauthErr
	}
	return &domain.SignInResult{Status: domain.SignInRedirecting, RedirectTo: uc.oauthURL}, nil
}

func TestGetSignInViewWithOAuthError(t *testing.T) {
	handler := NewAuthHandler(&fakeSignInUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/auth/signin?error=Invalid%20credentials", nil)
	rec := httptest.NewRecorder()
	handler.GetSignInView(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var view SignInViewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if view.ErrorBanner != "Invalid credentials" {
		t.Fatalf("expected error banner, got %q", view.ErrorBanner)
	}
	// error вырезан из канонического URL: баннер показывается один раз.
	if view.CanonicalURL != "/auth/signin" {
		t.Fatalf("expected stripped canonical URL, got %q", view.CanonicalURL)
	}
}

func TestGetSignInViewWithResetSuccess(t *testing.T) {
	handler := NewAuthHandler(&fakeSignInUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/auth/signin?reset=success", nil)
	rec := httptest.NewRecorder()
	handler.GetSignInView(rec, req)

	var view SignInViewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !view.SuccessBanner {
		t.Fatal("expected success banner")
	}
	if view.SuccessExpiresAt == "" {
		t.Fatal("expected banner expiry timestamp")
	}
	if view.CanonicalURL != "/auth/signin?reset=success" {
		t.Fatalf("unexpected canonical URL %q", view.CanonicalURL)
	}
}

func TestSignInHandlerValidationError(t *testing.T) {
	handler := NewAuthHandler(&fakeSignInUseCase{
		err: fmt.Errorf("%w: please enter both email and password", domain.ErrValidation),
	})

	body := strings.NewReader(`{"email": "", "password": ""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", body)
	rec := httptest.NewRecorder()
	handler.SignIn(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSignInHandlerAuthNotReady(t *testing.T) {
	handler := NewAuthHandler(&fakeSignInUseCase{err: domain.ErrAuthNotReady})

	body := strings.NewReader(`{"email": "user@example.com", "password": "secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", body)
	rec := httptest.NewRecorder()
	handler.SignIn(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestSignInHandlerProviderFailure(t *testing.T) {
	handler := NewAuthHandler(&fakeSignInUseCase{err: fmt.Errorf("Invalid credentials")})

	body := strings.NewReader(`{"email": "user@example.com", "password": "wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", body)
	rec := httptest.NewRecorder()
	handler.SignIn(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Error != "Invalid credentials" {
		t.Fatalf("provider message must pass through, got %q", errResp.Error)
	}
}

func TestSignInHandlerSuccess(t *testing.T) {
	uc := &fakeSignInUseCase{
		result: &domain.SignInResult{
			Status:     domain.SignInComplete,
			SessionID:  "s1",
			RedirectTo: "/home",
		},
	}
	handler := NewAuthHandler(uc)

	body := strings.NewReader(`{"email": "user@example.com", "password": "secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", body)
	rec := httptest.NewRecorder()
	handler.SignIn(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if uc.lastEmail != "user@example.com" {
		t.Fatalf("email was not passed to use case, got %q", uc.lastEmail)
	}

	var resp SignInResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != domain.SignInComplete || resp.RedirectTo != "/home" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestOAuthHandlerUnconfiguredProvider(t *testing.T) {
	configHint := fmt.Errorf("%w: google OAuth is not configured", domain.ErrProviderConfig)
	handler := NewAuthHandler(&fakeSignInUseCase{oauthErr: configHint})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/oauth/google", nil)
	rec := httptest.NewRecorder()
	handler.OAuthSignIn(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if !strings.Contains(errResp.Error, "not configured") {
		t.Fatalf("expected configuration hint in response, got %q", errResp.Error)
	}
}

func TestOAuthHandlerRedirect(t *testing.T) {
	handler := NewAuthHandler(&fakeSignInUseCase{oauthURL: "https://provider.example/oauth/google"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/oauth/google", nil)
	rec := httptest.NewRecorder()
	handler.OAuthSignIn(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp SignInResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != domain.SignInRedirecting {
		t.Fatalf("expected redirecting status, got %+v", resp)
	}
	if resp.RedirectTo != "https://provider.example/oauth/google" {
		t.Fatalf("unexpected redirect URL %q", resp.RedirectTo)
	}
}
