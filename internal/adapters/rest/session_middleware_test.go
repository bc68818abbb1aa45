package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skyegle0602/Rentany-frontend/internal/constants"
	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

type fakeGateway struct {
	identity *domain.Identity
	err      error
}

func (g *fakeGateway) CurrentIdentity(ctx context.Context) (*domain.Identity, error) {
	return g.identity, g.err
}

func (g *fakeGateway) PasswordSignIn(ctx context.Context, email, password string) (*domain.SignInResult, error) {
	return nil, nil
}

func (g *fakeGateway) ActivateSession(ctx context.Context, sessionID string) error {
	return nil
}

func (g *fakeGateway) OAuthRedirectURL(ctx context.Context, provider, origin string) (string, error) {
	return "", nil
}

func TestProtectRedirectsWithoutSession(t *testing.T) {
	gate := NewSessionGate(&fakeGateway{})
	handlerCalled := false
	handler := gate.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != constants.RouteSignIn {
		t.Fatalf("expected redirect to sign-in, got %q", got)
	}
	// Защищенный хендлер не вызывается: оба содержимых никогда не отдаются.
	if handlerCalled {
		t.Fatal("protected handler must not run without a session")
	}
}

func TestProtectRedirectsSignedOutIdentity(t *testing.T) {
	gate := NewSessionGate(&fakeGateway{identity: &domain.Identity{SignedIn: false}})
	handler := gate.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("protected handler must not run for signed-out identity")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", rec.Code)
	}
}

func TestProtectPutsIdentityIntoContext(t *testing.T) {
	user := &domain.Identity{UserID: "user_1", Email: "user@example.com", SignedIn: true}
	gate := NewSessionGate(&fakeGateway{identity: user})

	var seen *domain.Identity
	handler := gate.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = contextkeys.IdentityFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen == nil || seen.Email != "user@example.com" {
		t.Fatalf("identity was not passed through context, got %+v", seen)
	}
}

func TestProtectGatewayFailure(t *testing.T) {
	gate := NewSessionGate(&fakeGateway{err: errors.New("gateway down")})
	handler := gate.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("protected handler must not run on gateway failure")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestResolveDoesNotBlockAnonymous(t *testing.T) {
	gate := NewSessionGate(&fakeGateway{})

	var seen *domain.Identity
	handler := gate.Resolve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = contextkeys.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/items/featured", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous request must pass through, got %d", rec.Code)
	}
	if seen != nil {
		t.Fatalf("expected no identity for anonymous request, got %+v", seen)
	}
}

func TestResolveAttachesIdentityWhenPresent(t *testing.T) {
	user := &domain.Identity{UserID: "user_1", Email: "user@example.com", SignedIn: true}
	gate := NewSessionGate(&fakeGateway{identity: user})

	var seen *domain.Identity
	handler := gate.Resolve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = contextkeys.IdentityFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/items/featured", nil))

	if seen == nil || seen.Email != "user@example.com" {
		t.Fatalf("identity was not resolved, got %+v", seen)
	}
}
