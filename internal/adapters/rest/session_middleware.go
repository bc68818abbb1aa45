package rest

import (
	"net/http"

	"github.com/skyegle0602/Rentany-frontend/internal/constants"
	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port"
)

// SessionGate - middleware защищенных маршрутов: сначала разрешаем identity,
// и только потом рендерим защищенное содержимое. Без сессии пользователь
// уходит редиректом на страницу входа - защищенный хендлер не вызывается,
// так что оба содержимых никогда не отдаются одновременно.
type SessionGate struct {
	gateway port.IdentityGatewayPort
}

func NewSessionGate(gateway port.IdentityGatewayPort) *SessionGate {
	return &SessionGate{gateway: gateway}
}

// Protect оборачивает защищенный маршрут.
func (g *SessionGate) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := contextkeys.LoggerFromContext(r.Context())

		identity, err := g.gateway.CurrentIdentity(r.Context())
		if err != nil {
			logger.Error("Failed to resolve session", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to resolve session")
			return
		}

		if identity == nil || !identity.SignedIn {
			logger.Info("No session, redirecting to sign-in", port.Fields{"path": r.URL.Path})
			http.Redirect(w, r, constants.RouteSignIn, http.StatusSeeOther)
			return
		}

		ctx := contextkeys.ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Resolve оборачивает публичный маршрут: identity кладется в контекст, если
// сессия есть, но отсутствие сессии не блокирует запрос.
func (g *SessionGate) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := g.gateway.CurrentIdentity(r.Context())
		if err == nil && identity != nil {
			r = r.WithContext(contextkeys.ContextWithIdentity(r.Context(), identity))
		}
		next.ServeHTTP(w, r)
	})
}
