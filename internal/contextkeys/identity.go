package contextkeys

import (
	"context"

	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

// Тип для ключа контекста
type identityKeyType struct{}

var identityKey = identityKeyType{}

// ContextWithIdentity помещает проекцию сессии в контекст запроса.
// Кладет ее session gate middleware после разрешения identity.
func ContextWithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext извлекает проекцию сессии из контекста.
// Возвращает nil, если пользователь не аутентифицирован.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	if identity, ok := ctx.Value(identityKey).(*domain.Identity); ok {
		return identity
	}
	return nil
}
