package port

import (
	"context"

	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

// IdentityGatewayPort - контракт для клиента внешнего identity-провайдера.
// Этот сервис только читает проекцию сессии и вызывает операции входа,
// сам провайдер не реализует.
type IdentityGatewayPort interface {
	// CurrentIdentity возвращает нормализованную проекцию текущей сессии
	// или nil, если пользователь не вошел (любой не-2xx ответ провайдера
	// трактуется как "нет пользователя").
	CurrentIdentity(ctx context.Context) (*domain.Identity, error)

	// PasswordSignIn выполняет вход по email и паролю.
	// Ошибка "сессия уже существует" возвращается как
	// domain.ErrAlreadyAuthenticated.
	PasswordSignIn(ctx context.Context, email, password string) (*domain.SignInResult, error)

	// ActivateSession делает созданную провайдером сессию активной.
	ActivateSession(ctx context.Context, sessionID string) error

	// OAuthRedirectURL строит URL для редиректа на OAuth-провайдера.
	// Для ненастроенного провайдера возвращает domain.ErrProviderConfig.
	OAuthRedirectURL(ctx context.Context, provider, origin string) (string, error)
}
