package usecases_port

import (
	"context"

	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

// SignInUseCasePort - контракт потока входа.
type SignInUseCasePort interface {
	// Execute выполняет вход по email и паролю. identity - уже разрешенная
	// проекция сессии (может быть nil, если пользователь не вошел).
	Execute(ctx context.Context, identity *domain.Identity, email, password string) (*domain.SignInResult, error)

	// ExecuteOAuth начинает OAuth-поток или сразу возвращает редирект,
	// если сессия уже существует.
	ExecuteOAuth(ctx context.Context, identity *domain.Identity, provider, origin string) (*domain.SignInResult, error)
}
