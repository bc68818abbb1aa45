package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/skyegle0602/Rentany-frontend/internal/constants"
	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port"
)

// SignInUseCase - поток входа. Сам провайдер не реализуется: use case только
// вызывает его и интерпретирует результат.
//
// Состояния: Idle -> Submitting -> {Complete, NeedsVerification, Failed}.
// OAuth-ветка: Idle -> Redirecting -> (внешний провайдер) -> Callback.
type SignInUseCase struct {
	gateway port.IdentityGatewayPort
}

func NewSignInUseCase(gateway port.IdentityGatewayPort) *SignInUseCase {
	return &SignInUseCase{gateway: gateway}
}

// Execute выполняет вход по email и паролю.
func (uc *SignInUseCase) Execute(ctx context.Context, identity *domain.Identity, email, password string) (*domain.SignInResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SignIn",
		"email":    email,
	})

	// Сессия уже есть - сразу на главную, без обращения к провайдеру.
	if identity != nil && identity.SignedIn {
		ucLogger.Info("Already signed in, redirecting", nil)
		return &domain.SignInResult{
			Status:     domain.SignInComplete,
			RedirectTo: constants.RouteHome,
		}, nil
	}

	// Валидация формы: при пустых полях сетевых вызовов не делаем.
	if email == "" || password == "" {
		ucLogger.Warn("Sign-in rejected: missing email or password", nil)
		return nil, fmt.Errorf("%w: please enter both email and password", domain.ErrValidation)
	}

	ucLogger.Info("Use case started: attempting to sign in", nil)

	result, err := uc.gateway.PasswordSignIn(ctx, email, password)
	if err != nil {
		// Провайдер сообщил о существующей сессии - это успех, а не ошибка.
		if errors.Is(err, domain.ErrAlreadyAuthenticated) {
			ucLogger.Info("Provider reported existing session, treating as success", nil)
			return &domain.SignInResult{
				Status:     domain.SignInComplete,
				RedirectTo: constants.RouteHome,
			}, nil
		}
		ucLogger.Error("Provider sign-in failed", err, nil)
		return nil, err
	}

	if result.Status != domain.SignInComplete {
		// Нужна дополнительная верификация. Автоматических ретраев нет,
		// пользователь остается неаутентифицированным.
		ucLogger.Warn("Sign-in requires additional verification", port.Fields{"status": result.Status})
		return &domain.SignInResult{
			Status:  domain.SignInNeedsVerification,
			Message: "Sign-in requires additional verification. Please check your email.",
		}, nil
	}

	if result.SessionID != "" {
		if err := uc.gateway.ActivateSession(ctx, result.SessionID); err != nil {
			ucLogger.Error("Failed to activate session", err, port.Fields{"session_id": result.SessionID})
			return nil, err
		}
	}

	ucLogger.Info("Use case finished: user signed in successfully", nil)
	return &domain.SignInResult{
		Status:     domain.SignInComplete,
		SessionID:  result.SessionID,
		RedirectTo: constants.RouteHome,
	}, nil
}

// ExecuteOAuth начинает OAuth-поток через провайдера.
func (uc *SignInUseCase) ExecuteOAuth(ctx context.Context, identity *domain.Identity, provider, origin string) (*domain.SignInResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SignInOAuth",
		"provider": provider,
	})

	// Нажатие OAuth-кнопки при активной сессии: сразу на главную,
	// провайдер не вызывается.
	if identity != nil && identity.SignedIn {
		ucLogger.Info("Already signed in, redirecting", nil)
		return &domain.SignInResult{
			Status:     domain.SignInComplete,
			RedirectTo: constants.RouteHome,
		}, nil
	}

	ucLogger.Info("Use case started: building OAuth redirect", nil)

	redirectURL, err := uc.gateway.OAuthRedirectURL(ctx, provider, origin)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyAuthenticated) {
			ucLogger.Info("Provider reported existing session, treating as success", nil)
			return &domain.SignInResult{
				Status:     domain.SignInComplete,
				RedirectTo: constants.RouteHome,
			}, nil
		}
		ucLogger.Error("Failed to build OAuth redirect", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: redirecting to provider", nil)
	return &domain.SignInResult{
		Status:     domain.SignInRedirecting,
		RedirectTo: redirectURL,
	}, nil
}
