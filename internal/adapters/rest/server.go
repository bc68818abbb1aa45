package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	core_port "github.com/skyegle0602/Rentany-frontend/internal/core/port"
)

// Server - REST API сервер фронтенда маркетплейса.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewServer собирает роутер и создает сервер.
func NewServer(
	port string,
	allowedOrigins []string,
	marketplace *MarketplaceHandler,
	auth *AuthHandler,
	gate *SessionGate,
	baseLogger core_port.LoggerPort) *Server {
	r := chi.NewRouter()

	// Общие middleware
	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Публичные маршруты ---
	// Страница входа и ее состояние. Identity разрешается, но не требуется:
	// уже вошедший пользователь получает complete без обращения к провайдеру.
	r.Group(func(r chi.Router) {
		r.Use(gate.Resolve)

		r.Get("/auth/signin", auth.GetSignInView)
		r.Post("/api/v1/auth/signin", auth.SignIn)
		r.Post("/api/v1/auth/oauth/{provider}", auth.OAuthSignIn)

		// Поиск по каталогу доступен без сессии.
		r.Post("/api/v1/items/search", marketplace.SearchItems)
	})

	// --- Приватные маршруты ---
	// Без сессии редирект на страницу входа, защищенное содержимое
	// не рендерится.
	r.Group(func(r chi.Router) {
		r.Use(gate.Protect)

		r.Get("/api/v1/items/featured", marketplace.GetFeaturedItems)
		r.Get("/api/v1/items/recent", marketplace.GetRecentlyViewed)

		r.Route("/api/v1/favorites", func(r chi.Router) {
			r.Get("/", marketplace.GetUserFavorites)
			r.Post("/toggle", marketplace.ToggleFavorite)
			r.Get("/subscribe", marketplace.SubscribeFavorites)
		})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger,
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
