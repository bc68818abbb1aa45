package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"

	"github.com/skyegle0602/Rentany-frontend/internal/adapters/catalog"
	favorites_api_client "github.com/skyegle0602/Rentany-frontend/internal/adapters/favorites_api_client"
	identity_client "github.com/skyegle0602/Rentany-frontend/internal/adapters/identity_client"
	"github.com/skyegle0602/Rentany-frontend/internal/adapters/localcache"
	logger_adapter "github.com/skyegle0602/Rentany-frontend/internal/adapters/logger"
	"github.com/skyegle0602/Rentany-frontend/internal/adapters/notifier"
	"github.com/skyegle0602/Rentany-frontend/internal/adapters/rest"
	"github.com/skyegle0602/Rentany-frontend/internal/configs"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port"
	"github.com/skyegle0602/Rentany-frontend/internal/core/usecase"
)

type App struct {
	config    *configs.AppConfig
	cache     *localcache.SQLiteFavoritesCache
	apiServer *rest.Server

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = logger_adapter.NewFluentClient(logger_adapter.FluentConfig{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName, // Используем имя приложения как префикс
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. СОЗДАЕМ БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. ИНИЦИАЛИЗАЦИЯ АДАПТЕРОВ ---
	favoritesCache, err := localcache.NewSQLiteFavoritesCache(appConfig.Cache.Path)
	if err != nil {
		appLogger.Error("Failed to open local favorites cache", err, nil)
		return nil, fmt.Errorf("failed to open local favorites cache: %w", err)
	}
	appLogger.Info("Local favorites cache opened.", port.Fields{"path": appConfig.Cache.Path})

	favoritesClient := favorites_api_client.NewFavoritesAPIClient(appConfig.ApiClient.FAVORITES_API_URL)
	identityClient := identity_client.NewClient(appConfig.ApiClient.IDENTITY_API_URL, appConfig.Auth.OAuthProviders)
	itemCatalog := catalog.NewMockCatalog()
	sseNotifier := notifier.NewSSENotifier(baseLogger)
	appLogger.Info("All persistence and service adapters initialized.", nil)

	// --- 4. ИНИЦИАЛИЗАЦИЯ USE CASES (ядра бизнес-логики) ---
	getUserFavoritesUseCase := usecase.NewGetUserFavoritesUseCase(favoritesClient, favoritesCache)
	toggleFavoriteUseCase := usecase.NewToggleFavoriteUseCase(favoritesClient, sseNotifier)
	listFeaturedUseCase := usecase.NewListFeaturedItemsUseCase(itemCatalog, getUserFavoritesUseCase)
	listRecentUseCase := usecase.NewListRecentlyViewedUseCase(itemCatalog, getUserFavoritesUseCase)
	findItemsUseCase := usecase.NewFindItemsUseCase(itemCatalog)
	signInUseCase := usecase.NewSignInUseCase(identityClient)

	// --- 5. REST API Server ---
	marketplaceHandlers := rest.NewMarketplaceHandler(
		toggleFavoriteUseCase,
		getUserFavoritesUseCase,
		listFeaturedUseCase,
		listRecentUseCase,
		findItemsUseCase,
		sseNotifier,
	)
	authHandlers := rest.NewAuthHandler(signInUseCase)
	sessionGate := rest.NewSessionGate(identityClient)

	apiServer := rest.NewServer(
		appConfig.Rest.PORT,
		appConfig.Rest.AllowedOrigins,
		marketplaceHandlers,
		authHandlers,
		sessionGate,
		baseLogger,
	)
	appLogger.Info("REST API server configured.", nil)

	application := &App{
		config:    appConfig,
		cache:     favoritesCache,
		apiServer: apiServer,

		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.cache != nil {
			if err := a.cache.Close(); err != nil {
				a.logger.Error("Error closing local favorites cache", err, nil)
			} else {
				a.logger.Info("Local favorites cache closed.", nil)
			}
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
	}

	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
