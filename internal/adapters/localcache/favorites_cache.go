package localcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port"
)

// SQLiteFavoritesCache - локальный снимок избранного, аналог browser local
// storage: одна таблица ключ-значение, значение - JSON-массив записей целиком.
// Ключ строится как favorites_<user_email>. Кэш best-effort и может
// расходиться с удаленным хранилищем между обновлениями.
type SQLiteFavoritesCache struct {
	db *sql.DB
}

// NewSQLiteFavoritesCache открывает (или создает) файл кэша.
func NewSQLiteFavoritesCache(path string) (*SQLiteFavoritesCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to cache database: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS local_storage (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &SQLiteFavoritesCache{db: db}, nil
}

func cacheKey(userEmail string) string {
	return "favorites_" + userEmail
}

// Read возвращает снимок избранного пользователя. Если по ключу ничего нет,
// устанавливает одну демо-запись (вещь "1" в избранном) и возвращает ее -
// так первая загрузка страницы показывает, как выглядит избранное.
func (c *SQLiteFavoritesCache) Read(ctx context.Context, userEmail string) ([]domain.FavoriteRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SQLiteFavoritesCache",
		"cache_key": cacheKey(userEmail),
	})

	var value string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM local_storage WHERE key = ?`, cacheKey(userEmail)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		seed := demoFavorites(userEmail)
		if writeErr := c.Write(ctx, userEmail, seed); writeErr != nil {
			logger.Warn("Failed to install demo favorites", port.Fields{"error": writeErr.Error()})
		}
		logger.Info("Cache empty, installed demo favorites", port.Fields{"count": len(seed)})
		return seed, nil
	}
	if err != nil {
		logger.Error("Cache read failed", err, nil)
		return nil, fmt.Errorf("failed to read favorites cache: %w", err)
	}

	var records []domain.FavoriteRecord
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		// Испорченный снимок не фатален: представление деградирует
		// до пустого списка.
		logger.Error("Cache value is corrupted", err, nil)
		return nil, fmt.Errorf("failed to decode favorites cache: %w", err)
	}

	return records, nil
}

// Write перезаписывает снимок целиком, без слияния с предыдущим значением.
func (c *SQLiteFavoritesCache) Write(ctx context.Context, userEmail string, records []domain.FavoriteRecord) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SQLiteFavoritesCache",
		"cache_key": cacheKey(userEmail),
	})

	if records == nil {
		records = []domain.FavoriteRecord{}
	}
	value, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode favorites cache: %w", err)
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO local_storage (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		cacheKey(userEmail), string(value))
	if err != nil {
		logger.Error("Cache write failed", err, nil)
		return fmt.Errorf("failed to write favorites cache: %w", err)
	}

	logger.Debug("Cache snapshot updated", port.Fields{"count": len(records)})
	return nil
}

// Close закрывает файл кэша.
func (c *SQLiteFavoritesCache) Close() error {
	return c.db.Close()
}

// demoFavorites - демо-запись для первого запуска: первая вещь из подборки
// уже в избранном.
func demoFavorites(userEmail string) []domain.FavoriteRecord {
	now := time.Now().UTC()
	return []domain.FavoriteRecord{
		{
			ID:        "fav_1",
			UserEmail: userEmail,
			ItemID:    "1",
			CreatedAt: &now,
		},
	}
}
