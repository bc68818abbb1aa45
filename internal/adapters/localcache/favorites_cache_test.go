package localcache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
)

func newTestCache(t *testing.T) *SQLiteFavoritesCache {
	t.Helper()
	cache, err := NewSQLiteFavoritesCache(filepath.Join(t.TempDir(), "local_storage.db"))
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestReadEmptyInstallsDemoRecord(t *testing.T) {
	cache := newTestCache(t)

	records, err := cache.Read(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one demo record, got %+v", records)
	}
	if records[0].ID != "fav_1" || records[0].ItemID != "1" {
		t.Fatalf("unexpected demo record: %+v", records[0])
	}
	if records[0].UserEmail != "user@example.com" {
		t.Fatalf("demo record must belong to the requesting user, got %q", records[0].UserEmail)
	}

	// Повторное чтение возвращает установленную запись, а не сеет заново.
	again, err := cache.Read(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again) != 1 || again[0].ID != "fav_1" {
		t.Fatalf("expected persisted demo record, got %+v", again)
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	cache := newTestCache(t)

	snapshot := []domain.FavoriteRecord{
		{ID: "fav_10", UserEmail: "user@example.com", ItemID: "2"},
		{ID: "fav_11", UserEmail: "user@example.com", ItemID: "3"},
	}
	if err := cache.Write(context.Background(), "user@example.com", snapshot); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := cache.Read(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(records) != 2 || records[0].ID != "fav_10" || records[1].ID != "fav_11" {
		t.Fatalf("unexpected snapshot: %+v", records)
	}
}

func TestWriteReplacesSnapshotWholesale(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	first := []domain.FavoriteRecord{
		{ID: "fav_10", UserEmail: "user@example.com", ItemID: "2"},
		{ID: "fav_11", UserEmail: "user@example.com", ItemID: "3"},
	}
	if err := cache.Write(ctx, "user@example.com", first); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	second := []domain.FavoriteRecord{
		{ID: "fav_12", UserEmail: "user@example.com", ItemID: "5"},
	}
	if err := cache.Write(ctx, "user@example.com", second); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := cache.Read(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	// Без слияния: старые записи не выживают.
	if len(records) != 1 || records[0].ID != "fav_12" {
		t.Fatalf("expected wholesale replacement, got %+v", records)
	}
}

func TestWriteNilStoresEmptyList(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.Write(ctx, "user@example.com", nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := cache.Read(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	// Пустой снимок - валидное состояние, демо-запись не сеется поверх него.
	if len(records) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", records)
	}
}

func TestSnapshotsAreKeyedByEmail(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.Write(ctx, "alice@example.com", []domain.FavoriteRecord{
		{ID: "fav_a", UserEmail: "alice@example.com", ItemID: "1"},
	}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := cache.Write(ctx, "bob@example.com", []domain.FavoriteRecord{
		{ID: "fav_b", UserEmail: "bob@example.com", ItemID: "2"},
	}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	alice, err := cache.Read(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(alice) != 1 || alice[0].ID != "fav_a" {
		t.Fatalf("snapshots leaked between users: %+v", alice)
	}
}

func TestCorruptedSnapshotReturnsError(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	_, err := cache.db.ExecContext(ctx,
		`INSERT INTO local_storage (key, value) VALUES (?, ?)`,
		"favorites_user@example.com", "{not json")
	if err != nil {
		t.Fatalf("failed to plant corrupted value: %v", err)
	}

	if _, err := cache.Read(ctx, "user@example.com"); err == nil {
		t.Fatal("expected error for corrupted snapshot")
	}
}
