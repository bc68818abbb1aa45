package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port"
)

// ToggleFavoriteUseCase - контроллер переключения избранного.
// inFlight защищает от повторного нажатия по той же паре (пользователь, вещь),
// пока предыдущее переключение не завершилось. Защита действует только внутри
// этого экземпляра: две вкладки на разных инстансах все еще могут гоняться,
// последняя запись в удаленное хранилище побеждает.
type ToggleFavoriteUseCase struct {
	store    port.FavoriteStorePort
	notifier port.NotifierPort

	inFlight sync.Map // ключ "<email>|<item_id>" -> struct{}
}

func NewToggleFavoriteUseCase(store port.FavoriteStorePort, notifier port.NotifierPort) *ToggleFavoriteUseCase {
	return &ToggleFavoriteUseCase{
		store:    store,
		notifier: notifier,
	}
}

// Execute переключает избранное для вещи itemID.
//
// Без аутентифицированного пользователя возвращает domain.ErrNotAuthenticated,
// не делая ни одного сетевого вызова - вызывающая сторона редиректит на вход.
// Ошибки удаленного хранилища логируются и проглатываются: UI не показывает
// постоянного состояния ошибки, истина восстанавливается перечитыванием
// списка через refresh.
func (uc *ToggleFavoriteUseCase) Execute(ctx context.Context, itemID string, favorites []domain.FavoriteRecord, identity *domain.Identity, refresh func(ctx context.Context) error) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ToggleFavorite",
		"item_id":  itemID,
	})

	if identity == nil || !identity.SignedIn {
		ucLogger.Info("No authenticated user, redirecting to sign-in", nil)
		return domain.ErrNotAuthenticated
	}

	ucLogger = ucLogger.WithFields(port.Fields{"user_email": identity.Email})

	key := identity.Email + "|" + itemID
	if _, loaded := uc.inFlight.LoadOrStore(key, struct{}{}); loaded {
		ucLogger.Warn("Toggle already in progress, ignoring", nil)
		return domain.ErrToggleInProgress
	}
	defer uc.inFlight.Delete(key)

	ucLogger.Info("Use case started", nil)

	if domain.IsFavorited(itemID, favorites) {
		if err := uc.removeFavorite(ctx, ucLogger, itemID, favorites); err != nil {
			ucLogger.Error("Failed to remove favorite", err, nil)
			return nil
		}
		uc.notifier.PublishFavoritesChanged(ctx, domain.FavoritesEvent{
			Type:      domain.FavoriteRemoved,
			UserEmail: identity.Email,
			ItemID:    itemID,
		})
	} else {
		record := domain.FavoriteRecord{
			UserEmail: identity.Email,
			ItemID:    itemID,
		}
		if _, err := uc.store.Create(ctx, record); err != nil {
			ucLogger.Error("Failed to create favorite", err, nil)
			return nil
		}
		uc.notifier.PublishFavoritesChanged(ctx, domain.FavoritesEvent{
			Type:      domain.FavoriteAdded,
			UserEmail: identity.Email,
			ItemID:    itemID,
		})
	}

	if refresh != nil {
		if err := refresh(ctx); err != nil {
			ucLogger.Error("Refresh callback failed", err, nil)
			return nil
		}
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

// removeFavorite ищет запись по item_id и удаляет ее по id.
// Запись без id или уже удаленная запись считается отсутствующей:
// двойное удаление сходится, а не всплывает ложной ошибкой.
func (uc *ToggleFavoriteUseCase) removeFavorite(ctx context.Context, logger port.LoggerPort, itemID string, favorites []domain.FavoriteRecord) error {
	record := domain.FindFavoriteByItemID(itemID, favorites)
	if record == nil || record.ID == "" {
		logger.Info("No matching record with id, treating as already absent", nil)
		return nil
	}

	err := uc.store.Delete(ctx, record.ID)
	if errors.Is(err, domain.ErrFavoriteNotFound) {
		logger.Info("Record already deleted remotely", port.Fields{"favorite_id": record.ID})
		return nil
	}
	return err
}
