package usecase

import (
	"context"

	"github.com/skyegle0602/Rentany-frontend/internal/contextkeys"
	"github.com/skyegle0602/Rentany-frontend/internal/core/domain"
	"github.com/skyegle0602/Rentany-frontend/internal/core/port"
)

// FindItemsUseCase применяет FilterState ко всему каталогу.
// Сама фильтрация - чистая функция domain.ApplyFilters.
type FindItemsUseCase struct {
	catalog port.ItemCatalogPort
}

func NewFindItemsUseCase(catalog port.ItemCatalogPort) *FindItemsUseCase {
	return &FindItemsUseCase{catalog: catalog}
}

func (uc *FindItemsUseCase) Execute(ctx context.Context, filters domain.FilterState) ([]domain.ItemSummary, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindItems",
		"sort_by":  filters.SortBy,
		"category": filters.Category,
	})

	ucLogger.Info("Use case started", nil)

	items, err := uc.catalog.All(ctx)
	if err != nil {
		ucLogger.Error("Catalog returned an error", err, nil)
		return nil, err
	}

	result := domain.ApplyFilters(items, filters)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_items": len(items),
		"matched":     len(result),
	})
	return result, nil
}
