package service

import (
	"context"
	"log"
	"time"

	"github.com/zisan5910/zisan-trader-pro/internal/cache"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/repository"
	"github.com/zisan5910/zisan-trader-pro/internal/infrastructure/database"
	"github.com/zisan5910/zisan-trader-pro/internal/ledger"
	"github.com/zisan5910/zisan-trader-pro/pkg/apperror"
)

const rateCacheTTL = 10 * time.Minute

// SettingsService manages the commission rate table
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	rateCache    cache.RateCache
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, rateCache cache.RateCache) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		rateCache:    rateCache,
	}
}

// GetRateTable returns the active commission rate table, preferring the
// cache. A missing settings row falls back to the stock defaults.
func (s *SettingsService) GetRateTable(ctx context.Context) (ledger.RateTable, error) {
	table, ok, err := s.rateCache.Get(ctx)
	if err != nil {
		// Cache trouble should not block commissions
		log.Printf("Warning: rate cache read failed: %v", err)
	}
	if ok {
		return table, nil
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		table = database.DefaultRateTable()
	} else {
		table = settings.Rates.Table()
	}

	if err := s.rateCache.Set(ctx, table, rateCacheTTL); err != nil {
		log.Printf("Warning: rate cache write failed: %v", err)
	}
	return table, nil
}

// UpdateRateTable replaces the commission rate table and drops the cached
// copy so the next read sees the new rates.
func (s *SettingsService) UpdateRateTable(ctx context.Context, table ledger.RateTable) (ledger.RateTable, error) {
	if len(table) == 0 {
		return nil, apperror.NewBadRequestError("Rate table cannot be empty")
	}
	for operator, rates := range table {
		if operator == "" {
			return nil, apperror.NewBadRequestError("Operator name cannot be empty")
		}
		if rates.CashIn.IsNegative() || rates.CashOut.IsNegative() || rates.Recharge.IsNegative() {
			return nil, apperror.NewBadRequestError("Commission rates cannot be negative")
		}
	}

	settings := &entity.CommissionSettings{
		Rates: entity.RateTableJSON(table),
	}
	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	if err := s.rateCache.Invalidate(ctx); err != nil {
		log.Printf("Warning: rate cache invalidation failed: %v", err)
	}
	return table, nil
}

// ResetRateTable restores the stock default rates
func (s *SettingsService) ResetRateTable(ctx context.Context) (ledger.RateTable, error) {
	return s.UpdateRateTable(ctx, database.DefaultRateTable())
}
