package repository

import (
	"context"

	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
)

// SettingsRepository defines the interface for the commission settings
// document. There is a single row; Upsert replaces the full rate table.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.CommissionSettings, error)
	Upsert(ctx context.Context, settings *entity.CommissionSettings) error
}
