package repository

import (
	"context"
	"errors"

	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	domainRepo "github.com/zisan5910/zisan-trader-pro/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*entity.CommissionSettings, error) {
	var settings entity.CommissionSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

// Upsert keeps a single settings row: update it when present, create it
// otherwise.
func (r *settingsRepository) Upsert(ctx context.Context, settings *entity.CommissionSettings) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.CommissionSettings
		err := tx.First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(settings).Error
		}
		if err != nil {
			return err
		}
		settings.ID = existing.ID
		return tx.Save(settings).Error
	})
}
