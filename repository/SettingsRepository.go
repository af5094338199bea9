package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"quotations/models"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the company settings. A missing row yields empty settings so
// documents fall back to the built-in branding.
func (r *SettingsRepository) Get(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	err := r.db.WithContext(ctx).Where("id = ?", models.SettingsSingletonID).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Settings{ID: models.SettingsSingletonID}, nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

// Save upserts the singleton row.
func (r *SettingsRepository) Save(ctx context.Context, s *models.Settings) error {
	s.ID = models.SettingsSingletonID
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
