package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"quotations/models"
)

type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Save stores one audit entry, stamping it with the current time when unset.
func (r *ActivityLogRepository) Save(ctx context.Context, log models.ActivityLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(&log).Error; err != nil {
		return fmt.Errorf("save activity log: %w", err)
	}
	return nil
}

// Page returns one page of entries, newest first, with the total count.
func (r *ActivityLogRepository) Page(ctx context.Context, page, limit int) ([]models.ActivityLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count activity logs: %w", err)
	}
	var out []models.ActivityLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list activity logs: %w", err)
	}
	return out, total, nil
}
