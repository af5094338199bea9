package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quotations/models"
)

// AdminListLimit caps the admin tracking list.
const AdminListLimit = 100

const numberAttempts = 3

type QuotationRepository struct {
	db     *gorm.DB
	prefix string
}

func NewQuotationRepository(db *gorm.DB, prefix string) *QuotationRepository {
	return &QuotationRepository{db: db, prefix: prefix}
}

// NextNumber derives the next quotation number from the most recently created one.
func (r *QuotationRepository) NextNumber(ctx context.Context) (string, error) {
	var last models.Quotation
	err := r.db.WithContext(ctx).
		Select("quotation_number").
		Where("quotation_number LIKE ?", r.prefix+"-%").
		Order("created_at DESC").
		Order("quotation_number DESC").
		Take(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NextQuotationNumber(r.prefix, ""), nil
	}
	if err != nil {
		return "", fmt.Errorf("read last quotation number: %w", err)
	}
	return NextQuotationNumber(r.prefix, last.QuotationNumber), nil
}

// Create allocates a number and inserts q. A concurrent insert that wins the
// same number makes the unique index reject ours, and the allocation is retried.
func (r *QuotationRepository) Create(ctx context.Context, q *models.Quotation) error {
	var err error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		q.QuotationNumber, err = r.NextNumber(ctx)
		if err != nil {
			return err
		}
		err = r.db.WithContext(ctx).Create(q).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create quotation: %w", err)
		}
		q.ID = uuid.Nil
	}
	return fmt.Errorf("create quotation after %d attempts: %w", numberAttempts, err)
}

func (r *QuotationRepository) Get(ctx context.Context, id uuid.UUID) (*models.Quotation, error) {
	var q models.Quotation
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&q).Error; err != nil {
		return nil, notFound(err, "get quotation")
	}
	return &q, nil
}

// GetByNumber looks a quotation up by its PREFIX-n number.
func (r *QuotationRepository) GetByNumber(ctx context.Context, number string) (*models.Quotation, error) {
	var q models.Quotation
	if err := r.db.WithContext(ctx).Where("quotation_number = ?", number).Take(&q).Error; err != nil {
		return nil, notFound(err, "get quotation by number")
	}
	return &q, nil
}

// ListByCreator returns the quotations created by one user, newest first.
func (r *QuotationRepository) ListByCreator(ctx context.Context, creator uuid.UUID) ([]models.Quotation, error) {
	var out []models.Quotation
	err := r.db.WithContext(ctx).
		Where("created_by = ?", creator).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	return out, nil
}

// ListRecent returns the newest quotations with the creator's name for the admin tracking view.
func (r *QuotationRepository) ListRecent(ctx context.Context, limit int) ([]models.QuotationSummary, error) {
	if limit <= 0 || limit > AdminListLimit {
		limit = AdminListLimit
	}
	var out []models.QuotationSummary
	err := r.db.WithContext(ctx).
		Table("quotations AS q").
		Select(`q.id, q.quotation_number, q.customer_name, q.grand_total, q.created_at,
			q.pdf_url, q.status, q.created_by, COALESCE(p.full_name, '') AS created_by_name`).
		Joins("LEFT JOIN profiles AS p ON p.id = q.created_by").
		Order("q.created_at DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list recent quotations: %w", err)
	}
	return out, nil
}

// ListAll streams every quotation for export, oldest first.
func (r *QuotationRepository) ListAll(ctx context.Context) ([]models.Quotation, error) {
	var out []models.Quotation
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list all quotations: %w", err)
	}
	return out, nil
}

func (r *QuotationRepository) UpdatePDFURL(ctx context.Context, id uuid.UUID, url string) error {
	res := r.db.WithContext(ctx).Model(&models.Quotation{}).Where("id = ?", id).Update("pdf_url", url)
	if res.Error != nil {
		return fmt.Errorf("update pdf url: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update pdf url: %w", ErrNotFound)
	}
	return nil
}

// ExpireStale marks active quotations whose validity ended before now as expired.
func (r *QuotationRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	var active []models.Quotation
	err := r.db.WithContext(ctx).
		Select("id", "created_at", "validity_days").
		Where("status = ?", models.QuotationStatusActive).
		Find(&active).Error
	if err != nil {
		return 0, fmt.Errorf("load active quotations: %w", err)
	}

	var stale []uuid.UUID
	for _, q := range active {
		if q.ValidUntil().Before(now) {
			stale = append(stale, q.ID)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).Model(&models.Quotation{}).
		Where("id IN ?", stale).
		Update("status", models.QuotationStatusExpired)
	if res.Error != nil {
		return 0, fmt.Errorf("expire quotations: %w", res.Error)
	}
	return res.RowsAffected, nil
}
