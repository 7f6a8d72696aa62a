package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/zelig/zelig-backend/internal/domain"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

type gormTranslationRepository struct {
	db *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) TranslationRepository {
	return &gormTranslationRepository{db: db}
}

func (r *gormTranslationRepository) Create(ctx context.Context, record *domain.TranslationRecord) error {
	if record.Text == "" {
		return errors.New("validation failed: text is required")
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("database error recording translation: %w", err)
	}
	return nil
}

// FindRecent returns the newest records first. limit is clamped to
// [1, MaxHistoryLimit]; zero or negative means DefaultHistoryLimit.
func (r *gormTranslationRepository) FindRecent(ctx context.Context, limit int) ([]domain.TranslationRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	var records []domain.TranslationRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("database error fetching translations: %w", err)
	}
	return records, nil
}
