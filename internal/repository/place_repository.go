package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zelig/zelig-backend/internal/domain"
)

var ErrPlaceNotFound = errors.New("place not found")

type gormPlaceRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &gormPlaceRepository{db: db}
}

var placeUpsertClause = clause.OnConflict{
	Columns:   []clause.Column{{Name: "name"}},
	DoUpdates: clause.AssignmentColumns([]string{"description", "safety_tips", "city", "category", "updated_at"}),
}

func (r *gormPlaceRepository) Upsert(ctx context.Context, place *domain.Place) error {
	if err := validatePlace(place); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := r.db.WithContext(ctx).Clauses(placeUpsertClause).Create(place).Error; err != nil {
		return fmt.Errorf("database error upserting place: %w", err)
	}
	return nil
}

// UpsertMany inserts or updates every place by name in one transaction.
func (r *gormPlaceRepository) UpsertMany(ctx context.Context, places []domain.Place) error {
	if len(places) == 0 {
		return nil
	}
	for i := range places {
		if err := validatePlace(&places[i]); err != nil {
			return fmt.Errorf("validation failed for record %d: %w", i, err)
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range places {
			if err := tx.Clauses(placeUpsertClause).Create(&places[i]).Error; err != nil {
				return fmt.Errorf("database error upserting %q: %w", places[i].Name, err)
			}
		}
		return nil
	})
}

// FindAll returns places in insertion order, which the keyword fallback relies on.
func (r *gormPlaceRepository) FindAll(ctx context.Context) ([]domain.Place, error) {
	var places []domain.Place
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&places).Error; err != nil {
		return nil, fmt.Errorf("database error fetching places: %w", err)
	}
	return places, nil
}

func (r *gormPlaceRepository) FindByName(ctx context.Context, name string) (*domain.Place, error) {
	var place domain.Place
	err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&place).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error finding place: %w", err)
	}
	return &place, nil
}

func (r *gormPlaceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Place{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("database error counting places: %w", err)
	}
	return n, nil
}

func validatePlace(p *domain.Place) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("name is required")
	}
	if len(p.Name) > 255 {
		return errors.New("name too long (max 255 characters)")
	}
	return nil
}
