// File: internal/repository/interface.go
package repository

import (
	"context"

	"github.com/zelig/zelig-backend/internal/domain"
)

// PlaceRepository handles knowledge-base records.
type PlaceRepository interface {
	Upsert(ctx context.Context, place *domain.Place) error
	UpsertMany(ctx context.Context, places []domain.Place) error
	FindAll(ctx context.Context) ([]domain.Place, error)
	FindByName(ctx context.Context, name string) (*domain.Place, error)
	Count(ctx context.Context) (int64, error)
}

// TranslationRepository records served translations.
type TranslationRepository interface {
	Create(ctx context.Context, record *domain.TranslationRecord) error
	FindRecent(ctx context.Context, limit int) ([]domain.TranslationRecord, error)
}
