// File: internal/services/translation_service.go
package services

import (
	"context"
	"errors"

	"github.com/zelig/zelig-backend/internal/domain"
	"github.com/zelig/zelig-backend/internal/repository"
	"github.com/zelig/zelig-backend/internal/services/translate"
)

// TranslationService serves hybrid translations and keeps a history.
type TranslationService struct {
	hybrid  *translate.Hybrid
	history repository.TranslationRepository
	logger  Logger
}

// NewTranslationService builds the service. history may be nil.
func NewTranslationService(hybrid *translate.Hybrid, history repository.TranslationRepository, logger Logger) (*TranslationService, error) {
	if hybrid == nil {
		return nil, errors.New("hybrid translator is required")
	}
	return &TranslationService{hybrid: hybrid, history: history, logger: logger}, nil
}

// Translate runs one request. Failures are reported inside the Result.
func (s *TranslationService) Translate(ctx context.Context, text, direction string) translate.Result {
	dir := translate.ParseDirection(direction)
	result := s.hybrid.Translate(ctx, text, dir)

	s.logger.Info("translation served", "direction", dir, "engine", result.Engine, "verified", result.Verification != nil && result.Verification.Verified)
	s.record(ctx, text, dir, result)
	return result
}

func (s *TranslationService) History(ctx context.Context, limit int) ([]domain.TranslationRecord, error) {
	if s.history == nil {
		return []domain.TranslationRecord{}, nil
	}
	return s.history.FindRecent(ctx, limit)
}

func (s *TranslationService) record(ctx context.Context, text string, dir translate.Direction, result translate.Result) {
	if s.history == nil {
		return
	}

	rec := &domain.TranslationRecord{
		Text:        text,
		Direction:   string(dir),
		Translation: result.Translation,
		Engine:      result.Engine,
	}
	if v := result.Verification; v != nil {
		rec.Verified = v.Verified
		rec.Score = v.Score
		rec.Label = v.Label
	}

	// history is best effort; the caller already has its answer
	if err := s.history.Create(context.WithoutCancel(ctx), rec); err != nil {
		s.logger.Warn("failed to record translation", "error", err)
	}
}
