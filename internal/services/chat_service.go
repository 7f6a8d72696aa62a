// File: internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/zelig/zelig-backend/internal/domain"
	"github.com/zelig/zelig-backend/internal/render"
	"github.com/zelig/zelig-backend/internal/repository"
	"github.com/zelig/zelig-backend/internal/services/rag"
)

// ChatResponse is the payload returned by the chat endpoint.
type ChatResponse struct {
	Result     string   `json:"result"`
	Mode       string   `json:"mode"`
	Sources    []string `json:"sources"`
	ResultHTML string   `json:"result_html"`
}

// ChatService ties the RAG engine to the place store.
type ChatService struct {
	engine *rag.Engine
	places repository.PlaceRepository
	logger Logger
}

func NewChatService(engine *rag.Engine, places repository.PlaceRepository, logger Logger) (*ChatService, error) {
	if engine == nil {
		return nil, errors.New("RAG engine is required")
	}
	if places == nil {
		return nil, errors.New("place repository is required")
	}
	return &ChatService{engine: engine, places: places, logger: logger}, nil
}

// Ask answers query and renders the Markdown answer to HTML.
func (s *ChatService) Ask(ctx context.Context, query string) ChatResponse {
	answer := s.engine.Ask(ctx, query)

	resp := ChatResponse{
		Result:  answer.Result,
		Mode:    answer.Mode,
		Sources: answer.Sources,
	}
	if resp.Sources == nil {
		resp.Sources = []string{}
	}

	html, err := render.Markdown(answer.Result)
	if err != nil {
		s.logger.Warn("failed to render answer markdown", "error", err)
	} else {
		resp.ResultHTML = html
	}

	s.logger.Info("chat answered", "mode", answer.Mode, "sources", len(resp.Sources))
	return resp
}

// Seed stores places by name, updating existing records.
func (s *ChatService) Seed(ctx context.Context, places []domain.Place) error {
	if err := s.places.UpsertMany(ctx, places); err != nil {
		return fmt.Errorf("seed places: %w", err)
	}
	return nil
}

// Reindex reloads every stored place into the engine. A retrieval failure
// leaves the engine in keyword mode and is returned to the caller.
func (s *ChatService) Reindex(ctx context.Context) (int, error) {
	places, err := s.places.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.engine.Index(ctx, places); err != nil {
		s.logger.Error("RAG indexing failed, keyword fallback active", "error", err)
		return len(places), err
	}
	s.logger.Info("knowledge base indexed", "places", len(places), "retrieval", s.engine.Indexed())
	return len(places), nil
}

// SavePlace upserts one place and reindexes. Once the place is stored an
// indexing failure only downgrades the engine to keyword mode.
func (s *ChatService) SavePlace(ctx context.Context, place *domain.Place) error {
	if err := s.places.Upsert(ctx, place); err != nil {
		return err
	}
	_, _ = s.Reindex(ctx)
	return nil
}

func (s *ChatService) Places(ctx context.Context) ([]domain.Place, error) {
	return s.places.FindAll(ctx)
}

// RetrievalActive reports whether answers come from vector retrieval.
func (s *ChatService) RetrievalActive() bool {
	return s.engine.Indexed()
}
