package rag

import (
	"context"
	"strings"
	"sync"

	"github.com/zelig/zelig-backend/internal/domain"
	"github.com/zelig/zelig-backend/internal/services/vector"
)

// Engine answers travel questions from the knowledge base. It uses vector
// retrieval plus generation when indexed, and keyword search otherwise.
type Engine struct {
	config    *Config
	embedder  Embedder
	store     Retriever
	completer Completer
	logger    Logger

	// indexMu serializes Index so an older snapshot cannot finish last.
	indexMu sync.Mutex

	mu      sync.RWMutex
	places  []domain.Place
	indexed bool
}

// NewEngine builds an engine. Any of embedder, store or completer may be nil,
// in which case the engine only ever answers through keyword search.
func NewEngine(config *Config, embedder Embedder, store Retriever, completer Completer, logger Logger) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, newError(ErrTypeConfig, "init", err.Error(), nil)
	}
	return &Engine{
		config:    config,
		embedder:  embedder,
		store:     store,
		completer: completer,
		logger:    logger,
	}, nil
}

// Index replaces the known places and pushes their embeddings to the store.
// On failure the engine keeps serving keyword answers and the error is returned.
func (e *Engine) Index(ctx context.Context, places []domain.Place) error {
	e.indexMu.Lock()
	defer e.indexMu.Unlock()

	snapshot := make([]domain.Place, len(places))
	copy(snapshot, places)

	e.mu.Lock()
	e.places = snapshot
	e.indexed = false
	e.mu.Unlock()

	if len(snapshot) == 0 {
		e.logger.Warn("knowledge base is empty, keyword mode only")
		return nil
	}
	if !e.canRetrieve() {
		e.logger.Info("retrieval not configured, keyword mode only", "places", len(snapshot))
		return nil
	}

	docs := make([]Document, len(snapshot))
	texts := make([]string, len(snapshot))
	for i, p := range snapshot {
		docs[i] = NewDocument(p)
		texts[i] = docs[i].Content
	}

	vectors, err := e.embedder.CreateEmbeddings(ctx, texts)
	if err != nil {
		return newError(ErrTypeEmbedding, "index", "failed to embed documents", err)
	}
	if len(vectors) != len(docs) {
		return newError(ErrTypeEmbedding, "index", "embedding count does not match documents", nil)
	}

	records := make([]vector.Record, len(docs))
	for i, d := range docs {
		records[i] = vector.Record{
			ID:       d.ID,
			Values:   vectors[i],
			Metadata: map[string]string{metaSource: d.Source, metaContent: d.Content},
		}
	}
	if err := e.store.Upsert(ctx, records); err != nil {
		return newError(ErrTypeRetrieval, "index", "failed to upsert documents", err)
	}

	e.mu.Lock()
	e.indexed = true
	e.mu.Unlock()

	e.logger.Info("RAG index ready", "documents", len(records), "store", e.store.Name())
	return nil
}

// Ask answers query. It never fails: retrieval or generation errors are
// logged and the keyword fallback answers instead.
func (e *Engine) Ask(ctx context.Context, query string) Answer {
	e.mu.RLock()
	places := e.places
	indexed := e.indexed
	e.mu.RUnlock()

	if indexed {
		answer, err := e.askRAG(ctx, query)
		if err == nil {
			return answer
		}
		e.logger.Error("RAG invocation failed, using keyword fallback", "error", err)
	}
	return fallbackAnswer(places, query)
}

// Indexed reports whether vector retrieval is active.
func (e *Engine) Indexed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.indexed
}

// Places returns the number of known places.
func (e *Engine) Places() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.places)
}

func (e *Engine) askRAG(ctx context.Context, query string) (Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	e.logger.Debug("RAG query", "query", query)

	vec, err := e.embedder.CreateEmbedding(ctx, query)
	if err != nil {
		return Answer{}, newError(ErrTypeEmbedding, "ask", "failed to embed query", err)
	}

	matches, err := e.store.Query(ctx, vec, e.config.RetrievalTopK)
	if err != nil {
		return Answer{}, newError(ErrTypeRetrieval, "ask", "vector query failed", err)
	}

	contextText, sources := BuildContext(matches)
	answer, err := e.completer.GetCompletion(ctx, BuildPrompt(contextText, query))
	if err != nil {
		return Answer{}, newError(ErrTypeGeneration, "ask", "completion failed", err)
	}

	return Answer{Result: strings.TrimSpace(answer), Mode: ModeRAG, Sources: sources}, nil
}

func (e *Engine) canRetrieve() bool {
	return e.embedder != nil && e.store != nil && e.completer != nil
}
