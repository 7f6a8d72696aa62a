package rag

import (
	"context"

	"github.com/zelig/zelig-backend/internal/services/vector"
)

// Logger defines the logging interface used across RAG services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Embedder turns text into vectors.
type Embedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer answers a fully built prompt.
type Completer interface {
	GetCompletion(ctx context.Context, prompt string) (string, error)
}

// Answer modes.
const (
	ModeRAG      = "rag"
	ModeFallback = "fallback"
	ModeNone     = "none"
)

// Answer is what Ask returns. Sources lists the place names the answer drew on.
type Answer struct {
	Result  string   `json:"result"`
	Mode    string   `json:"mode"`
	Sources []string `json:"sources"`
}

// Retriever is the vector store surface the engine needs.
type Retriever = vector.Store
