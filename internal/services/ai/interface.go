// File: internal/services/ai/interface.go
package ai

import "context"

// CompletionProvider turns a single prompt into text.
type CompletionProvider interface {
	GetCompletion(ctx context.Context, prompt string) (string, error)
	Name() string
}

// EmbeddingProvider handles text embeddings
type EmbeddingProvider interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider combines embedding and completion capabilities
type Provider interface {
	CompletionProvider
	EmbeddingProvider
}

// Logger mirrors services.Logger so this package stays import-free of it.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
