package vector

import "context"

// Record is one document vector with string metadata.
type Record struct {
	ID       string
	Values   []float32
	Metadata map[string]string
}

// Match is a scored query result.
type Match struct {
	ID       string
	Score    float32
	Metadata map[string]string
}

// Store is the retrieval capability behind the RAG engine.
type Store interface {
	Upsert(ctx context.Context, records []Record) error
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
	Name() string
}

// Logger interface for vector store operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
