package rag

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeEmbedding  ErrorType = "EMBEDDING"
	ErrTypeRetrieval  ErrorType = "RETRIEVAL"
	ErrTypeGeneration ErrorType = "GENERATION"
	ErrTypeNotIndexed ErrorType = "NOT_INDEXED"
)

type RAGError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *RAGError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("RAG %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("RAG %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *RAGError) Unwrap() error {
	return e.Cause
}

func newError(t ErrorType, operation, msg string, cause error) *RAGError {
	return &RAGError{Type: t, Operation: operation, Message: msg, Cause: cause}
}
