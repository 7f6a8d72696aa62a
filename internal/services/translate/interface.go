package translate

import "context"

// Engine translates text in a fixed direction.
type Engine interface {
	Translate(ctx context.Context, text string) (string, error)
	Name() string
}

// Completer is the general-purpose LLM behind the prompt-based translator.
type Completer interface {
	GetCompletion(ctx context.Context, prompt string) (string, error)
}

// Logger defines the logging interface used by translators
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
