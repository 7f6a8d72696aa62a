// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	defaultEmbedBatchSize = 100
)

type Config struct {
	// Provider selects the backend: "gemini" or "openai".
	Provider string

	APIKey  string
	BaseURL string // OpenAI-compatible endpoints only

	Model          string
	EmbeddingModel string

	// EmbedBatchSize caps texts per embedding request. Gemini rejects
	// batches above 100.
	EmbedBatchSize int

	// Performance Configuration
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	Temperature float32
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown AI provider %q", c.Provider)
	}
	if c.APIKey == "" {
		return fmt.Errorf("API key is required for %s", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1")
	}
	if c.EmbedBatchSize < 0 {
		return fmt.Errorf("embed batch size cannot be negative")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderGemini,
		Model:          "gemini-2.5-flash",
		EmbeddingModel: "gemini-embedding-001",
		EmbedBatchSize: defaultEmbedBatchSize,
		Timeout:        60 * time.Second,
		MaxRetries:     2,
		RetryDelay:     time.Second,
		Temperature:    0.3,
	}
}
