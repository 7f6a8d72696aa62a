package ai

import "context"

// New builds the configured provider wrapped with retries.
func New(ctx context.Context, config *Config, logger Logger) (*RetryingProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}

	var inner Provider
	switch config.Provider {
	case ProviderOpenAI:
		inner = NewOpenAIProvider(config)
	default:
		gemini, err := NewGeminiProvider(ctx, config)
		if err != nil {
			return nil, err
		}
		inner = gemini
	}

	logger.Info("AI provider initialized", "provider", config.Provider, "model", config.Model, "embedding_model", config.EmbeddingModel)
	return NewRetryingProvider(inner, config, logger), nil
}
