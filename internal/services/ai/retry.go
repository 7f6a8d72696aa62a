package ai

import (
	"context"
	"errors"
	"time"
)

// RetryingProvider wraps a Provider with a per-call timeout and bounded retries.
type RetryingProvider struct {
	inner  Provider
	config *Config
	logger Logger
}

func NewRetryingProvider(inner Provider, config *Config, logger Logger) *RetryingProvider {
	return &RetryingProvider{inner: inner, config: config, logger: logger}
}

func (r *RetryingProvider) Name() string { return r.inner.Name() }

func (r *RetryingProvider) GetCompletion(ctx context.Context, prompt string) (string, error) {
	var out string
	err := r.do(ctx, "completion", func(ctx context.Context) error {
		var err error
		out, err = r.inner.GetCompletion(ctx, prompt)
		return err
	})
	return out, err
}

func (r *RetryingProvider) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	var out []float32
	err := r.do(ctx, "embedding", func(ctx context.Context) error {
		var err error
		out, err = r.inner.CreateEmbedding(ctx, text)
		return err
	})
	return out, err
}

func (r *RetryingProvider) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	var out [][]float32
	err := r.do(ctx, "embedding_batch", func(ctx context.Context) error {
		var err error
		out, err = r.inner.CreateEmbeddings(ctx, texts)
		return err
	})
	return out, err
}

func (r *RetryingProvider) do(parent context.Context, operation string, call func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, r.config.Timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt < r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return NewProviderError(operation, "timed out during retry", ctx.Err())
			case <-time.After(r.config.RetryDelay):
			}
		}

		err := call(ctx)
		if err == nil {
			if attempt > 0 {
				r.logger.Info("AI call succeeded after retry", "operation", operation, "attempts", attempt+1)
			}
			return nil
		}
		lastErr = err

		if !retryable(err) || ctx.Err() != nil {
			break
		}
		r.logger.Warn("AI call failed, retrying", "operation", operation, "attempt", attempt+1, "error", err)
	}

	r.logger.Error("AI call failed", "operation", operation, "provider", r.inner.Name(), "error", lastErr)
	return lastErr
}

func retryable(err error) bool {
	var aiErr *AIError
	if errors.As(err, &aiErr) {
		return aiErr.Type == ErrTypeProvider || aiErr.Type == ErrTypeNetwork
	}
	return true
}
