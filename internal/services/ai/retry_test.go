package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type flakyProvider struct {
	failures int
	calls    int
	err      error
}

func (f *flakyProvider) Name() string { return "flaky" }

func (f *flakyProvider) GetCompletion(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", f.err
	}
	return "answer: " + prompt, nil
}

func (f *flakyProvider) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return []float32{1, 2}, nil
}

func (f *flakyProvider) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	v, err := f.CreateEmbedding(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = v
	}
	return out, nil
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.APIKey = "k"
	cfg.RetryDelay = time.Millisecond
	cfg.MaxRetries = 3
	return cfg
}

func TestRetryingProvider_RecoversFromTransientError(t *testing.T) {
	inner := &flakyProvider{failures: 2, err: NewProviderError("completion", "boom", nil)}
	p := NewRetryingProvider(inner, testConfig(), nopLogger{})

	got, err := p.GetCompletion(context.Background(), "salam")
	require.NoError(t, err)
	assert.Equal(t, "answer: salam", got)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingProvider_GivesUpAfterMaxRetries(t *testing.T) {
	inner := &flakyProvider{failures: 10, err: errors.New("network down")}
	p := NewRetryingProvider(inner, testConfig(), nopLogger{})

	_, err := p.CreateEmbedding(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryingProvider_DoesNotRetryValidationErrors(t *testing.T) {
	inner := &flakyProvider{failures: 10, err: &AIError{Type: ErrTypeValidation, Operation: "embedding", Message: "bad"}}
	p := NewRetryingProvider(inner, testConfig(), nopLogger{})

	_, err := p.CreateEmbeddings(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)

	var aiErr *AIError
	require.ErrorAs(t, err, &aiErr)
	assert.Equal(t, ErrTypeValidation, aiErr.Type)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(), "missing key")

	cfg.APIKey = "k"
	assert.NoError(t, cfg.Validate())

	cfg.Provider = "mistral"
	assert.Error(t, cfg.Validate())
}

func TestAIErrorUnwrap(t *testing.T) {
	cause := errors.New("quota")
	err := NewProviderError("completion", "failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "caused by: quota")
}
