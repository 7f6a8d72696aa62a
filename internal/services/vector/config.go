package vector

import (
	"errors"
	"time"
)

type Config struct {
	APIKey    string
	IndexHost string
	Namespace string

	// Operation settings
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// BatchSize caps vectors per upsert request.
	BatchSize int
}

func DefaultConfig() *Config {
	return &Config{
		Namespace:  "zelig",
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		RetryDelay: time.Second,
		BatchSize:  100,
	}
}

func (c *Config) Validate() error {
	if c.IndexHost == "" {
		return errors.New("pinecone index host is required")
	}
	if c.APIKey == "" {
		return errors.New("pinecone API key is required")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return errors.New("max retries cannot be negative")
	}
	if c.BatchSize <= 0 {
		return errors.New("batch size must be positive")
	}
	return nil
}
