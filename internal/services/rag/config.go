package rag

import (
	"fmt"
	"time"
)

type Config struct {
	// RetrievalTopK is the number of documents stuffed into the prompt.
	RetrievalTopK int

	// Timeout bounds one Ask call across embedding, retrieval and generation.
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.RetrievalTopK <= 0 {
		return fmt.Errorf("retrieval_top_k must be positive")
	}
	if c.RetrievalTopK > 20 {
		return fmt.Errorf("retrieval_top_k cannot exceed 20")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		RetrievalTopK: 3,
		Timeout:       90 * time.Second,
	}
}
