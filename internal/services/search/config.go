package search

import (
	"errors"
	"time"
)

const defaultEndpoint = "https://html.duckduckgo.com/html/"

type Config struct {
	// Endpoint is the DuckDuckGo HTML search URL.
	Endpoint  string
	UserAgent string
	Timeout   time.Duration

	// MaxBodyBytes caps how much of a result page is read.
	MaxBodyBytes int64
}

func DefaultConfig() *Config {
	return &Config{
		Endpoint:     defaultEndpoint,
		UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		Timeout:      20 * time.Second,
		MaxBodyBytes: 1 << 20,
	}
}

func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("search endpoint is required")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("max body bytes must be positive")
	}
	return nil
}
