package safety

import (
	"errors"
	"strings"
	"time"
)

type Config struct {
	// QueryTemplate receives the location through a single %s verb.
	QueryTemplate  string
	MaxResults     int
	DangerKeywords []string
	Timeout        time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		QueryTemplate:  "%s Morocco crime safety news recent",
		MaxResults:     3,
		DangerKeywords: []string{"robbery", "theft", "attack", "unsafe", "caution", "pickpocket"},
		Timeout:        30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if strings.Count(c.QueryTemplate, "%s") != 1 {
		return errors.New("query template must contain exactly one %s")
	}
	if c.MaxResults <= 0 {
		return errors.New("max results must be positive")
	}
	if len(c.DangerKeywords) == 0 {
		return errors.New("at least one danger keyword is required")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}
