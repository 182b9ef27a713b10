package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"generate-story-lambda/domain"
)

const (
	DefaultApiMaxAttempts = 5
	DefaultApiBaseDelay   = time.Second
	DefaultApiMaxDelay    = 30 * time.Second
)

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func GetRetryConfig() (*RetryConfig, error) {
	maxAttempts := DefaultApiMaxAttempts
	if raw := os.Getenv("API_RETRY_MAX_ATTEMPTS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse API_RETRY_MAX_ATTEMPTS: %w", err)
		}
		maxAttempts = parsed
	}

	baseDelay := DefaultApiBaseDelay
	if raw := os.Getenv("API_RETRY_BASE_DELAY"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse API_RETRY_BASE_DELAY: %w", err)
		}
		baseDelay = parsed
	}

	maxDelay := DefaultApiMaxDelay
	if raw := os.Getenv("API_RETRY_MAX_DELAY"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse API_RETRY_MAX_DELAY: %w", err)
		}
		maxDelay = parsed
	}

	return &RetryConfig{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		MaxDelay:    maxDelay,
	}, nil
}

func (c *RetryConfig) ToPolicy() domain.RetryPolicy {
	return domain.RetryPolicy{
		MaxAttempts:    c.MaxAttempts,
		BaseDelay:      c.BaseDelay,
		MaxDelay:       c.MaxDelay,
		RetryableKinds: domain.DefaultRetryableKinds(),
	}
}
