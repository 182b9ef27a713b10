package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	DefaultMinSegments      = 6
	DefaultMaxStoryAttempts = 3

	// The generation prompt asks for widescreen imagery; no other ratio is
	// supported downstream.
	AspectRatio = "16:9"
)

type PipelineConfig struct {
	MinSegments      int
	MaxStoryAttempts int
	AspectRatio      string
}

func GetPipelineConfig() (*PipelineConfig, error) {
	minSegments := DefaultMinSegments
	if raw := os.Getenv("MIN_SEGMENTS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse MIN_SEGMENTS: %w", err)
		}
		minSegments = parsed
	}

	maxAttempts := DefaultMaxStoryAttempts
	if raw := os.Getenv("MAX_STORY_ATTEMPTS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse MAX_STORY_ATTEMPTS: %w", err)
		}
		maxAttempts = parsed
	}

	return &PipelineConfig{
		MinSegments:      minSegments,
		MaxStoryAttempts: maxAttempts,
		AspectRatio:      AspectRatio,
	}, nil
}
