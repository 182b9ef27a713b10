package config

import (
	"os"

	"generate-story-lambda/domain"
)

const DefaultSafetyThreshold = "BLOCK_NONE"

var harmCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

type SafetyConfig struct {
	Settings []domain.SafetySetting
}

// GetSafetyConfig builds the immutable generation-safety settings once at
// startup. The same threshold applies to every harm category; it is passed
// opaquely into the generation call.
func GetSafetyConfig() *SafetyConfig {
	threshold := os.Getenv("SAFETY_THRESHOLD")
	if threshold == "" {
		threshold = DefaultSafetyThreshold
	}

	settings := make([]domain.SafetySetting, 0, len(harmCategories))
	for _, category := range harmCategories {
		settings = append(settings, domain.SafetySetting{
			Category:  category,
			Threshold: threshold,
		})
	}

	return &SafetyConfig{Settings: settings}
}
