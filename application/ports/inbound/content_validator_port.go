package inbound

import "generate-story-lambda/domain"

// ContentValidatorPort applies the quality gates to extracted content. Pure:
// identical inputs always yield identical results.
type ContentValidatorPort interface {
	Validate(segments []string, images [][]byte, request domain.StoryRequest) domain.ValidationResult
}
