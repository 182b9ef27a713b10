package services

import (
	"generate-story-lambda/application/ports/inbound"
	"generate-story-lambda/domain"
)

type contentValidator struct{}

func NewContentValidator() inbound.ContentValidatorPort {
	return &contentValidator{}
}

// Validate applies the quality gates in order: empty output, minimum segment
// count, then one-image-per-segment correspondence. Pure and side-effect-free.
func (v *contentValidator) Validate(segments []string, images [][]byte, request domain.StoryRequest) domain.ValidationResult {
	result := domain.ValidationResult{
		SegmentCount: len(segments),
		ImageCount:   len(images),
	}

	switch {
	case len(segments) == 0 || len(images) == 0:
		result.Reason = domain.ReasonEmptyOutput
	case len(segments) < request.MinSegments:
		result.Reason = domain.ReasonTooFewSegments
	case len(images) != len(segments):
		result.Reason = domain.ReasonImageCountMismatch
	default:
		result.Reason = domain.ReasonOK
		result.Passed = true
	}

	return result
}
