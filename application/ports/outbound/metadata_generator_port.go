package outbound

import (
	"context"

	"generate-story-lambda/domain"
)

type GenerateMetadataRequest struct {
	StoryText string
	Prompt    string
}

// MetadataGeneratorPort produces SEO title/description/tags for the final
// video. Implementations must degrade to deterministic defaults rather than
// fail the handoff.
type MetadataGeneratorPort interface {
	Generate(ctx context.Context, req GenerateMetadataRequest) (*domain.VideoMetadata, error)
}
