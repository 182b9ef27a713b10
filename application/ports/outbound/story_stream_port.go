package outbound

import (
	"context"

	"generate-story-lambda/domain"
)

type GenerateStoryRequest struct {
	Prompt      string
	AspectRatio string
	Safety      []domain.SafetySetting
}

// StoryStreamGeneratorPort drives one joint text+image generation call and
// decodes the response incrementally. Chunks are emitted in arrival order as
// soon as they are decoded; the channel closes after the end marker or when
// the underlying stream closes.
type StoryStreamGeneratorPort interface {
	Generate(ctx context.Context, req GenerateStoryRequest) (<-chan domain.Chunk, <-chan error)
}
