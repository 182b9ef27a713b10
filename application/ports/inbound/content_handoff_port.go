package inbound

import (
	"context"

	"generate-story-lambda/domain"
)

type HandoffResult struct {
	VideoKey     string
	ThumbnailKey string
	VideoRegion  string
	Metadata     domain.VideoMetadata
}

// ContentHandoffPort turns validated content into the published video. Only
// accepted content ever reaches this port.
type ContentHandoffPort interface {
	Handoff(ctx context.Context, runID string, content domain.ExtractedContent, prompt string) (*HandoffResult, error)
}
