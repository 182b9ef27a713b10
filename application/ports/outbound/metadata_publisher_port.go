package outbound

import (
	"context"

	"generate-story-lambda/domain"
)

type PublishMetadataParams struct {
	RunID    string
	VideoKey string
	Metadata domain.VideoMetadata
}

type MetadataPublisherPort interface {
	Publish(ctx context.Context, params PublishMetadataParams) error
}
