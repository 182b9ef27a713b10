package outbound

import "context"

type PublishVideoRequest struct {
	RunID             string
	VideoFileName     string
	ThumbnailFileName string
}

type PublishVideoResponse struct {
	VideoKey     string
	ThumbnailKey string
	StoreRegion  string
}

type VideoPublisherPort interface {
	Publish(ctx context.Context, req PublishVideoRequest) (*PublishVideoResponse, error)
}
