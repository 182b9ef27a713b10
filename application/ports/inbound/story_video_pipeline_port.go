package inbound

import "context"

type CreateStoryParams struct {
	RunID      string
	PromptSeed string
	UserID     string
}

type CreateStoryResult struct {
	RunID       string
	VideoKey    string
	VideoRegion string
	Title       string
}

type StoryVideoPipelinePort interface {
	Create(ctx context.Context, params CreateStoryParams) (*CreateStoryResult, error)
}
