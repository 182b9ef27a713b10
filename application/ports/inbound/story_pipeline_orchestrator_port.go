package inbound

import (
	"context"

	"generate-story-lambda/domain"
)

type StartRunParams struct {
	RunID      string
	PromptSeed string
}

// StoryPipelineOrchestratorPort runs the generate/validate/regenerate state
// machine for one story request. The returned run is always non-nil and in a
// terminal state; on failure the error is a *domain.RunFailedError or
// *domain.CancelledError.
type StoryPipelineOrchestratorPort interface {
	Run(ctx context.Context, params StartRunParams) (*domain.PipelineRun, error)
}
