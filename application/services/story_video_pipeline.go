package services

import (
	"context"
	"fmt"

	"generate-story-lambda/application/ports/inbound"
	"generate-story-lambda/application/ports/outbound"
)

type storyVideoPipeline struct {
	logger       outbound.LoggerPort
	orchestrator inbound.StoryPipelineOrchestratorPort
	handoff      inbound.ContentHandoffPort
	runArchive   outbound.RunArchivePort
}

func NewStoryVideoPipeline(logger outbound.LoggerPort, orchestrator inbound.StoryPipelineOrchestratorPort,
	handoff inbound.ContentHandoffPort, runArchive outbound.RunArchivePort) inbound.StoryVideoPipelinePort {
	return &storyVideoPipeline{
		logger:       logger,
		orchestrator: orchestrator,
		handoff:      handoff,
		runArchive:   runArchive,
	}
}

func (s *storyVideoPipeline) Create(ctx context.Context, params inbound.CreateStoryParams) (*inbound.CreateStoryResult, error) {
	run, runErr := s.orchestrator.Run(ctx, inbound.StartRunParams{
		RunID:      params.RunID,
		PromptSeed: params.PromptSeed,
	})

	if err := s.runArchive.Archive(ctx, run); err != nil {
		s.logger.ErrorWithFields(err, "failed to archive run record", map[string]interface{}{
			"run_id": run.ID,
		})
	}

	if runErr != nil {
		return nil, runErr
	}
	if run.AcceptedContent == nil {
		return nil, fmt.Errorf("run %s accepted without content", run.ID)
	}

	result, err := s.handoff.Handoff(ctx, run.ID, *run.AcceptedContent, run.Request.Prompt)
	if err != nil {
		return nil, err
	}

	s.logger.InfoWithFields("story video published", map[string]interface{}{
		"run_id":    run.ID,
		"user_id":   params.UserID,
		"video_key": result.VideoKey,
	})

	return &inbound.CreateStoryResult{
		RunID:       run.ID,
		VideoKey:    result.VideoKey,
		VideoRegion: result.VideoRegion,
		Title:       result.Metadata.Title,
	}, nil
}
