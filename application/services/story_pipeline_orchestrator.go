package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"generate-story-lambda/application/ports/inbound"
	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/domain"
	"generate-story-lambda/retry_utils"
	"github.com/google/uuid"
)

type OrchestratorParams struct {
	MinSegments      int
	MaxStoryAttempts int
	AspectRatio      string
	Safety           []domain.SafetySetting
	ApiRetry         domain.RetryPolicy
}

type storyPipelineOrchestrator struct {
	logger          outbound.LoggerPort
	promptProvider  outbound.PromptProviderPort
	streamGenerator outbound.StoryStreamGeneratorPort
	textProcessor   inbound.StoryTextProcessorPort
	validator       inbound.ContentValidatorPort
	params          OrchestratorParams
}

func NewStoryPipelineOrchestrator(logger outbound.LoggerPort, promptProvider outbound.PromptProviderPort,
	streamGenerator outbound.StoryStreamGeneratorPort, textProcessor inbound.StoryTextProcessorPort,
	validator inbound.ContentValidatorPort, params OrchestratorParams) inbound.StoryPipelineOrchestratorPort {
	return &storyPipelineOrchestrator{
		logger:          logger,
		promptProvider:  promptProvider,
		streamGenerator: streamGenerator,
		textProcessor:   textProcessor,
		validator:       validator,
		params:          params,
	}
}

func (s *storyPipelineOrchestrator) Run(ctx context.Context, params inbound.StartRunParams) (*domain.PipelineRun, error) {
	runID := params.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	storyPolicy := domain.RetryPolicy{
		MaxAttempts:    s.params.MaxStoryAttempts,
		BaseDelay:      s.params.ApiRetry.BaseDelay,
		MaxDelay:       s.params.ApiRetry.MaxDelay,
		RetryableKinds: map[domain.ErrorKind]bool{domain.ErrKindContentQuality: true},
	}

	run := domain.NewPipelineRun(runID, domain.StoryRequest{
		AspectRatio: s.params.AspectRatio,
		MinSegments: s.params.MinSegments,
		Safety:      s.params.Safety,
		Retry:       storyPolicy,
	})

	_ = run.Transition(domain.RunPrompting)
	prompt, err := retry_utils.Execute(ctx, s.params.ApiRetry, domain.KindOf, s.logger,
		func(ctx context.Context) (string, error) {
			return s.promptProvider.GeneratePrompt(ctx, params.PromptSeed)
		})
	if err != nil {
		s.logger.Error(err, "failed to obtain story prompt")
		return s.failRun(run, err)
	}
	run.Request.Prompt = prompt

	for {
		attempt, err := run.BeginAttempt(time.Now())
		if err != nil {
			return s.failRun(run, err)
		}
		_ = run.Transition(domain.RunGenerating)
		s.logger.InfoWithFields("starting generation attempt", map[string]interface{}{
			"run_id":  run.ID,
			"attempt": attempt.Index + 1,
		})

		generateReq := outbound.GenerateStoryRequest{
			Prompt:      run.Request.Prompt,
			AspectRatio: run.Request.AspectRatio,
			Safety:      run.Request.Safety,
		}
		chunks, err := retry_utils.Execute(ctx, s.params.ApiRetry, domain.KindOf, s.logger,
			func(ctx context.Context) ([]domain.Chunk, error) {
				return s.collectChunks(ctx, generateReq)
			})
		if err != nil {
			return s.failRun(run, err)
		}
		attempt.Chunks = chunks

		_ = run.Transition(domain.RunValidating)
		content := s.extractContent(chunks)
		result := s.validator.Validate(content.Segments, content.Images, run.Request)
		run.LastValidation = &result

		if result.Passed {
			run.ResolveAttempt(domain.AttemptSucceeded)
			run.AcceptedContent = &content
			_ = run.Transition(domain.RunAccepted)
			s.logger.InfoWithFields("content accepted", map[string]interface{}{
				"run_id":   run.ID,
				"attempts": len(run.Attempts),
				"segments": result.SegmentCount,
				"images":   result.ImageCount,
			})
			return run, nil
		}

		run.ResolveAttempt(domain.AttemptFailed)
		s.logger.WarnWithFields("generated content rejected", map[string]interface{}{
			"run_id":   run.ID,
			"attempt":  attempt.Index + 1,
			"reason":   string(result.Reason),
			"segments": result.SegmentCount,
			"images":   result.ImageCount,
		})

		if len(run.Attempts) >= run.Request.Retry.MaxAttempts {
			_ = run.Transition(domain.RunFailed)
			return run, &domain.RunFailedError{
				Kind:           domain.ErrKindContentQuality,
				Attempts:       len(run.Attempts),
				LastValidation: &result,
				Err:            &domain.ContentQualityError{Result: result},
			}
		}
		_ = run.Transition(domain.RunRegenerating)
	}
}

// collectChunks consumes one full generation stream in arrival order. The
// stream is lazy: chunks are appended as they arrive so a failed attempt
// still yields whatever was decoded before the failure.
func (s *storyPipelineOrchestrator) collectChunks(ctx context.Context, req outbound.GenerateStoryRequest) ([]domain.Chunk, error) {
	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	chunkCh, errCh := s.streamGenerator.Generate(newCtx, req)

	chunks := make([]domain.Chunk, 0)
	for {
		select {
		case <-ctx.Done():
			return nil, &domain.CancelledError{Err: ctx.Err()}
		case err, ok := <-errCh:
			if ok {
				return nil, err
			}
			errCh = nil
		case chunk, ok := <-chunkCh:
			if !ok {
				return chunks, nil
			}
			chunks = append(chunks, chunk)
			if chunk.Kind == domain.EndMarker {
				return chunks, nil
			}
		}
	}
}

func (s *storyPipelineOrchestrator) extractContent(chunks []domain.Chunk) domain.ExtractedContent {
	var builder strings.Builder
	images := make([][]byte, 0)
	for _, chunk := range chunks {
		switch chunk.Kind {
		case domain.TextChunk:
			builder.WriteString(chunk.Text)
		case domain.ImageChunk:
			images = append(images, chunk.Image)
		case domain.EndMarker:
		}
	}
	return domain.ExtractedContent{
		Segments: s.textProcessor.Clean(builder.String()),
		Images:   images,
	}
}

// failRun resolves the run into its terminal state. Cancellation is kept
// distinct from failure: the pending attempt is discarded rather than counted
// and the caller receives a *domain.CancelledError.
func (s *storyPipelineOrchestrator) failRun(run *domain.PipelineRun, err error) (*domain.PipelineRun, error) {
	if domain.IsCancelled(err) {
		run.DiscardCurrentAttempt()
		_ = run.Transition(domain.RunCancelled)
		var cancelled *domain.CancelledError
		if errors.As(err, &cancelled) {
			return run, cancelled
		}
		return run, &domain.CancelledError{Err: err}
	}

	run.ResolveAttempt(domain.AttemptFailed)
	_ = run.Transition(domain.RunFailed)
	return run, &domain.RunFailedError{
		Kind:           domain.KindOf(err),
		Attempts:       len(run.Attempts),
		LastValidation: run.LastValidation,
		Err:            err,
	}
}
