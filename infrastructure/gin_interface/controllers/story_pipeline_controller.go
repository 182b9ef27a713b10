package controllers

import (
	"context"
	"errors"
	"net/http"

	"generate-story-lambda/application/ports/inbound"
	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/domain"
	"generate-story-lambda/infrastructure/gin_interface/dto"
	"generate-story-lambda/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StoryPipelineController interface {
	CreateStory(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type storyPipelineController struct {
	logger        outbound.LoggerPort
	videoPipeline inbound.StoryVideoPipelinePort
}

func NewStoryPipelineController(logger outbound.LoggerPort, videoPipeline inbound.StoryVideoPipelinePort) StoryPipelineController {
	return &storyPipelineController{
		logger:        logger,
		videoPipeline: videoPipeline,
	}
}

func (s *storyPipelineController) CreateStory(c *gin.Context) {
	var createStoryRequest dto.CreateStoryRequest
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	if err := c.ShouldBindJSON(&createStoryRequest); err != nil {
		err = c.AbortWithError(http.StatusBadRequest, err)
		if err != nil {
			s.logger.Error(err, "failed to abort with error")
		}
		return
	}

	runID := uuid.NewString()
	userID := c.GetString(middleware.ContextUserIDKey)

	res, err := s.videoPipeline.Create(newCtx, inbound.CreateStoryParams{
		RunID:      runID,
		PromptSeed: createStoryRequest.PromptSeed,
		UserID:     userID,
	})
	if err != nil {
		s.writeRunError(c, runID, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreateStoryResponse{
		RunID:       res.RunID,
		VideoKey:    res.VideoKey,
		VideoRegion: res.VideoRegion,
		Title:       res.Title,
	})
}

// writeRunError maps the run error taxonomy onto response codes: cancelled
// requests get 499-style treatment, exhausted or rejected runs 502, and
// anything else 500.
func (s *storyPipelineController) writeRunError(c *gin.Context, runID string, err error) {
	var cancelled *domain.CancelledError
	if errors.As(err, &cancelled) {
		s.logger.InfoWithFields("story run cancelled by client", map[string]interface{}{
			"run_id": runID,
		})
		c.AbortWithStatusJSON(http.StatusRequestTimeout, dto.RunErrorResponse{
			RunID:   runID,
			Kind:    string(domain.ErrKindCancelled),
			Message: "story run cancelled",
		})
		return
	}

	var runFailed *domain.RunFailedError
	if errors.As(err, &runFailed) {
		resp := dto.RunErrorResponse{
			RunID:    runID,
			Kind:     string(runFailed.Kind),
			Attempts: runFailed.Attempts,
			Message:  runFailed.Error(),
		}
		if runFailed.LastValidation != nil {
			resp.Reason = string(runFailed.LastValidation.Reason)
		}
		s.logger.ErrorWithFields(err, "story run failed", map[string]interface{}{
			"run_id":   runID,
			"kind":     resp.Kind,
			"attempts": resp.Attempts,
		})
		c.AbortWithStatusJSON(http.StatusBadGateway, resp)
		return
	}

	s.logger.Error(err, "story run failed with unexpected error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.RunErrorResponse{
		RunID:   runID,
		Kind:    string(domain.ErrKindUnknown),
		Message: "internal server error",
	})
}

func (s *storyPipelineController) RegisterRoutes(g *gin.Engine) {
	g.POST("/stories", s.CreateStory)
	g.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
