package mock_generator

import (
	"context"
	"encoding/base64"
	"time"

	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/domain"
)

type scriptedStoryStream struct {
	logger      outbound.LoggerPort
	workerPool  outbound.TaskDispatcher
	chunkReader ChunkReader
	fileName    string
}

// NewScriptedStoryStream replays chunks from a JSON script with their
// configured delays. Used in place of the real generation backend when the
// service runs in mock mode.
func NewScriptedStoryStream(chunkReader ChunkReader, fileName string, workerPool outbound.TaskDispatcher, logger outbound.LoggerPort) outbound.StoryStreamGeneratorPort {
	return &scriptedStoryStream{
		logger:      logger,
		workerPool:  workerPool,
		chunkReader: chunkReader,
		fileName:    fileName,
	}
}

func (s *scriptedStoryStream) Generate(ctx context.Context, req outbound.GenerateStoryRequest) (<-chan domain.Chunk, <-chan error) {
	out := make(chan domain.Chunk)
	errCh := make(chan error, 1)

	newCtx, cancel := context.WithCancel(ctx)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		scripted, err := s.chunkReader.Read(s.fileName)
		if err != nil {
			errCh <- err
			return
		}

		for _, sc := range scripted {
			if sc.Delay > 0 {
				select {
				case <-time.After(time.Duration(sc.Delay) * time.Millisecond):
				case <-newCtx.Done():
					return
				}
			}

			chunk, err := s.toChunk(sc)
			if err != nil {
				errCh <- err
				return
			}

			select {
			case out <- chunk:
			case <-newCtx.Done():
				return
			}

			if chunk.Kind == domain.EndMarker {
				return
			}
		}
	})
	if err != nil {
		s.logger.Error(err, "failed to submit task to worker pool")
		errCh <- err
	}

	return out, errCh
}

func (s *scriptedStoryStream) toChunk(sc ScriptedChunk) (domain.Chunk, error) {
	switch sc.Kind {
	case "image":
		decoded, err := base64.StdEncoding.DecodeString(sc.ImageB64)
		if err != nil {
			s.logger.Error(err, "failed to decode scripted image chunk")
			return domain.Chunk{}, err
		}
		return domain.NewImageChunk(decoded), nil
	case "end":
		return domain.NewEndMarker(), nil
	default:
		return domain.NewTextChunk(sc.Text), nil
	}
}
