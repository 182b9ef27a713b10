package services

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"generate-story-lambda/application/ports/inbound"
	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/channel_utils"
	"generate-story-lambda/domain"
)

type sceneInput struct {
	ordinal int
	text    string
	image   []byte
}

type sceneMedia struct {
	ordinal       int
	imageFileName string
	audioFileName string
}

type orderedClip struct {
	ordinal int
	clip    outbound.SceneClip
}

type contentHandoff struct {
	logger            outbound.LoggerPort
	workerPool        outbound.TaskDispatcher
	audioSynthesizer  outbound.AudioSynthesizerPort
	sceneCreator      outbound.SceneVideoCreatorPort
	concatenateVideos outbound.ConcatenateVideosPort
	thumbnailRenderer outbound.ThumbnailRendererPort
	metadataGenerator outbound.MetadataGeneratorPort
	artifactStore     outbound.ArtifactStorePort
	videoPublisher    outbound.VideoPublisherPort
	metadataPublisher outbound.MetadataPublisherPort
}

func NewContentHandoff(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	audioSynthesizer outbound.AudioSynthesizerPort, sceneCreator outbound.SceneVideoCreatorPort,
	concatenateVideos outbound.ConcatenateVideosPort, thumbnailRenderer outbound.ThumbnailRendererPort,
	metadataGenerator outbound.MetadataGeneratorPort, artifactStore outbound.ArtifactStorePort,
	videoPublisher outbound.VideoPublisherPort, metadataPublisher outbound.MetadataPublisherPort) inbound.ContentHandoffPort {
	return &contentHandoff{
		logger:            logger,
		workerPool:        workerPool,
		audioSynthesizer:  audioSynthesizer,
		sceneCreator:      sceneCreator,
		concatenateVideos: concatenateVideos,
		thumbnailRenderer: thumbnailRenderer,
		metadataGenerator: metadataGenerator,
		artifactStore:     artifactStore,
		videoPublisher:    videoPublisher,
		metadataPublisher: metadataPublisher,
	}
}

func (s *contentHandoff) Handoff(ctx context.Context, runID string, content domain.ExtractedContent, prompt string) (*inbound.HandoffResult, error) {
	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sceneCh := s.emitScenes(newCtx, content)
	mediaCh, mediaErrCh := s.generateSceneMedia(newCtx, runID, sceneCh)
	clipCh, clipErrCh := s.generateSceneClips(newCtx, mediaCh)

	mergedErrCh, err := channel_utils.MergeChannels(s.workerPool, mediaErrCh, clipErrCh)
	if err != nil {
		s.logger.Error(err, "error merging error channels")
		return nil, err
	}

	clips, err := s.collectClips(newCtx, clipCh, mergedErrCh)
	if err != nil {
		s.logger.Error(err, "error assembling scene clips")
		return nil, err
	}

	sort.Slice(clips, func(i, j int) bool { return clips[i].ordinal < clips[j].ordinal })
	ordered := make([]outbound.SceneClip, 0, len(clips))
	for _, c := range clips {
		ordered = append(ordered, c.clip)
	}

	videoFileName, err := s.concatenateVideos.Concatenate(ordered)
	if err != nil {
		s.logger.Error(err, "error concatenating scene clips")
		return nil, err
	}

	metadata, err := s.metadataGenerator.Generate(newCtx, outbound.GenerateMetadataRequest{
		StoryText: strings.Join(content.Segments, "\n\n"),
		Prompt:    prompt,
	})
	if err != nil {
		s.logger.Error(err, "error generating video metadata")
		return nil, err
	}

	thumbnailFileName, err := s.renderThumbnail(runID, content, metadata.Title)
	if err != nil {
		s.logger.Error(err, "error rendering thumbnail")
		return nil, err
	}

	publishRes, err := s.videoPublisher.Publish(newCtx, outbound.PublishVideoRequest{
		RunID:             runID,
		VideoFileName:     videoFileName,
		ThumbnailFileName: thumbnailFileName,
	})
	if err != nil {
		s.logger.Error(err, "error publishing video")
		return nil, err
	}

	err = s.metadataPublisher.Publish(newCtx, outbound.PublishMetadataParams{
		RunID:    runID,
		VideoKey: publishRes.VideoKey,
		Metadata: *metadata,
	})
	if err != nil {
		s.logger.Error(err, "error publishing video metadata")
		return nil, err
	}

	return &inbound.HandoffResult{
		VideoKey:     publishRes.VideoKey,
		ThumbnailKey: publishRes.ThumbnailKey,
		VideoRegion:  publishRes.StoreRegion,
		Metadata:     *metadata,
	}, nil
}

func (s *contentHandoff) emitScenes(ctx context.Context, content domain.ExtractedContent) <-chan sceneInput {
	out := make(chan sceneInput)

	err := s.workerPool.Submit(func() {
		defer close(out)
		for i, segment := range content.Segments {
			scene := sceneInput{ordinal: i, text: segment, image: content.Images[i]}
			select {
			case out <- scene:
			case <-ctx.Done():
				return
			}
		}
	})
	if err != nil {
		s.logger.Error(err, "failed to submit scene emitter to worker pool")
		close(out)
	}

	return out
}

// generateSceneMedia synthesizes narration audio per scene in parallel,
// uploads the raw image and audio artifacts, and writes both to temp files
// for the video stage.
func (s *contentHandoff) generateSceneMedia(ctx context.Context, runID string, scenes <-chan sceneInput) (<-chan sceneMedia, <-chan error) {
	out := make(chan sceneMedia)
	errCh := make(chan error, 5)

	newCtx, cancel := context.WithCancel(ctx)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		var wg sync.WaitGroup

		for scene := range scenes {
			select {
			case <-newCtx.Done():
				return
			default:
				wg.Add(1)
				sc := scene
				err := s.workerPool.Submit(func() {
					defer wg.Done()

					media, err := s.buildSceneMedia(newCtx, runID, sc)
					if err != nil {
						select {
						case errCh <- err:
						case <-newCtx.Done():
						}
						return
					}

					select {
					case out <- *media:
					case <-newCtx.Done():
					}
				})
				if err != nil {
					wg.Done()
					select {
					case errCh <- err:
					case <-newCtx.Done():
					}
					return
				}
			}
		}

		wg.Wait()
	})
	if err != nil {
		errCh <- err
	}

	return out, errCh
}

func (s *contentHandoff) buildSceneMedia(ctx context.Context, runID string, scene sceneInput) (*sceneMedia, error) {
	audio, err := s.audioSynthesizer.Synthesize(ctx, scene.text)
	if err != nil {
		s.logger.Error(err, "failed to synthesize narration audio")
		return nil, err
	}

	if _, err := s.artifactStore.Save(ctx, outbound.SaveArtifactParams{
		RunID: runID, Kind: "image", Ordinal: scene.ordinal, Content: scene.image,
	}); err != nil {
		s.logger.Error(err, "failed to store scene image")
		return nil, err
	}
	if _, err := s.artifactStore.Save(ctx, outbound.SaveArtifactParams{
		RunID: runID, Kind: "audio", Ordinal: scene.ordinal, Content: audio,
	}); err != nil {
		s.logger.Error(err, "failed to store narration audio")
		return nil, err
	}

	imageFileName, err := s.writeTempFile(scene.image, "scene-image-*")
	if err != nil {
		return nil, err
	}
	audioFileName, err := s.writeTempFile(audio, "scene-audio-*")
	if err != nil {
		return nil, err
	}

	return &sceneMedia{
		ordinal:       scene.ordinal,
		imageFileName: imageFileName,
		audioFileName: audioFileName,
	}, nil
}

func (s *contentHandoff) generateSceneClips(ctx context.Context, media <-chan sceneMedia) (<-chan orderedClip, <-chan error) {
	out := make(chan orderedClip)
	errCh := make(chan error, 5)

	newCtx, cancel := context.WithCancel(ctx)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		var wg sync.WaitGroup

		for m := range media {
			select {
			case <-newCtx.Done():
				return
			default:
				wg.Add(1)
				sceneFiles := m
				err := s.workerPool.Submit(func() {
					defer wg.Done()

					clip, err := s.sceneCreator.Create(sceneFiles.imageFileName, sceneFiles.audioFileName)
					if err != nil {
						select {
						case errCh <- err:
						case <-newCtx.Done():
						}
						return
					}

					select {
					case out <- orderedClip{ordinal: sceneFiles.ordinal, clip: *clip}:
					case <-newCtx.Done():
					}
				})
				if err != nil {
					wg.Done()
					select {
					case errCh <- err:
					case <-newCtx.Done():
					}
					return
				}
			}
		}

		wg.Wait()
	})
	if err != nil {
		errCh <- err
	}

	return out, errCh
}

func (s *contentHandoff) collectClips(ctx context.Context, clipCh <-chan orderedClip, errCh <-chan error) ([]orderedClip, error) {
	clips := make([]orderedClip, 0)
	for {
		select {
		case err, ok := <-errCh:
			if ok {
				return nil, err
			}
			errCh = nil
		case <-ctx.Done():
			return nil, &domain.CancelledError{Err: ctx.Err()}
		case clip, ok := <-clipCh:
			if !ok {
				return clips, nil
			}
			clips = append(clips, clip)
		}
	}
}

func (s *contentHandoff) renderThumbnail(runID string, content domain.ExtractedContent, caption string) (string, error) {
	if len(content.Images) == 0 {
		return "", fmt.Errorf("no images available for thumbnail")
	}
	imageFileName, err := s.writeTempFile(content.Images[0], "thumbnail-source-*")
	if err != nil {
		return "", err
	}
	return s.thumbnailRenderer.Render(imageFileName, caption)
}

func (s *contentHandoff) writeTempFile(content []byte, pattern string) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		s.logger.Error(err, "failed to create temp file")
		return "", err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			s.logger.Error(err, "failed to close temp file")
		}
	}(file)

	if _, err := file.Write(content); err != nil {
		s.logger.Error(err, "failed to write temp file")
		return "", err
	}

	return file.Name(), nil
}
