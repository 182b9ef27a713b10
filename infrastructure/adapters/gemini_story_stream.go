package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/config"
	"generate-story-lambda/domain"
	"github.com/donovanhide/eventsource"
)

// MaxDecodeErrors bounds how many malformed stream events are skipped before
// the whole stream is abandoned.
const MaxDecodeErrors = 5

type geminiStoryStream struct {
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
	workerPool   outbound.TaskDispatcher
}

func NewGeminiStoryStream(geminiConfig *config.GeminiConfig, workerPool outbound.TaskDispatcher, logger outbound.LoggerPort) outbound.StoryStreamGeneratorPort {
	return &geminiStoryStream{
		logger:       logger,
		geminiConfig: geminiConfig,
		workerPool:   workerPool,
	}
}

func (g *geminiStoryStream) Generate(ctx context.Context, req outbound.GenerateStoryRequest) (<-chan domain.Chunk, <-chan error) {
	out := make(chan domain.Chunk)
	errCh := make(chan error, 1)

	newCtx, cancel := context.WithCancel(ctx)

	err := g.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		httpReq, err := g.createRequest(newCtx, req)
		if err != nil {
			g.logger.Error(err, "Failed to create HTTP request for story stream")
			errCh <- err
			return
		}

		stream, err := eventsource.SubscribeWithRequest("", httpReq)
		if err != nil {
			g.logger.Error(err, "Failed to subscribe to story stream")
			errCh <- g.classifyStreamError(err)
			return
		}
		defer stream.Close()

		decodeErrors := 0
		decodedAny := false
		for {
			select {
			case <-newCtx.Done():
				return
			case ev := <-stream.Events:
				chunks, done, err := g.decodeEvent(ev.Data())
				if err != nil {
					decodeErrors++
					g.logger.WarnWithFields("Skipping malformed stream event", map[string]interface{}{
						"decode_errors": decodeErrors,
					})
					if decodeErrors >= MaxDecodeErrors && !decodedAny {
						errCh <- &domain.ApiError{
							Kind:    domain.ErrKindServerError,
							Message: "stream yielded no decodable chunks",
						}
						return
					}
					continue
				}
				if len(chunks) > 0 {
					decodedAny = true
				}
				for _, chunk := range chunks {
					select {
					case out <- chunk:
					case <-newCtx.Done():
						return
					}
				}
				if done {
					select {
					case out <- domain.NewEndMarker():
					case <-newCtx.Done():
					}
					return
				}
			case err := <-stream.Errors:
				if err == io.EOF {
					select {
					case out <- domain.NewEndMarker():
					case <-newCtx.Done():
					}
					return
				}
				g.logger.Error(err, "Error occurred during story streaming")
				errCh <- g.classifyStreamError(err)
				return
			}
		}
	})
	if err != nil {
		g.logger.Error(err, "Failed to submit task to worker pool")
		errCh <- err
	}

	return out, errCh
}

// decodeEvent turns one SSE payload into ordered chunks. A candidate carrying
// a finish reason marks the stream complete.
func (g *geminiStoryStream) decodeEvent(data string) ([]domain.Chunk, bool, error) {
	var body geminiResponse
	if err := json.Unmarshal([]byte(data), &body); err != nil {
		return nil, false, err
	}
	if len(body.Candidates) == 0 {
		return nil, false, fmt.Errorf("stream event carried no candidates")
	}

	candidate := body.Candidates[0]
	chunks := make([]domain.Chunk, 0, len(candidate.Content.Parts))
	for _, part := range candidate.Content.Parts {
		switch {
		case part.InlineData != nil:
			decoded, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, false, err
			}
			chunks = append(chunks, domain.NewImageChunk(decoded))
		case part.Text != "":
			chunks = append(chunks, domain.NewTextChunk(part.Text))
		}
	}

	return chunks, candidate.FinishReason != "", nil
}

func (g *geminiStoryStream) classifyStreamError(err error) error {
	var subErr eventsource.SubscriptionError
	if ok := errorsAsSubscription(err, &subErr); ok {
		return domain.ApiErrorFromStatus(subErr.Code, subErr.Message)
	}
	return err
}

func errorsAsSubscription(err error, target *eventsource.SubscriptionError) bool {
	if sub, ok := err.(eventsource.SubscriptionError); ok {
		*target = sub
		return true
	}
	return false
}

func (g *geminiStoryStream) createRequest(ctx context.Context, req outbound.GenerateStoryRequest) (*http.Request, error) {
	prompt := fmt.Sprintf("%s\n\nGenerate one illustration per story paragraph, in a %s widescreen aspect ratio.",
		req.Prompt, req.AspectRatio)

	safety := make([]geminiSafetySetting, 0, len(req.Safety))
	for _, s := range req.Safety {
		safety = append(safety, geminiSafetySetting{Category: s.Category, Threshold: s.Threshold})
	}

	body := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: prompt}},
		}},
		SafetySettings: safety,
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	payloadBytes, err := json.Marshal(body)
	if err != nil {
		g.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse&key=%s",
		g.geminiConfig.ApiUrl, g.geminiConfig.StoryModel, g.geminiConfig.ApiKey)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		g.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return httpReq, nil
}
