package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/config"
)

type ElevenLabsRequest struct {
	Text          string        `json:"text"`
	ModelId       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type elevenLabsAudioSynthesizer struct {
	ContentFetcher
	logger           outbound.LoggerPort
	elevenLabsConfig *config.ElevenLabsConfig
}

func NewElevenLabsAudioSynthesizer(contentFetcher ContentFetcher, elevenLabsConfig *config.ElevenLabsConfig, logger outbound.LoggerPort) outbound.AudioSynthesizerPort {
	return &elevenLabsAudioSynthesizer{
		ContentFetcher:   contentFetcher,
		logger:           logger,
		elevenLabsConfig: elevenLabsConfig,
	}
}

func (a *elevenLabsAudioSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req, err := a.getRequest(ctx, text)
	if err != nil {
		a.logger.ErrorWithFields(err, "Failed to construct the HTTP request for audio synthesis", map[string]interface{}{
			"text": text,
		})
		return nil, err
	}

	return a.FetchContent(req)
}

func (a *elevenLabsAudioSynthesizer) getRequest(ctx context.Context, text string) (*http.Request, error) {
	reqBody := ElevenLabsRequest{
		Text:    text,
		ModelId: a.elevenLabsConfig.ModelId,
		VoiceSettings: VoiceSettings{
			Stability:       a.elevenLabsConfig.Stability,
			SimilarityBoost: a.elevenLabsConfig.SimilarityBoost,
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		a.logger.Error(err, "Failed to marshal the request body for ElevenLabs API")
		return nil, err
	}

	url := a.elevenLabsConfig.ApiUrl + "/" + a.elevenLabsConfig.VoiceID
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		a.logger.Error(err, "Failed to create the HTTP POST request")
		return nil, err
	}

	req.Header.Add("Accept", "audio/mpeg")
	req.Header.Add("xi-api-key", a.elevenLabsConfig.ApiKey)
	req.Header.Add("Content-Type", "application/json")

	return req, nil
}
