package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/config"
)

// DefaultStoryPrompt is used when the prompt model returns nothing usable.
const DefaultStoryPrompt = "Write a gentle children's story about a curious little goat named Pip who " +
	"explores the meadow beyond the farm for the first time. The story should have a warm, reassuring " +
	"tone, a small moment of worry that resolves happily, and end with Pip safely back home. " +
	"Write one short paragraph per scene."

type geminiPromptGenerator struct {
	ContentFetcher
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
}

func NewGeminiPromptGenerator(contentFetcher ContentFetcher, geminiConfig *config.GeminiConfig, logger outbound.LoggerPort) outbound.PromptProviderPort {
	return &geminiPromptGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		geminiConfig:   geminiConfig,
	}
}

func (g *geminiPromptGenerator) GeneratePrompt(ctx context.Context, seed string) (string, error) {
	req, err := g.createRequest(ctx, seed)
	if err != nil {
		g.logger.Error(err, "Failed to construct the HTTP request for prompt generation")
		return "", err
	}

	payload, err := g.FetchContent(req)
	if err != nil {
		return "", err
	}

	prompt := g.extractPrompt(payload)
	if prompt == "" {
		g.logger.Warn("Prompt model returned no usable text, falling back to default prompt")
		return DefaultStoryPrompt, nil
	}

	return prompt, nil
}

func (g *geminiPromptGenerator) extractPrompt(payload []byte) string {
	var body geminiResponse
	if err := json.Unmarshal(payload, &body); err != nil {
		g.logger.Error(err, "Failed to unmarshal prompt response")
		return ""
	}
	if len(body.Candidates) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, part := range body.Candidates[0].Content.Parts {
		builder.WriteString(part.Text)
	}

	return strings.TrimSpace(builder.String())
}

func (g *geminiPromptGenerator) createRequest(ctx context.Context, seed string) (*http.Request, error) {
	instruction := fmt.Sprintf("You are writing a generation prompt for a children's story. Expand this idea "+
		"into a single detailed prompt for a story with one short paragraph per scene and a matching "+
		"illustration per paragraph. Respond with the prompt text only.\n\nIdea: %s", seed)
	if strings.TrimSpace(seed) == "" {
		instruction = "Invent a single detailed generation prompt for a gentle children's story with one " +
			"short paragraph per scene and a matching illustration per paragraph. Respond with the prompt text only."
	}

	body := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: instruction}},
		}},
	}

	payloadBytes, err := json.Marshal(body)
	if err != nil {
		g.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		g.geminiConfig.ApiUrl, g.geminiConfig.PromptModel, g.geminiConfig.ApiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		g.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
