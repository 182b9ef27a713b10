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
	"generate-story-lambda/domain"
)

type geminiMetadataGenerator struct {
	ContentFetcher
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
}

func NewGeminiMetadataGenerator(contentFetcher ContentFetcher, geminiConfig *config.GeminiConfig, logger outbound.LoggerPort) outbound.MetadataGeneratorPort {
	return &geminiMetadataGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		geminiConfig:   geminiConfig,
	}
}

// Generate asks the metadata model for SEO title, description and tags.
// Any failure degrades to deterministic defaults built from the story text,
// so metadata never sinks an otherwise finished video.
func (g *geminiMetadataGenerator) Generate(ctx context.Context, req outbound.GenerateMetadataRequest) (*domain.VideoMetadata, error) {
	httpReq, err := g.createRequest(ctx, req)
	if err != nil {
		g.logger.Error(err, "Failed to construct the HTTP request for metadata generation")
		return g.fallbackMetadata(req), nil
	}

	payload, err := g.FetchContent(httpReq)
	if err != nil {
		g.logger.Error(err, "Metadata generation call failed, using fallback metadata")
		return g.fallbackMetadata(req), nil
	}

	metadata := g.extractMetadata(payload)
	if metadata == nil {
		g.logger.Warn("Metadata model returned no usable JSON, using fallback metadata")
		return g.fallbackMetadata(req), nil
	}

	return metadata, nil
}

func (g *geminiMetadataGenerator) extractMetadata(payload []byte) *domain.VideoMetadata {
	var body geminiResponse
	if err := json.Unmarshal(payload, &body); err != nil {
		g.logger.Error(err, "Failed to unmarshal metadata response")
		return nil
	}
	if len(body.Candidates) == 0 {
		return nil
	}

	var builder strings.Builder
	for _, part := range body.Candidates[0].Content.Parts {
		builder.WriteString(part.Text)
	}

	raw := extractJSONObject(builder.String())
	if raw == "" {
		return nil
	}

	var metadata domain.VideoMetadata
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		g.logger.Error(err, "Failed to unmarshal metadata JSON payload")
		return nil
	}
	if metadata.Title == "" {
		return nil
	}

	return &metadata
}

// extractJSONObject pulls the first balanced top-level JSON object out of
// model text that may be wrapped in code fences or prose.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

func (g *geminiMetadataGenerator) fallbackMetadata(req outbound.GenerateMetadataRequest) *domain.VideoMetadata {
	title := strings.TrimSpace(req.Prompt)
	if len(title) > 80 {
		title = title[:80]
	}
	if title == "" {
		title = "A Narrated Children's Story"
	}

	description := req.StoryText
	if len(description) > 300 {
		description = description[:300]
	}

	return &domain.VideoMetadata{
		Title:       title,
		Description: description,
		Tags:        []string{"children's story", "bedtime story", "narrated story"},
	}
}

func (g *geminiMetadataGenerator) createRequest(ctx context.Context, req outbound.GenerateMetadataRequest) (*http.Request, error) {
	instruction := fmt.Sprintf("Write SEO metadata for a narrated children's story video. Respond with JSON "+
		"only, using exactly these keys: {\"title\": string, \"description\": string, \"tags\": [string]}. "+
		"The title should be under 80 characters.\n\nStory:\n%s", req.StoryText)

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
		g.geminiConfig.ApiUrl, g.geminiConfig.MetadataModel, g.geminiConfig.ApiKey)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		g.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return httpReq, nil
}
