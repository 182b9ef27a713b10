package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"generate-story-lambda/config"
	"generate-story-lambda/domain"
)

func promptServer(t *testing.T, parts []geminiPart) *httptest.Server {
	t.Helper()
	payload, err := json.Marshal(geminiResponse{Candidates: []geminiCandidate{{
		Content: geminiContent{Parts: parts},
	}}})
	if err != nil {
		t.Fatal("Failed to marshal response fixture:", err)
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	}))
}

func TestGeminiPromptGenerator_JoinsParts(t *testing.T) {
	server := promptServer(t, []geminiPart{
		{Text: "Write a story about "},
		{Text: "a brave snail."},
	})
	defer server.Close()

	generator := NewGeminiPromptGenerator(NewContentFetcher(nopLogger{}), &config.GeminiConfig{
		ApiUrl: server.URL, PromptModel: "test-model", ApiKey: "k",
	}, nopLogger{})

	prompt, err := generator.GeneratePrompt(context.Background(), "snail")
	if err != nil {
		t.Fatal("Failed to generate prompt:", err)
	}
	if prompt != "Write a story about a brave snail." {
		t.Fatal("Unexpected prompt:", prompt)
	}
}

func TestGeminiPromptGenerator_FallsBackOnEmptyResponse(t *testing.T) {
	server := promptServer(t, []geminiPart{{Text: "   "}})
	defer server.Close()

	generator := NewGeminiPromptGenerator(NewContentFetcher(nopLogger{}), &config.GeminiConfig{
		ApiUrl: server.URL, PromptModel: "test-model", ApiKey: "k",
	}, nopLogger{})

	prompt, err := generator.GeneratePrompt(context.Background(), "")
	if err != nil {
		t.Fatal("Expected fallback prompt instead of an error, got", err)
	}
	if prompt != DefaultStoryPrompt {
		t.Fatal("Expected default prompt, got", prompt)
	}
}

func TestGeminiPromptGenerator_PropagatesApiErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	generator := NewGeminiPromptGenerator(NewContentFetcher(nopLogger{}), &config.GeminiConfig{
		ApiUrl: server.URL, PromptModel: "test-model", ApiKey: "k",
	}, nopLogger{})

	_, err := generator.GeneratePrompt(context.Background(), "snail")
	var apiErr *domain.ApiError
	if !errors.As(err, &apiErr) || apiErr.Kind != domain.ErrKindAuthFailed {
		t.Fatal("Expected AUTH_FAILED api error, got", err)
	}
}
