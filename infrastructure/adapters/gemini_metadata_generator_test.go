package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"generate-story-lambda/application/ports/outbound"
	"generate-story-lambda/config"
)

func metadataServer(t *testing.T, responseBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(responseBody))
	}))
}

func TestGeminiMetadataGenerator_ParsesFencedJSON(t *testing.T) {
	text := "Here you go:\n```json\n{\"title\": \"Pip's Big Day\", \"description\": \"A goat explores.\", \"tags\": [\"goat\"]}\n```"
	payload, err := json.Marshal(geminiResponse{Candidates: []geminiCandidate{{
		Content: geminiContent{Parts: []geminiPart{{Text: text}}},
	}}})
	if err != nil {
		t.Fatal("Failed to marshal response fixture:", err)
	}
	server := metadataServer(t, string(payload))
	defer server.Close()

	generator := NewGeminiMetadataGenerator(NewContentFetcher(nopLogger{}), &config.GeminiConfig{
		ApiUrl: server.URL, MetadataModel: "test-model", ApiKey: "k",
	}, nopLogger{})

	metadata, err := generator.Generate(context.Background(), outbound.GenerateMetadataRequest{
		StoryText: "Pip the goat.",
		Prompt:    "a goat story",
	})
	if err != nil {
		t.Fatal("Failed to generate metadata:", err)
	}
	if metadata.Title != "Pip's Big Day" {
		t.Fatal("Unexpected title:", metadata.Title)
	}
	if metadata.Description != "A goat explores." {
		t.Fatal("Unexpected description:", metadata.Description)
	}
	if len(metadata.Tags) != 1 || metadata.Tags[0] != "goat" {
		t.Fatal("Unexpected tags:", metadata.Tags)
	}
}

func TestGeminiMetadataGenerator_FallsBackOnApiFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	generator := NewGeminiMetadataGenerator(NewContentFetcher(nopLogger{}), &config.GeminiConfig{
		ApiUrl: server.URL, MetadataModel: "test-model", ApiKey: "k",
	}, nopLogger{})

	metadata, err := generator.Generate(context.Background(), outbound.GenerateMetadataRequest{
		StoryText: "Pip the goat went exploring.",
		Prompt:    "a goat story",
	})
	if err != nil {
		t.Fatal("Expected fallback metadata instead of an error, got", err)
	}
	if metadata.Title == "" || metadata.Description == "" || len(metadata.Tags) == 0 {
		t.Fatalf("Expected populated fallback metadata, got %+v", metadata)
	}
}

func TestGeminiMetadataGenerator_FallsBackOnGarbageText(t *testing.T) {
	server := metadataServer(t, `{"candidates":[{"content":{"parts":[{"text":"no json here"}]}}]}`)
	defer server.Close()

	generator := NewGeminiMetadataGenerator(NewContentFetcher(nopLogger{}), &config.GeminiConfig{
		ApiUrl: server.URL, MetadataModel: "test-model", ApiKey: "k",
	}, nopLogger{})

	metadata, err := generator.Generate(context.Background(), outbound.GenerateMetadataRequest{
		StoryText: "Pip the goat.",
		Prompt:    "a goat story",
	})
	if err != nil {
		t.Fatal("Expected fallback metadata instead of an error, got", err)
	}
	if metadata.Title != "a goat story" {
		t.Fatal("Expected fallback title from the prompt, got", metadata.Title)
	}
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"prefix {\"a\":{\"b\":2}} suffix", `{"a":{"b":2}}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"no object", ""},
		{"{unbalanced", ""},
	}
	for _, tc := range cases {
		if got := extractJSONObject(tc.in); got != tc.want {
			t.Fatalf("extractJSONObject(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
