package adapters

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"generate-story-lambda/domain"
)

func streamEvent(t *testing.T, parts []geminiPart, finishReason string) string {
	t.Helper()
	payload, err := json.Marshal(geminiResponse{Candidates: []geminiCandidate{{
		Content:      geminiContent{Parts: parts},
		FinishReason: finishReason,
	}}})
	if err != nil {
		t.Fatal("Failed to marshal event fixture:", err)
	}
	return string(payload)
}

func TestGeminiStoryStream_DecodeEvent(t *testing.T) {
	stream := &geminiStoryStream{logger: nopLogger{}}
	imageBytes := []byte{0x89, 0x50, 0x4e, 0x47}

	data := streamEvent(t, []geminiPart{
		{Text: "Once upon a time"},
		{InlineData: &geminiInlineData{
			MimeType: "image/png",
			Data:     base64.StdEncoding.EncodeToString(imageBytes),
		}},
	}, "")

	chunks, done, err := stream.decodeEvent(data)
	if err != nil {
		t.Fatal("Failed to decode event:", err)
	}
	if done {
		t.Fatal("Expected stream not to be done without a finish reason")
	}
	if len(chunks) != 2 {
		t.Fatal("Expected 2 chunks, got", len(chunks))
	}
	if chunks[0].Kind != domain.TextChunk || chunks[0].Text != "Once upon a time" {
		t.Fatalf("Unexpected first chunk: %+v", chunks[0])
	}
	if chunks[1].Kind != domain.ImageChunk || string(chunks[1].Image) != string(imageBytes) {
		t.Fatalf("Unexpected second chunk: %+v", chunks[1])
	}
}

func TestGeminiStoryStream_DecodeEventFinishReason(t *testing.T) {
	stream := &geminiStoryStream{logger: nopLogger{}}

	data := streamEvent(t, []geminiPart{{Text: "The end."}}, "STOP")
	chunks, done, err := stream.decodeEvent(data)
	if err != nil {
		t.Fatal("Failed to decode event:", err)
	}
	if !done {
		t.Fatal("Expected stream to be done after a finish reason")
	}
	if len(chunks) != 1 || chunks[0].Text != "The end." {
		t.Fatalf("Unexpected chunks: %+v", chunks)
	}
}

func TestGeminiStoryStream_DecodeEventRejectsMalformed(t *testing.T) {
	stream := &geminiStoryStream{logger: nopLogger{}}

	if _, _, err := stream.decodeEvent("not json"); err == nil {
		t.Fatal("Expected an error for malformed JSON")
	}
	if _, _, err := stream.decodeEvent(`{"candidates":[]}`); err == nil {
		t.Fatal("Expected an error for an event with no candidates")
	}
	if _, _, err := stream.decodeEvent(streamEvent(t, []geminiPart{
		{InlineData: &geminiInlineData{MimeType: "image/png", Data: "!!not-base64!!"}},
	}, "")); err == nil {
		t.Fatal("Expected an error for undecodable image data")
	}
}
