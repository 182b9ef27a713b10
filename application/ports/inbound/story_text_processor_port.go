package inbound

// StoryTextProcessorPort cleans raw generated text into narration segments.
// Cleaning is deterministic and idempotent.
type StoryTextProcessorPort interface {
	Clean(rawText string) []string
}
