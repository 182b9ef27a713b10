package services

import (
	"reflect"
	"strings"
	"testing"
)

func TestStoryTextProcessor_SplitsParagraphs(t *testing.T) {
	processor := NewStoryTextProcessor(nopLogger{})

	raw := "Pip woke up early.\n\nShe ran to the meadow.\n\nThe sun was warm."
	segments := processor.Clean(raw)

	want := []string{"Pip woke up early.", "She ran to the meadow.", "The sun was warm."}
	if !reflect.DeepEqual(segments, want) {
		t.Fatalf("Expected %v, got %v", want, segments)
	}
}

func TestStoryTextProcessor_StripsMarkupAndImageLines(t *testing.T) {
	processor := NewStoryTextProcessor(nopLogger{})

	raw := "## Chapter One\n**Scene 1:** Pip woke up early.\nImage prompt: a goat in a barn at dawn\n\n" +
		"She ran [sound of hooves] to the meadow. ![illustration](http://example.com/img.png)\n\n" +
		"```\nsome model debris\n```\n\nThe **sun** was warm."
	segments := processor.Clean(raw)

	want := []string{
		"Chapter One Pip woke up early.",
		"She ran to the meadow.",
		"The sun was warm.",
	}
	if !reflect.DeepEqual(segments, want) {
		t.Fatalf("Expected %v, got %v", want, segments)
	}
}

func TestStoryTextProcessor_DropsEmptyParagraphs(t *testing.T) {
	processor := NewStoryTextProcessor(nopLogger{})

	raw := "First paragraph.\n\n   \n\nImage: only an image prompt here\n\nSecond paragraph."
	segments := processor.Clean(raw)

	want := []string{"First paragraph.", "Second paragraph."}
	if !reflect.DeepEqual(segments, want) {
		t.Fatalf("Expected %v, got %v", want, segments)
	}
}

func TestStoryTextProcessor_Idempotent(t *testing.T) {
	processor := NewStoryTextProcessor(nopLogger{})

	raw := "**Scene 1:** Pip woke up.\nImage: goat\n\nShe ran [quickly] to the meadow.\n\nThe sun was warm."
	once := processor.Clean(raw)
	twice := processor.Clean(strings.Join(once, "\n\n"))

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("Expected cleaning to be idempotent: first %v, second %v", once, twice)
	}
}

func TestStoryTextProcessor_EmptyInput(t *testing.T) {
	processor := NewStoryTextProcessor(nopLogger{})

	if segments := processor.Clean(""); len(segments) != 0 {
		t.Fatal("Expected no segments for empty input, got", segments)
	}
	if segments := processor.Clean("  \n\n  \n  "); len(segments) != 0 {
		t.Fatal("Expected no segments for whitespace input, got", segments)
	}
}
