package config

import (
	"fmt"
	"os"
)

const (
	DefaultGeminiApiUrl  = "https://generativelanguage.googleapis.com/v1beta"
	DefaultStoryModel    = "gemini-2.0-flash-exp-image-generation"
	DefaultPromptModel   = "gemini-2.0-flash-thinking-exp-01-21"
	DefaultMetadataModel = "gemini-2.0-flash-thinking-exp-01-21"
)

type GeminiConfig struct {
	ApiUrl        string
	ApiKey        string
	StoryModel    string
	PromptModel   string
	MetadataModel string
}

func GetGeminiConfig() (*GeminiConfig, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set")
	}

	apiUrl := os.Getenv("GEMINI_API_URL")
	if apiUrl == "" {
		apiUrl = DefaultGeminiApiUrl
	}

	storyModel := os.Getenv("GEMINI_STORY_MODEL")
	if storyModel == "" {
		storyModel = DefaultStoryModel
	}

	promptModel := os.Getenv("GEMINI_PROMPT_MODEL")
	if promptModel == "" {
		promptModel = DefaultPromptModel
	}

	metadataModel := os.Getenv("GEMINI_METADATA_MODEL")
	if metadataModel == "" {
		metadataModel = DefaultMetadataModel
	}

	return &GeminiConfig{
		ApiUrl:        apiUrl,
		ApiKey:        apiKey,
		StoryModel:    storyModel,
		PromptModel:   promptModel,
		MetadataModel: metadataModel,
	}, nil
}
