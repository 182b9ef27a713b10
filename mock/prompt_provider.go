package mock_generator

import (
	"context"

	"generate-story-lambda/application/ports/outbound"
)

type staticPromptProvider struct {
	prompt string
}

func NewStaticPromptProvider(prompt string) outbound.PromptProviderPort {
	return &staticPromptProvider{prompt: prompt}
}

func (p *staticPromptProvider) GeneratePrompt(_ context.Context, _ string) (string, error) {
	return p.prompt, nil
}
