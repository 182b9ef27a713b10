package outbound

import "context"

// PromptProviderPort elaborates a short seed into the full story prompt. A
// provider may fall back to a built-in default when the model yields nothing
// usable, but an error is fatal to the run.
type PromptProviderPort interface {
	GeneratePrompt(ctx context.Context, seed string) (string, error)
}
