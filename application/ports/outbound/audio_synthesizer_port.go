package outbound

import "context"

type AudioSynthesizerPort interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
