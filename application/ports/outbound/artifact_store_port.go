package outbound

import "context"

type SaveArtifactParams struct {
	RunID   string
	Kind    string
	Ordinal int
	Content []byte
}

type ArtifactStorePort interface {
	Save(ctx context.Context, params SaveArtifactParams) (string, error)
}
