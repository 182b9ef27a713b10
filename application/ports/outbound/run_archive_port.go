package outbound

import (
	"context"

	"generate-story-lambda/domain"
)

// RunArchivePort persists a terminal run record for diagnostics. Archiving is
// best-effort; failures are logged, never surfaced to the caller.
type RunArchivePort interface {
	Archive(ctx context.Context, run *domain.PipelineRun) error
}
