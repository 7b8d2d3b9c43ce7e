package driven

import (
	"context"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// RunStore persists per-run summaries for the history command.
type RunStore interface {
	// Save records a completed run and its per-document statuses.
	Save(ctx context.Context, summary *domain.RunSummary) error

	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.RunSummary, error)
}
