package objstore

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// Ensure Destination implements the interface.
var _ driven.DestinationConnector = (*Destination)(nil)

// Destination uploads processed output artifacts to an object store,
// mirroring the local output hierarchy under the destination root.
type Destination struct {
	cfg   *Config
	store driven.ObjectStore
}

// NewDestination creates a destination connector over the given store.
// cfg.Location is the remote destination root; cfg.OutputDir is the local
// root output artifacts live under.
func NewDestination(cfg *Config, store driven.ObjectStore) *Destination {
	return &Destination{cfg: cfg, store: store}
}

// Initialize is a no-op for object-store destinations; buckets are not
// created on demand and missing ones surface as per-document write errors.
func (d *Destination) Initialize(_ context.Context) error {
	return nil
}

// Write uploads each document's output artifact to the destination root.
// The root is treated as a directory whether or not it ends with a
// separator. Failures are reported per document and never block the rest.
func (d *Destination) Write(ctx context.Context, docs []*domain.IngestDocument) []driven.WriteResult {
	results := make([]driven.WriteResult, 0, len(docs))
	for _, doc := range docs {
		target := domain.RemoteTarget(d.cfg.Location.PathWithoutProtocol, d.cfg.OutputDir, doc.OutputPath)
		logger.Debug("Uploading %s -> %s", doc.OutputPath, target)

		var err error
		if putErr := d.store.Put(ctx, doc.OutputPath, target); putErr != nil {
			err = &domain.DocumentError{
				RemoteRef: doc.RemoteRef,
				Op:        "write",
				Err:       fmt.Errorf("%w: %w", domain.ErrSourceConnection, putErr),
			}
			logger.Warn("Upload failed for %s: %v", doc.OutputPath, putErr)
		}
		results = append(results, driven.WriteResult{Doc: doc, Target: target, Err: err})
	}
	return results
}
