package driven

import (
	"context"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// SourceConnector enumerates and fetches remote content for one configured
// location. Each backend (object store, onedrive, wikipedia, ...) implements
// this interface once; backends are selected by scheme through the registry,
// not by inheritance.
type SourceConnector interface {
	// Type returns the connector type identifier.
	Type() string

	// Initialize validates the configured location is reachable and
	// non-empty before any per-document work is attempted. A failure wraps
	// domain.ErrConnectorInit and is fatal to the run.
	//
	// Initialize is called once, before any parallel fan-out, and is not
	// required to be safe under concurrent invocation.
	Initialize(ctx context.Context) error

	// List enumerates the documents under the configured root. Each document
	// is returned pending, with its transfer capability bound.
	List(ctx context.Context) ([]*domain.IngestDocument, error)
}

// WriteResult is the per-document outcome of a destination write.
// Upload failures are reported individually, never aggregated into a single
// opaque error.
type WriteResult struct {
	// Doc is the document that was written.
	Doc *domain.IngestDocument

	// Target is the remote path the output artifact was uploaded to.
	Target string

	// Err is the upload failure, nil on success.
	Err error
}

// DestinationConnector uploads processed output artifacts to a remote
// location, mirroring the local output hierarchy under the destination root.
type DestinationConnector interface {
	// Initialize performs backend-specific preflight. May be a no-op.
	Initialize(ctx context.Context) error

	// Write uploads each document's output artifact. One document's failure
	// does not block the remaining documents.
	Write(ctx context.Context, docs []*domain.IngestDocument) []WriteResult
}
