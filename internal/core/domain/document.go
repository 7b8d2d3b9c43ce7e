package domain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// DocumentState tracks an IngestDocument through its lifecycle.
type DocumentState int

const (
	// StatePending means the document has been listed but not fetched.
	StatePending DocumentState = iota
	// StateFetching means a transfer is in progress.
	StateFetching
	// StateFetched means the local download exists and is non-empty.
	StateFetched
	// StateFetchFailed means the transfer errored or produced no bytes.
	// The local path may be absent or partial and must not be assumed usable.
	StateFetchFailed
	// StateCleanedUp means the local download artifact has been removed.
	StateCleanedUp
)

// String returns the state name for summaries and logs.
func (s DocumentState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFetching:
		return "fetching"
	case StateFetched:
		return "fetched"
	case StateFetchFailed:
		return "fetch_failed"
	case StateCleanedUp:
		return "cleaned_up"
	default:
		return "unknown"
	}
}

// ParseDocumentState converts a stored state name back to its DocumentState.
// Unknown names map to StatePending.
func ParseDocumentState(s string) DocumentState {
	switch s {
	case "fetching":
		return StateFetching
	case "fetched":
		return StateFetched
	case "fetch_failed":
		return StateFetchFailed
	case "cleaned_up":
		return StateCleanedUp
	default:
		return StatePending
	}
}

// Puller is the transfer capability a backend binds to each document:
// pull the bytes for remoteRef into the file at localPath.
type Puller func(ctx context.Context, remoteRef, localPath string) error

// IngestDocument is one unit of remote content to fetch, and later map to a
// processed output artifact. It is created by a SourceConnector during List
// and owns its paths and lifecycle state exclusively; no two documents ever
// share a local path, so no locking is needed for concurrent fetches of
// sibling documents.
type IngestDocument struct {
	// RemoteRef is the full remote reference including the directory prefix.
	// Opaque to the core; interpreted by the backend's Puller.
	RemoteRef string

	// DownloadPath is where the fetched bytes land locally.
	DownloadPath string

	// OutputPath is where the partitioner's processed artifact is expected.
	OutputPath string

	// Retain keeps the download artifact on disk after a successful run.
	// Debug flag.
	Retain bool

	pull  Puller
	state DocumentState
}

// NewIngestDocument creates a pending document bound to its transfer capability.
func NewIngestDocument(remoteRef, downloadPath, outputPath string, pull Puller) *IngestDocument {
	return &IngestDocument{
		RemoteRef:    remoteRef,
		DownloadPath: downloadPath,
		OutputPath:   outputPath,
		pull:         pull,
		state:        StatePending,
	}
}

// State returns the current lifecycle state.
func (d *IngestDocument) State() DocumentState {
	return d.state
}

// Fetch pulls the document to DownloadPath.
//
// If DownloadPath already exists and is non-empty, Fetch returns immediately
// in the fetched state without contacting the backend: a crashed or restarted
// batch run must not re-download files it already has. A zero-byte file is
// not treated as already fetched.
//
// A failure is returned as a DocumentError wrapping ErrSourceConnection and
// never aborts sibling documents.
func (d *IngestDocument) Fetch(ctx context.Context) error {
	if downloaded(d.DownloadPath) {
		logger.Debug("Skipping %s: already downloaded to %s", d.RemoteRef, d.DownloadPath)
		d.state = StateFetched
		return nil
	}

	d.state = StateFetching

	if d.pull == nil {
		return d.failFetch(fmt.Errorf("%w: no transfer capability bound", ErrSourceConnection))
	}
	if err := os.MkdirAll(filepath.Dir(d.DownloadPath), 0o755); err != nil {
		return d.failFetch(fmt.Errorf("%w: %w", ErrSourceConnection, err))
	}

	logger.Debug("Fetching %s -> %s", d.RemoteRef, d.DownloadPath)
	if err := d.pull(ctx, d.RemoteRef, d.DownloadPath); err != nil {
		return d.failFetch(fmt.Errorf("%w: %w", ErrSourceConnection, err))
	}
	if !downloaded(d.DownloadPath) {
		return d.failFetch(fmt.Errorf("%w: transfer produced no bytes", ErrSourceConnection))
	}

	d.state = StateFetched
	return nil
}

func (d *IngestDocument) failFetch(err error) error {
	d.state = StateFetchFailed
	return &DocumentError{RemoteRef: d.RemoteRef, Op: "fetch", Err: err}
}

// Release removes the local download artifact and prunes now-empty parent
// directories. Connectors call it after the document's output has been
// consumed. When Retain is set the artifact is kept and the state is left
// unchanged. Failed documents are deliberately not released by the pipeline
// so their artifacts remain on disk for diagnosis.
func (d *IngestDocument) Release() error {
	if d.Retain {
		logger.Debug("Retaining %s (retain flag set)", d.DownloadPath)
		return nil
	}

	if err := os.Remove(d.DownloadPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cleaning up %s: %w", d.DownloadPath, err)
	}
	pruneEmptyDirs(filepath.Dir(d.DownloadPath))

	logger.Debug("Cleaned up %s", d.DownloadPath)
	d.state = StateCleanedUp
	return nil
}

// pruneEmptyDirs removes dir and its ancestors while they are empty.
// os.Remove refuses non-empty directories, which bounds the walk.
func pruneEmptyDirs(dir string) {
	for {
		if err := os.Remove(dir); err != nil {
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// downloaded reports whether path exists as a non-empty regular file.
func downloaded(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}
