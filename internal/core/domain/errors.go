package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent ingestion failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidLocation indicates a malformed or unrecognized location string.
	// Raised at construction time and never retried.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrConnectorInit indicates the backend is unreachable or the configured
	// root has no listable content. Fatal to the whole run for that connector.
	ErrConnectorInit = errors.New("connector initialization failed")

	// ErrSourceConnection indicates a transfer failure during fetch or write.
	// Isolated to a single document; the caller may choose to retry.
	ErrSourceConnection = errors.New("source connection error")

	// ErrUnsupportedScheme indicates a recognized scheme with no registered backend.
	ErrUnsupportedScheme = errors.New("no backend registered for scheme")
)

// DocumentError is a per-document failure record.
// Transfer errors never propagate past the document boundary; they are
// captured here and attached to that document's result while the rest of
// the run continues.
type DocumentError struct {
	// RemoteRef identifies the document that failed.
	RemoteRef string

	// Op is the operation that failed ("fetch", "partition", "write").
	Op string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.RemoteRef, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As checks.
func (e *DocumentError) Unwrap() error {
	return e.Err
}
