package domain

import "time"

// DocumentStatus is the per-document outcome of a run.
type DocumentStatus struct {
	// RemoteRef identifies the document.
	RemoteRef string

	// State is the document's final lifecycle state.
	State DocumentState

	// Error holds the failure message, empty on success.
	Error string
}

// RunSummary is the user-visible result of a run: a per-document
// success/failure report, not a single pass/fail signal.
type RunSummary struct {
	// ID uniquely identifies the run.
	ID string

	// Source is the connector type that produced the documents.
	Source string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run completed.
	FinishedAt time.Time

	// Documents holds one status per listed document.
	Documents []DocumentStatus
}

// Succeeded counts documents that completed without error.
func (s *RunSummary) Succeeded() int {
	n := 0
	for _, d := range s.Documents {
		if d.Error == "" {
			n++
		}
	}
	return n
}

// Failed counts documents that ended with an error.
func (s *RunSummary) Failed() int {
	return len(s.Documents) - s.Succeeded()
}
