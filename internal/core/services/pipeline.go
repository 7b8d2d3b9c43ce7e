package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// DefaultWorkers is the fetch fan-out used when none is configured.
const DefaultWorkers = 2

// Pipeline drives one ingestion run end to end: initialize the source, list
// its documents, fetch and partition each with bounded fan-out, optionally
// write outputs to a destination, then clean up the documents that fully
// succeeded. Per-document failures are collected, not propagated; only
// initialization errors abort the run.
type Pipeline struct {
	// Source produces the documents. Required.
	Source driven.SourceConnector

	// Partitioner turns each download into its output artifact. Required.
	Partitioner driven.Partitioner

	// Destination receives output artifacts. Optional.
	Destination driven.DestinationConnector

	// Runs persists the run summary. Optional.
	Runs driven.RunStore

	// Workers bounds concurrent fetches. Defaults to DefaultWorkers.
	Workers int
}

// Run executes the pipeline and returns the per-document summary.
func (p *Pipeline) Run(ctx context.Context) (*domain.RunSummary, error) {
	if err := p.Source.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("initialize source: %w", err)
	}

	docs, err := p.Source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	summary := &domain.RunSummary{
		ID:        uuid.NewString(),
		Source:    p.Source.Type(),
		StartedAt: time.Now().UTC(),
	}
	logger.Info("Run %s: %d documents from %s", summary.ID, len(docs), summary.Source)

	// Each document owns its paths and state exclusively, so workers only
	// share the errs slice, written at distinct indices.
	errs := make([]error, len(docs))
	p.fetchAndPartition(ctx, docs, errs)

	if p.Destination != nil {
		if err := p.writeOutputs(ctx, docs, errs); err != nil {
			return nil, err
		}
	}

	// Clean up on success, preserve on failure: failed documents keep their
	// local artifacts on disk to aid diagnosis.
	for i, doc := range docs {
		if errs[i] != nil {
			continue
		}
		if err := doc.Release(); err != nil {
			logger.Warn("Cleanup failed for %s: %v", doc.DownloadPath, err)
		}
	}

	summary.FinishedAt = time.Now().UTC()
	for i, doc := range docs {
		status := domain.DocumentStatus{RemoteRef: doc.RemoteRef, State: doc.State()}
		if errs[i] != nil {
			status.Error = errs[i].Error()
		}
		summary.Documents = append(summary.Documents, status)
	}

	if p.Runs != nil {
		if err := p.Runs.Save(ctx, summary); err != nil {
			logger.Warn("Could not persist run summary: %v", err)
		}
	}

	logger.Info("Run %s finished: %d succeeded, %d failed", summary.ID, summary.Succeeded(), summary.Failed())
	return summary, nil
}

// fetchAndPartition fans out over the documents with a bounded worker pool.
// A failure in one document's fetch never aborts sibling documents.
func (p *Pipeline) fetchAndPartition(ctx context.Context, docs []*domain.IngestDocument, errs []error) {
	workers := p.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i, doc := range docs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, doc *domain.IngestDocument) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := doc.Fetch(ctx); err != nil {
				logger.Warn("Fetch failed for %s: %v", doc.RemoteRef, err)
				errs[i] = err
				return
			}
			if err := p.Partitioner.Partition(ctx, doc.DownloadPath, doc.OutputPath); err != nil {
				logger.Warn("Partition failed for %s: %v", doc.RemoteRef, err)
				errs[i] = &domain.DocumentError{RemoteRef: doc.RemoteRef, Op: "partition", Err: err}
			}
		}(i, doc)
	}
	wg.Wait()
}

// writeOutputs uploads the artifacts of documents that succeeded so far and
// merges per-document write failures into errs.
func (p *Pipeline) writeOutputs(ctx context.Context, docs []*domain.IngestDocument, errs []error) error {
	if err := p.Destination.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize destination: %w", err)
	}

	index := make(map[*domain.IngestDocument]int, len(docs))
	pending := make([]*domain.IngestDocument, 0, len(docs))
	for i, doc := range docs {
		if errs[i] == nil {
			index[doc] = i
			pending = append(pending, doc)
		}
	}

	for _, res := range p.Destination.Write(ctx, pending) {
		if res.Err != nil {
			errs[index[res.Doc]] = res.Err
		}
	}
	return nil
}
