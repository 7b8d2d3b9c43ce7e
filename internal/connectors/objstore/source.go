package objstore

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.SourceConnector = (*Source)(nil)

// Source enumerates and fetches documents from an object store.
type Source struct {
	cfg   *Config
	store driven.ObjectStore
}

// NewSource creates a source connector over the given store.
func NewSource(cfg *Config, store driven.ObjectStore) *Source {
	return &Source{cfg: cfg, store: store}
}

// Type returns the connector type identifier (the location scheme).
func (s *Source) Type() string {
	return s.cfg.Location.Protocol
}

// Initialize verifies the configured location is reachable and non-empty.
func (s *Source) Initialize(ctx context.Context) error {
	infos, err := s.store.Ls(ctx, s.cfg.Location.PathWithoutProtocol)
	if err != nil {
		return fmt.Errorf("%w: listing %s: %w", domain.ErrConnectorInit, s.cfg.Location.Raw, err)
	}
	if len(infos) < 1 {
		return fmt.Errorf("%w: no objects found in %s", domain.ErrConnectorInit, s.cfg.Location.Raw)
	}
	return nil
}

// List enumerates objects under the configured root and returns one pending
// document per real object. Entries reported with zero size are directory
// placeholders, not content, and are excluded in both enumeration modes.
func (s *Source) List(ctx context.Context) ([]*domain.IngestDocument, error) {
	var (
		infos []driven.ObjectInfo
		err   error
	)
	if s.cfg.Recursive {
		infos, err = s.store.Find(ctx, s.cfg.Location.PathWithoutProtocol)
	} else {
		infos, err = s.store.Ls(ctx, s.cfg.Location.PathWithoutProtocol)
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.cfg.Location.Raw, err)
	}

	docs := make([]*domain.IngestDocument, 0, len(infos))
	for _, info := range infos {
		if info.Size <= 0 {
			logger.Debug("Skipping zero-size entry %s", info.Path)
			continue
		}
		doc := domain.NewIngestDocument(
			info.Path,
			domain.DownloadPath(s.cfg.DownloadDir, s.cfg.Location.Directory, info.Path),
			domain.OutputPath(s.cfg.OutputDir, s.cfg.Location.Directory, info.Path),
			s.store.Get,
		)
		doc.Retain = s.cfg.Retain
		docs = append(docs, doc)
	}

	logger.Info("Listed %d documents under %s", len(docs), s.cfg.Location.Raw)
	return docs, nil
}
