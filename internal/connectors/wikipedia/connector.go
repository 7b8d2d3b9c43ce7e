package wikipedia

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.SourceConnector = (*Connector)(nil)

// Config holds wikipedia connector configuration.
type Config struct {
	// Title is the article to ingest. Required.
	Title string

	// AutoSuggest falls back to the top search result when the title does
	// not resolve to a page directly.
	AutoSuggest bool

	// DownloadDir is the local root renditions are written under.
	DownloadDir string

	// OutputDir is the local root processed artifacts are expected under.
	OutputDir string

	// Retain keeps download artifacts after successful runs.
	Retain bool
}

// Connector ingests one article as three renditions.
type Connector struct {
	cfg    Config
	client *client

	// page is resolved eagerly during Initialize so that a bad title fails
	// the run before any document work starts.
	page *page
}

// New creates a wikipedia connector.
func New(cfg Config) (*Connector, error) {
	if cfg.Title == "" {
		return nil, fmt.Errorf("wikipedia config: title is required")
	}
	return &Connector{cfg: cfg, client: newClient()}, nil
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "wikipedia"
}

// Initialize resolves the configured title to a concrete page revision.
func (c *Connector) Initialize(ctx context.Context) error {
	title := c.cfg.Title

	p, err := c.client.resolve(ctx, title)
	if err != nil && c.cfg.AutoSuggest {
		suggested, serr := c.client.suggest(ctx, title)
		if serr != nil {
			return fmt.Errorf("%w: %w", domain.ErrConnectorInit, err)
		}
		logger.Info("Title %q did not resolve, using suggestion %q", title, suggested)
		p, err = c.client.resolve(ctx, suggested)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConnectorInit, err)
	}

	c.page = p
	logger.Debug("Resolved %q to revision %d", p.Title, p.RevisionID)
	return nil
}

// List returns the three renditions of the resolved page. Each document
// carries a puller that fetches its rendition through the API.
func (c *Connector) List(_ context.Context) ([]*domain.IngestDocument, error) {
	if c.page == nil {
		return nil, fmt.Errorf("%w: connector not initialized", domain.ErrConnectorInit)
	}

	stem := fmt.Sprintf("%s-%d", sanitizeTitle(c.page.Title), c.page.RevisionID)
	renditions := []struct {
		ref      string
		filename string
		output   string
		fetch    func(context.Context) (string, error)
	}{
		{
			ref:      c.page.Title + "#text",
			filename: stem + ".txt",
			output:   stem + "-txt.json",
			fetch: func(ctx context.Context) (string, error) {
				return c.client.extract(ctx, c.page.Title, false)
			},
		},
		{
			ref:      c.page.Title + "#html",
			filename: stem + ".html",
			output:   stem + "-html.json",
			fetch: func(ctx context.Context) (string, error) {
				return c.client.html(ctx, c.page.Title)
			},
		},
		{
			ref:      c.page.Title + "#summary",
			filename: stem + "-summary.txt",
			output:   stem + "-summary.json",
			fetch: func(ctx context.Context) (string, error) {
				return c.client.extract(ctx, c.page.Title, true)
			},
		},
	}

	docs := make([]*domain.IngestDocument, 0, len(renditions))
	for _, r := range renditions {
		fetch := r.fetch
		doc := domain.NewIngestDocument(
			r.ref,
			filepath.Join(c.cfg.DownloadDir, r.filename),
			filepath.Join(c.cfg.OutputDir, r.output),
			func(ctx context.Context, _, localPath string) error {
				content, err := fetch(ctx)
				if err != nil {
					return err
				}
				return os.WriteFile(localPath, []byte(content), 0o644)
			},
		)
		doc.Retain = c.cfg.Retain
		docs = append(docs, doc)
	}
	return docs, nil
}

// sanitizeTitle makes a page title safe as a filename component.
func sanitizeTitle(title string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '-'
		}
		return r
	}, title)
}
