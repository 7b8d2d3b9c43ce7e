// Package onedrive implements a source connector over the Microsoft Graph
// drive API. Unlike the object-store backends it enumerates a named user's
// drive rather than a scheme-qualified location.
package onedrive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// DefaultGraphURL is the Graph API endpoint.
const DefaultGraphURL = "https://graph.microsoft.com/v1.0"

// requestsPerSecond bounds Graph API calls; Graph throttles bursty clients.
const requestsPerSecond = 10

// Ensure Connector implements the interface.
var _ driven.SourceConnector = (*Connector)(nil)

// Connector enumerates and fetches documents from a user's OneDrive.
type Connector struct {
	cfg     *Config
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
}

// New creates a OneDrive connector. The client-credentials token source is
// built once here; per-request tokens are refreshed transparently.
func New(ctx context.Context, cfg *Config) (*Connector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tokenURL, err := cfg.tokenURL()
	if err != nil {
		return nil, err
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{GraphScope},
	}
	return &Connector{
		cfg:     cfg,
		http:    cc.Client(ctx),
		baseURL: DefaultGraphURL,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}, nil
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "onedrive"
}

// Initialize verifies the drive is reachable and, when a folder path is
// configured, that it exists and is a folder.
func (c *Connector) Initialize(ctx context.Context) error {
	item, err := c.getItem(ctx, c.cfg.FolderPath)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConnectorInit, err)
	}
	if item.Folder == nil {
		return fmt.Errorf("%w: unable to find directory, given: %q", domain.ErrConnectorInit, c.cfg.FolderPath)
	}
	return nil
}

// List enumerates files under the configured folder. Files without an
// extension cannot be mapped to an output artifact and are skipped.
func (c *Connector) List(ctx context.Context) ([]*domain.IngestDocument, error) {
	var docs []*domain.IngestDocument
	if err := c.walk(ctx, c.cfg.FolderPath, &docs); err != nil {
		return nil, err
	}
	logger.Info("Listed %d documents from onedrive drive of %s", len(docs), c.cfg.UserPrincipalName)
	return docs, nil
}

// walk lists one folder and recurses into subfolders when configured.
// relDir is the folder path relative to the configured root, "" at the top.
func (c *Connector) walk(ctx context.Context, relDir string, docs *[]*domain.IngestDocument) error {
	items, err := c.listChildren(ctx, relDir)
	if err != nil {
		return err
	}

	for _, item := range items {
		switch {
		case item.File != nil:
			if item.Size <= 0 {
				logger.Debug("Skipping zero-size entry %s", item.Name)
				continue
			}
			doc, err := c.newDocument(relDir, item.Name)
			if err != nil {
				logger.Warn("Skipping %s: %v", item.Name, err)
				continue
			}
			*docs = append(*docs, doc)
		case item.Folder != nil && c.cfg.Recursive:
			if err := c.walk(ctx, path.Join(relDir, item.Name), docs); err != nil {
				return err
			}
		}
	}
	return nil
}

// newDocument maps one drive file to a pending IngestDocument. The folder
// structure below the configured root is mirrored in both local paths; the
// output name replaces the file's full extension chain with ".json".
func (c *Connector) newDocument(relDir, name string) (*domain.IngestDocument, error) {
	ext := fullExt(name)
	if ext == "" {
		return nil, fmt.Errorf("unsupported file without extension")
	}

	serverRelPath := path.Join(relDir, name)
	outputName := name[:len(name)-len(ext)] + ".json"

	doc := domain.NewIngestDocument(
		serverRelPath,
		filepath.Join(c.cfg.DownloadDir, filepath.FromSlash(relDir), name),
		filepath.Join(c.cfg.OutputDir, filepath.FromSlash(relDir), outputName),
		c.pull,
	)
	doc.Retain = c.cfg.Retain
	return doc, nil
}

// pull downloads one drive item's content. Bound to every document as its
// transfer capability.
func (c *Connector) pull(ctx context.Context, remoteRef, localPath string) error {
	resp, err := c.get(ctx, c.itemURL(remoteRef)+":/content")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("writing %s: %w", localPath, err)
	}
	return nil
}

// driveItem is the subset of the Graph drive item resource the connector reads.
type driveItem struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	File   *struct {
		MimeType string `json:"mimeType"`
	} `json:"file"`
	Folder *struct {
		ChildCount int `json:"childCount"`
	} `json:"folder"`
}

// childrenPage is one page of a children listing.
type childrenPage struct {
	Value    []driveItem `json:"value"`
	NextLink string      `json:"@odata.nextLink"`
}

// listChildren fetches all children of a folder, following pagination.
func (c *Connector) listChildren(ctx context.Context, relDir string) ([]driveItem, error) {
	next := c.childrenURL(relDir)

	var items []driveItem
	for next != "" {
		resp, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}

		var page childrenPage
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding children listing: %w", err)
		}

		items = append(items, page.Value...)
		next = page.NextLink
	}
	return items, nil
}

// getItem fetches the metadata of the drive root or a folder below it.
func (c *Connector) getItem(ctx context.Context, relDir string) (*driveItem, error) {
	resp, err := c.get(ctx, c.itemURL(relDir))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var item driveItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("decoding drive item: %w", err)
	}
	return &item, nil
}

// get performs one rate-limited Graph request and fails on non-2xx statuses.
func (c *Connector) get(ctx context.Context, rawURL string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("graph request %s: status %d: %s", rawURL, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp, nil
}

// itemURL addresses the drive root or a path below it.
func (c *Connector) itemURL(relPath string) string {
	drive := fmt.Sprintf("%s/users/%s/drive", c.baseURL, url.PathEscape(c.cfg.UserPrincipalName))
	if relPath == "" {
		return drive + "/root"
	}
	return drive + "/root:/" + escapePath(relPath)
}

// childrenURL addresses a folder's children listing.
func (c *Connector) childrenURL(relDir string) string {
	if relDir == "" {
		return c.itemURL("") + "/children"
	}
	return c.itemURL(relDir) + ":/children"
}

// escapePath escapes each segment of a drive-relative path.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// fullExt returns the full extension chain of a filename ("a.tar.gz" ->
// ".tar.gz"), empty when the name has no extension or no stem.
func fullExt(name string) string {
	trimmed := strings.TrimLeft(name, ".")
	lead := len(name) - len(trimmed)
	if i := strings.Index(trimmed, "."); i > 0 {
		return name[lead+i:]
	}
	return ""
}
