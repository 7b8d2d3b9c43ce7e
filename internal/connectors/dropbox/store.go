// Package dropbox implements the object-store seam for the dropbox scheme.
// Dropbox is the one backend whose root is the empty string: the resolver's
// single-space sentinel directory maps to the API root "".
package dropbox

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"

	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ObjectStore = (*Store)(nil)

// Options hold Dropbox access parameters.
type Options struct {
	// Token is the Dropbox API access token.
	Token string
}

// Store is an ObjectStore backed by the Dropbox files API.
type Store struct {
	client files.Client
}

// New builds a Dropbox store.
func New(opts Options) (*Store, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("dropbox token is required")
	}
	return &Store{client: files.New(dropbox.Config{Token: opts.Token})}, nil
}

// Ls lists the direct children of path. Folders are reported as zero-size
// entries so the generic connector excludes them uniformly.
func (s *Store) Ls(_ context.Context, path string) ([]driven.ObjectInfo, error) {
	return s.listFolder(path, false)
}

// Find walks the subtree under path recursively.
func (s *Store) Find(_ context.Context, path string) ([]driven.ObjectInfo, error) {
	return s.listFolder(path, true)
}

// Get downloads the file at remotePath into localPath.
func (s *Store) Get(_ context.Context, remotePath, localPath string) error {
	_, content, err := s.client.Download(files.NewDownloadArg(apiPath(remotePath)))
	if err != nil {
		return fmt.Errorf("download %s: %w", remotePath, err)
	}
	defer content.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return fmt.Errorf("writing %s: %w", localPath, err)
	}
	return nil
}

// Put uploads the local file at localPath to remotePath, overwriting any
// existing revision.
func (s *Store) Put(_ context.Context, localPath, remotePath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	arg := files.NewUploadArg(apiPath(remotePath))
	arg.Mode = &files.WriteMode{Tagged: dropbox.Tagged{Tag: files.WriteModeOverwrite}}
	if _, err := s.client.Upload(arg, f); err != nil {
		return fmt.Errorf("upload %s: %w", remotePath, err)
	}
	return nil
}

func (s *Store) listFolder(path string, recursive bool) ([]driven.ObjectInfo, error) {
	arg := files.NewListFolderArg(apiPath(path))
	arg.Recursive = recursive

	res, err := s.client.ListFolder(arg)
	if err != nil {
		return nil, fmt.Errorf("list folder %q: %w", path, err)
	}

	var infos []driven.ObjectInfo
	for {
		for _, entry := range res.Entries {
			switch md := entry.(type) {
			case *files.FileMetadata:
				infos = append(infos, driven.ObjectInfo{
					Path: strings.TrimPrefix(md.PathDisplay, "/"),
					Size: int64(md.Size),
				})
			case *files.FolderMetadata:
				infos = append(infos, driven.ObjectInfo{
					Path: strings.TrimPrefix(md.PathDisplay, "/"),
					Size: 0,
				})
			}
		}
		if !res.HasMore {
			return infos, nil
		}
		res, err = s.client.ListFolderContinue(files.NewListFolderContinueArg(res.Cursor))
		if err != nil {
			return nil, fmt.Errorf("list folder %q: %w", path, err)
		}
	}
}

// apiPath converts a store-relative path to the Dropbox API form: "" for the
// root (including the resolver's single-space sentinel), "/path" otherwise.
func apiPath(path string) string {
	p := strings.TrimPrefix(strings.TrimSpace(path), "/")
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
