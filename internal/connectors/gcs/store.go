// Package gcs implements the object-store seam for the gs and gcs schemes
// using the Cloud Storage JSON API.
package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"

	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ObjectStore = (*Store)(nil)

// Options hold GCS access parameters.
type Options struct {
	// CredentialsFile points at a service-account JSON key. Empty falls
	// back to application default credentials.
	CredentialsFile string

	// Anonymous disables authentication for public buckets.
	Anonymous bool
}

// Store is an ObjectStore backed by Google Cloud Storage.
type Store struct {
	svc *storage.Service
}

// New builds a GCS store.
func New(ctx context.Context, opts Options) (*Store, error) {
	var clientOpts []option.ClientOption
	switch {
	case opts.Anonymous:
		clientOpts = append(clientOpts, option.WithoutAuthentication())
	case opts.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	svc, err := storage.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage service: %w", err)
	}
	return &Store{svc: svc}, nil
}

// Ls lists the direct children of path. Subdirectory prefixes are reported
// as zero-size entries, matching how cloud stores expose placeholders.
func (s *Store) Ls(ctx context.Context, path string) ([]driven.ObjectInfo, error) {
	bucket, key := splitBucketKey(path)

	prefix := key
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	infos, err := s.list(ctx, bucket, prefix, true)
	if err != nil {
		return nil, err
	}
	if len(infos) > 0 || key == "" {
		return infos, nil
	}

	// The location may denote a single object rather than a prefix.
	exact, err := s.list(ctx, bucket, key, true)
	if err != nil {
		return nil, err
	}
	matched := exact[:0]
	for _, info := range exact {
		if info.Path == bucket+"/"+key {
			matched = append(matched, info)
		}
	}
	return matched, nil
}

// Find walks the subtree under path recursively.
func (s *Store) Find(ctx context.Context, path string) ([]driven.ObjectInfo, error) {
	bucket, key := splitBucketKey(path)

	infos, err := s.list(ctx, bucket, key, false)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return infos, nil
	}

	matched := infos[:0]
	for _, info := range infos {
		rel := strings.TrimPrefix(info.Path, bucket+"/")
		if rel == key || strings.HasPrefix(rel, key+"/") {
			matched = append(matched, info)
		}
	}
	return matched, nil
}

// Get downloads the object at remotePath into localPath.
func (s *Store) Get(ctx context.Context, remotePath, localPath string) error {
	bucket, key := splitBucketKey(remotePath)

	resp, err := s.svc.Objects.Get(bucket, key).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("get gs://%s/%s: %w", bucket, key, err)
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

// Put uploads the local file at localPath to remotePath.
func (s *Store) Put(ctx context.Context, localPath, remotePath string) error {
	bucket, key := splitBucketKey(remotePath)

	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := s.svc.Objects.Insert(bucket, &storage.Object{Name: key}).Media(f).Context(ctx).Do(); err != nil {
		return fmt.Errorf("put gs://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// list pages through object listings under prefix.
func (s *Store) list(ctx context.Context, bucket, prefix string, shallow bool) ([]driven.ObjectInfo, error) {
	call := s.svc.Objects.List(bucket).Prefix(prefix)
	if shallow {
		call = call.Delimiter("/")
	}

	var infos []driven.ObjectInfo
	pageToken := ""
	for {
		res, err := call.PageToken(pageToken).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("list gs://%s/%s: %w", bucket, prefix, err)
		}
		for _, obj := range res.Items {
			infos = append(infos, driven.ObjectInfo{
				Path: bucket + "/" + obj.Name,
				Size: int64(obj.Size),
			})
		}
		for _, p := range res.Prefixes {
			infos = append(infos, driven.ObjectInfo{Path: bucket + "/" + p, Size: 0})
		}
		if res.NextPageToken == "" {
			return infos, nil
		}
		pageToken = res.NextPageToken
	}
}

// splitBucketKey splits "bucket/key/parts" into bucket and key.
func splitBucketKey(path string) (bucket, key string) {
	bucket, key, _ = strings.Cut(path, "/")
	return bucket, key
}
