package driven

import "context"

// ObjectInfo describes one listed object. Cloud stores report directory
// placeholders as zero-size entries; implementations surface them as-is and
// the generic connector excludes them.
type ObjectInfo struct {
	// Path is the store-relative reference, including the bucket/container
	// segment (e.g. "bucket/docs/a.txt").
	Path string

	// Size is the object size in bytes.
	Size int64
}

// ObjectStore is the backend seam every cloud-store connector is built on:
// a minimal filesystem-like view of a remote store. Implementations wrap a
// provider SDK and nothing else; listing semantics, zero-size filtering and
// path mapping live in the generic connector.
type ObjectStore interface {
	// Ls lists the direct children of path with sizes.
	Ls(ctx context.Context, path string) ([]ObjectInfo, error)

	// Find walks the subtree under path recursively, with sizes.
	Find(ctx context.Context, path string) ([]ObjectInfo, error)

	// Get downloads the object at remotePath into the local file at
	// localPath. The containing directory exists when Get is called.
	Get(ctx context.Context, remotePath, localPath string) error

	// Put uploads the local file at localPath to remotePath.
	Put(ctx context.Context, localPath, remotePath string) error
}
