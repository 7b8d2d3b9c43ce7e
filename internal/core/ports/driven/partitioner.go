package driven

import "context"

// Partitioner is the external collaborator that turns a downloaded file into
// the structured artifact expected at the document's output path. The core
// neither inspects nor constrains the artifact beyond requiring that it
// exists at outputPath after a successful call.
type Partitioner interface {
	Partition(ctx context.Context, downloadPath, outputPath string) error
}
