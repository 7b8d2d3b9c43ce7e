package objstore

import (
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// Config is the immutable configuration shared by a connector and all the
// documents it creates. The location decomposition happens once, at
// construction; recomputing it from the same raw string is idempotent.
type Config struct {
	// Location is the parsed root location.
	Location domain.Location

	// DownloadDir is the local root downloads are mirrored under.
	DownloadDir string

	// OutputDir is the local root processed artifacts are expected under.
	OutputDir string

	// Recursive selects full subtree enumeration instead of direct children.
	Recursive bool

	// Retain keeps download artifacts after successful runs. Debug flag.
	Retain bool
}

// NewConfig resolves raw into a Location and builds a connector config.
// Fails with domain.ErrInvalidLocation for malformed or unrecognized input.
func NewConfig(raw, downloadDir, outputDir string, recursive bool) (*Config, error) {
	loc, err := domain.Resolve(raw)
	if err != nil {
		return nil, err
	}
	return &Config{
		Location:    loc,
		DownloadDir: downloadDir,
		OutputDir:   outputDir,
		Recursive:   recursive,
	}, nil
}
