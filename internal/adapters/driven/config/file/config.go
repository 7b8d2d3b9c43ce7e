// Package file provides the TOML-based configuration layer. Configuration is
// stored in a single file within the ingest config directory; command-line
// flags override whatever the file supplies.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultWorkers is the fetch concurrency used when the file does not set one.
const DefaultWorkers = 2

// Config is the on-disk configuration of the CLI.
type Config struct {
	// DownloadDir is the default local root for fetched files.
	DownloadDir string `toml:"download_dir"`

	// OutputDir is the default local root for processed artifacts.
	OutputDir string `toml:"output_dir"`

	// Workers is the default fetch concurrency.
	Workers int `toml:"workers"`

	// Access holds per-scheme access parameters, e.g.
	//
	//	[access.s3]
	//	access_key_id = "..."
	//	secret_access_key = "..."
	Access map[string]map[string]string `toml:"access"`
}

// AccessFor returns the access parameters for a scheme, never nil.
func (c *Config) AccessFor(scheme string) map[string]string {
	if params, ok := c.Access[scheme]; ok {
		return params
	}
	return map[string]string{}
}

// Load reads the config file at path. If path is empty, defaults to
// ~/.ingest/config.toml. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".ingest", "config.toml")
	}

	cfg := defaults()

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{Access: map[string]map[string]string{}}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills gaps the file left. Directory defaults fall back to
// relative paths when no home directory is available.
func (c *Config) applyDefaults() {
	home, err := os.UserHomeDir()
	base := filepath.Join(home, ".ingest")
	if err != nil {
		base = ".ingest"
	}

	if c.DownloadDir == "" {
		c.DownloadDir = filepath.Join(base, "downloads")
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(base, "outputs")
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Access == nil {
		c.Access = map[string]map[string]string{}
	}
}
