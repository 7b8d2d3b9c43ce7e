// Package cli wires the driving command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	flagVerbose    bool
	flagConfigPath string
)

// cfg is loaded by the persistent pre-run before any subcommand executes.
var cfg *file.Config

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Batch document ingestion from remote sources",
	Long: `ingest fetches documents from remote sources (object stores, OneDrive,
Wikipedia), partitions them into structured JSON artifacts, and optionally
uploads the artifacts to a destination object store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)

		c, err := file.Load(flagConfigPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Config file path (default ~/.ingest/config.toml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// printSummary writes the per-document outcome of a run.
func printSummary(cmd *cobra.Command, summary *domain.RunSummary) {
	cmd.Printf("Run %s: %d succeeded, %d failed\n", summary.ID, summary.Succeeded(), summary.Failed())
	for _, doc := range summary.Documents {
		if doc.Error == "" {
			cmd.Printf("  ok    %s (%s)\n", doc.RemoteRef, doc.State)
			continue
		}
		cmd.Printf("  fail  %s: %s\n", doc.RemoteRef, doc.Error)
	}
}
