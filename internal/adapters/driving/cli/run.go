package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/partition"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ingest-cli/internal/connectors/objstore"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/core/services"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

var (
	runDownloadDir string
	runOutputDir   string
	runRecursive   bool
	runRetain      bool
	runWorkers     int
	runTo          string
)

var runCmd = &cobra.Command{
	Use:   "run <location>",
	Short: "Ingest documents from an object-store location",
	Long: `Fetches every document under the given location (for example
s3://bucket/prefix/ or dropbox:// ), partitions each into a JSON artifact,
and optionally uploads the artifacts to the --to destination.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runDownloadDir, "download-dir", "", "Local root for fetched files (default from config)")
	runCmd.Flags().StringVar(&runOutputDir, "output-dir", "", "Local root for processed artifacts (default from config)")
	runCmd.Flags().BoolVarP(&runRecursive, "recursive", "r", false, "Enumerate the full subtree instead of direct children")
	runCmd.Flags().BoolVar(&runRetain, "retain", false, "Keep downloaded files after a successful run")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "Concurrent fetches (default from config)")
	runCmd.Flags().StringVar(&runTo, "to", "", "Destination location to upload artifacts to")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	downloadDir := runDownloadDir
	if downloadDir == "" {
		downloadDir = cfg.DownloadDir
	}
	outputDir := runOutputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	workers := runWorkers
	if workers <= 0 {
		workers = cfg.Workers
	}

	registry := services.NewRegistry()

	srcCfg, err := objstore.NewConfig(args[0], downloadDir, outputDir, runRecursive)
	if err != nil {
		return err
	}
	srcCfg.Retain = runRetain

	store, err := registry.Store(ctx, srcCfg.Location.Protocol, cfg.AccessFor(srcCfg.Location.Protocol))
	if err != nil {
		return err
	}

	var dest driven.DestinationConnector
	if runTo != "" {
		destCfg, err := objstore.NewConfig(runTo, downloadDir, outputDir, false)
		if err != nil {
			return fmt.Errorf("destination: %w", err)
		}
		destStore, err := registry.Store(ctx, destCfg.Location.Protocol, cfg.AccessFor(destCfg.Location.Protocol))
		if err != nil {
			return fmt.Errorf("destination: %w", err)
		}
		dest = objstore.NewDestination(destCfg, destStore)
	}

	pipeline := &services.Pipeline{
		Source:      objstore.NewSource(srcCfg, store),
		Partitioner: partition.New(),
		Destination: dest,
		Runs:        openRunStore(),
		Workers:     workers,
	}

	summary, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	printSummary(cmd, summary)
	return nil
}

// openRunStore opens the history database. Failure degrades to a run without
// persistence rather than aborting ingestion.
func openRunStore() driven.RunStore {
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("Run history unavailable: %v", err)
		return nil
	}
	return store.RunStore()
}
