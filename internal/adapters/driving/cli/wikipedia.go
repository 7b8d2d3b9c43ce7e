package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/partition"
	"github.com/custodia-labs/ingest-cli/internal/connectors/wikipedia"
	"github.com/custodia-labs/ingest-cli/internal/core/services"
)

var (
	wikipediaAutoSuggest bool
	wikipediaRetain      bool
	wikipediaDownloadDir string
	wikipediaOutputDir   string
)

var wikipediaCmd = &cobra.Command{
	Use:   "wikipedia <title>",
	Short: "Ingest a Wikipedia article",
	Long: `Fetches one article in three renditions (plain text, HTML and the intro
summary) and partitions each into a JSON artifact.`,
	Args: cobra.ExactArgs(1),
	RunE: runWikipedia,
}

func init() {
	wikipediaCmd.Flags().BoolVar(&wikipediaAutoSuggest, "auto-suggest", false, "Fall back to the top search result when the title does not resolve")
	wikipediaCmd.Flags().BoolVar(&wikipediaRetain, "retain", false, "Keep downloaded files after a successful run")
	wikipediaCmd.Flags().StringVar(&wikipediaDownloadDir, "download-dir", "", "Local root for fetched files (default from config)")
	wikipediaCmd.Flags().StringVar(&wikipediaOutputDir, "output-dir", "", "Local root for processed artifacts (default from config)")
	rootCmd.AddCommand(wikipediaCmd)
}

func runWikipedia(cmd *cobra.Command, args []string) error {
	source, err := wikipedia.New(wikipedia.Config{
		Title:       args[0],
		AutoSuggest: wikipediaAutoSuggest,
		Retain:      wikipediaRetain,
		DownloadDir: firstNonEmpty(wikipediaDownloadDir, cfg.DownloadDir),
		OutputDir:   firstNonEmpty(wikipediaOutputDir, cfg.OutputDir),
	})
	if err != nil {
		return err
	}

	pipeline := &services.Pipeline{
		Source:      source,
		Partitioner: partition.New(),
		Runs:        openRunStore(),
	}

	summary, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(cmd, summary)
	return nil
}
