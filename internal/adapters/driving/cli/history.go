package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/storage/sqlite"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent ingestion runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := sqlite.NewStore("")
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RunStore().List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		cmd.Printf("%s  %s  %s  %d ok / %d failed\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.ID, run.Source, run.Succeeded(), run.Failed())
	}
	return nil
}
