package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingest-cli/internal/core/services"
)

var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "List the location schemes with a registered backend",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, scheme := range services.NewRegistry().Schemes() {
			cmd.Println(scheme)
		}
	},
}

func init() {
	rootCmd.AddCommand(schemesCmd)
}
