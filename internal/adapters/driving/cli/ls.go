package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/core/services"
)

var lsRecursive bool

var lsCmd = &cobra.Command{
	Use:   "ls <location>",
	Short: "List objects under a location without ingesting them",
	Args:  cobra.ExactArgs(1),
	RunE:  runLs,
}

func init() {
	lsCmd.Flags().BoolVarP(&lsRecursive, "recursive", "r", false, "Walk the full subtree instead of direct children")
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	loc, err := domain.Resolve(args[0])
	if err != nil {
		return err
	}

	registry := services.NewRegistry()
	store, err := registry.Store(ctx, loc.Protocol, cfg.AccessFor(loc.Protocol))
	if err != nil {
		return err
	}

	var infos []driven.ObjectInfo
	if lsRecursive {
		infos, err = store.Find(ctx, loc.PathWithoutProtocol)
	} else {
		infos, err = store.Ls(ctx, loc.PathWithoutProtocol)
	}
	if err != nil {
		return err
	}

	for _, info := range infos {
		if info.Size <= 0 {
			cmd.Printf("%12s  %s\n", "-", info.Path)
			continue
		}
		cmd.Printf("%12d  %s\n", info.Size, info.Path)
	}
	cmd.Printf("%d entries\n", len(infos))
	return nil
}
