package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/partition"
	"github.com/custodia-labs/ingest-cli/internal/connectors/onedrive"
	"github.com/custodia-labs/ingest-cli/internal/core/services"
)

var (
	onedriveClientID     string
	onedriveClientSecret string
	onedriveTenant       string
	onedriveUser         string
	onedriveFolder       string
	onedriveRecursive    bool
	onedriveRetain       bool
	onedriveWorkers      int
	onedriveDownloadDir  string
	onedriveOutputDir    string
)

var onedriveCmd = &cobra.Command{
	Use:   "onedrive",
	Short: "Ingest documents from a OneDrive folder",
	Long: `Fetches files from a user's OneDrive via the Microsoft Graph API using
the client-credentials flow. Credentials can be given as flags or under the
[access.onedrive] table of the config file.`,
	RunE: runOnedrive,
}

func init() {
	onedriveCmd.Flags().StringVar(&onedriveClientID, "client-id", "", "Application (client) ID")
	onedriveCmd.Flags().StringVar(&onedriveClientSecret, "client-secret", "", "Client credential")
	onedriveCmd.Flags().StringVar(&onedriveTenant, "tenant", "", "Directory (tenant) ID or domain")
	onedriveCmd.Flags().StringVar(&onedriveUser, "user-pname", "", "User principal name whose drive to read")
	onedriveCmd.Flags().StringVar(&onedriveFolder, "folder", "", "Folder below the drive root (default whole drive)")
	onedriveCmd.Flags().BoolVarP(&onedriveRecursive, "recursive", "r", false, "Enumerate the full subtree instead of direct children")
	onedriveCmd.Flags().BoolVar(&onedriveRetain, "retain", false, "Keep downloaded files after a successful run")
	onedriveCmd.Flags().IntVar(&onedriveWorkers, "workers", 0, "Concurrent fetches (default from config)")
	onedriveCmd.Flags().StringVar(&onedriveDownloadDir, "download-dir", "", "Local root for fetched files (default from config)")
	onedriveCmd.Flags().StringVar(&onedriveOutputDir, "output-dir", "", "Local root for processed artifacts (default from config)")
	rootCmd.AddCommand(onedriveCmd)
}

func runOnedrive(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	access := cfg.AccessFor("onedrive")

	odCfg := &onedrive.Config{
		ClientID:          firstNonEmpty(onedriveClientID, access["client_id"]),
		ClientSecret:      firstNonEmpty(onedriveClientSecret, access["client_secret"]),
		Tenant:            firstNonEmpty(onedriveTenant, access["tenant"]),
		UserPrincipalName: firstNonEmpty(onedriveUser, access["user_pname"]),
		AuthorityURL:      access["authority_url"],
		FolderPath:        onedriveFolder,
		Recursive:         onedriveRecursive,
		Retain:            onedriveRetain,
		DownloadDir:       firstNonEmpty(onedriveDownloadDir, cfg.DownloadDir),
		OutputDir:         firstNonEmpty(onedriveOutputDir, cfg.OutputDir),
	}

	source, err := onedrive.New(ctx, odCfg)
	if err != nil {
		return err
	}

	workers := onedriveWorkers
	if workers <= 0 {
		workers = cfg.Workers
	}

	pipeline := &services.Pipeline{
		Source:      source,
		Partitioner: partition.New(),
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

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
