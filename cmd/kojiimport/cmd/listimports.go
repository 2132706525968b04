package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/kojiimport/internal/report"
)

var listImportsCmd = &cobra.Command{
	Use:   "list-imports",
	Short: "List archived imports",
	Long: `List-imports displays every import in the archive database, newest
first, with its archive id and checksum.

Example:
  kojiimport list-imports --config kojiimport.yaml`,
	RunE: runListImports,
}

func init() {
	rootCmd.AddCommand(listImportsCmd)
}

func runListImports(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(false)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := s.List(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		cmd.Printf("No imports archived in %s\n", cfg.Store.Table)
		return nil
	}

	table := report.NewTable("NVR", "ARCHIVE ID", "VERSION", "CHECKSUM", "CREATED")
	for _, rec := range records {
		table.AddRow(rec.NVR, rec.ArchiveID, strconv.Itoa(rec.MetadataVersion), rec.Checksum,
			rec.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	}
	if err := table.Render(cmd.OutOrStdout()); err != nil {
		return err
	}

	cmd.Printf("\nTotal: %d import(s)\n", len(records))
	return nil
}
