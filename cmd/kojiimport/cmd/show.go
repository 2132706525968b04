package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/kojiimport/internal/config"
	"github.com/dbsmedya/kojiimport/internal/database"
	"github.com/dbsmedya/kojiimport/internal/koji"
	"github.com/dbsmedya/kojiimport/internal/logger"
	"github.com/dbsmedya/kojiimport/internal/report"
	"github.com/dbsmedya/kojiimport/internal/store"
	"github.com/dbsmedya/kojiimport/internal/wire"
)

var (
	showManifest string
	showNVR      string
	showOutput   string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Render an import as a table, JSON or YAML",
	Long: `Show assembles an import and renders it. The import comes from a
manifest file, or from the archive when --nvr is given.

Output formats:
  - table: summary with build root and output tables
  - json:  Koji content generator metadata
  - yaml:  the same document as YAML

Example:
  kojiimport show --manifest import.yaml -o json
  kojiimport show --nvr commons-io-2.4-1`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showManifest, "manifest", "m", "",
		"Path to import manifest")
	showCmd.Flags().StringVar(&showNVR, "nvr", "",
		"Load an archived import by name-version-release")
	showCmd.MarkFlagsMutuallyExclusive("manifest", "nvr")
	showCmd.MarkFlagsOneRequired("manifest", "nvr")

	showCmd.Flags().StringVarP(&showOutput, "output", "o", "table",
		"Output format (table, json, yaml)")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	switch showOutput {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q (must be table, json or yaml)", showOutput)
	}

	cfg, log, err := setup(false)
	if err != nil {
		return err
	}
	defer log.Sync()

	var info *koji.ImportInfo
	if showNVR != "" {
		info, err = loadArchived(cmd.Context(), cfg, log, showNVR)
	} else {
		info, err = assembleManifest(showManifest, cfg)
	}

	var verr *koji.VerificationError
	if errors.As(err, &verr) {
		if werr := report.WriteMissing(cmd.ErrOrStderr(), verr); werr != nil {
			return werr
		}
		return fmt.Errorf("import is incomplete")
	}
	if err != nil {
		return err
	}

	return renderImport(cmd, info, showOutput)
}

func renderImport(cmd *cobra.Command, info *koji.ImportInfo, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		data, err := wire.Encode(info)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "yaml":
		data, err := wire.EncodeYAML(info)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return report.WriteSummary(out, info)
	}
}

func loadArchived(ctx context.Context, cfg *config.Config, log *logger.Logger, nvr string) (*koji.ImportInfo, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	return s.Load(ctx, nvr)
}

// openStore connects to the archive database. The returned func closes it.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store.Store, func(), error) {
	if !cfg.Store.Enabled {
		return nil, nil, fmt.Errorf("archive store is disabled (set store.enabled in %s)", GetConfigFile())
	}

	dbManager := database.NewManager(&cfg.Store)
	if err := dbManager.Connect(ctx); err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("Failed to close archive database: %v", err)
		}
	}

	s, err := store.New(dbManager.DB, cfg.Store.Table, cfg.Store.LockTimeout, log)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return s, closeDB, nil
}
