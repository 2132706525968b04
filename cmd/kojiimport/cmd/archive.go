package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/kojiimport/internal/koji"
	"github.com/dbsmedya/kojiimport/internal/lock"
	"github.com/dbsmedya/kojiimport/internal/report"
	"github.com/dbsmedya/kojiimport/internal/store"
)

var (
	archiveManifest string
	archiveStrict   bool
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Validate an import manifest and archive it in MySQL",
	Long: `Archive assembles an import manifest and stores the validated import
in the archive database, one row per build NVR.

The archive process follows these steps:
  1. Assemble and validate the manifest (all missing properties reported)
  2. Take the build's advisory lock
  3. Compare with any archived import of the same NVR by checksum
  4. Insert the import, or keep the existing row when it is identical

An NVR archived with different content is rejected.

Example:
  kojiimport archive --config kojiimport.yaml --manifest import.yaml`,
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().StringVarP(&archiveManifest, "manifest", "m", "",
		"Path to import manifest (required)")
	archiveCmd.MarkFlagRequired("manifest")

	archiveCmd.Flags().BoolVar(&archiveStrict, "strict", false,
		"Refuse imports with identity conflicts or dangling output references")

	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(archiveStrict)
	if err != nil {
		return err
	}
	defer log.Sync()

	info, err := assembleManifest(archiveManifest, cfg)
	var verr *koji.VerificationError
	if errors.As(err, &verr) {
		if werr := report.WriteMissing(cmd.ErrOrStderr(), verr); werr != nil {
			return werr
		}
		return fmt.Errorf("manifest %s is incomplete", archiveManifest)
	}
	if err != nil {
		return err
	}

	if cfg.Import.Strict {
		if problems := append(info.IdentityConflicts(), info.DanglingOutputs()...); len(problems) > 0 {
			if werr := report.WriteProblems(cmd.ErrOrStderr(), "Strict validation problems", problems); werr != nil {
				return werr
			}
			return fmt.Errorf("strict validation failed: %d problem(s)", len(problems))
		}
	}

	// Setup context with signal handling
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}

	rec, created, err := s.Save(ctx, info)
	switch {
	case errors.Is(err, store.ErrChecksumConflict):
		return fmt.Errorf("refusing to overwrite archived build: %w", err)
	case errors.Is(err, lock.ErrLockTimeout):
		return fmt.Errorf("another archive of %s is in progress: %w", info.Build().NVR(), err)
	case err != nil:
		return err
	}

	if created {
		cmd.Printf("✓ Archived %s as %s (checksum %s)\n", rec.NVR, rec.ArchiveID, rec.Checksum)
	} else {
		cmd.Printf("✓ %s already archived as %s, unchanged\n", rec.NVR, rec.ArchiveID)
	}
	return nil
}
