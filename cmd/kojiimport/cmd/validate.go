package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/kojiimport/internal/koji"
	"github.com/dbsmedya/kojiimport/internal/report"
)

var (
	validateManifest string
	validateStrict   bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an import manifest",
	Long: `Validate assembles an import manifest and reports every missing
required property at once, grouped by section.

Checks performed:
  - Build description: name, version, release, source, start and end time
  - Build roots: host, container, content generator
  - Outputs: build root, filename, size, arch, checksum and type
  - Identity conflicts and outputs referencing unknown build roots
    (warnings, or failures with --strict)

Example:
  kojiimport validate --manifest import.yaml --strict`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateManifest, "manifest", "m", "",
		"Path to import manifest (required)")
	validateCmd.MarkFlagRequired("manifest")

	validateCmd.Flags().BoolVar(&validateStrict, "strict", false,
		"Fail on identity conflicts and dangling output references")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(validateStrict)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Debugf("Validating manifest %s", validateManifest)

	out := cmd.OutOrStdout()
	info, err := assembleManifest(validateManifest, cfg)
	var verr *koji.VerificationError
	if errors.As(err, &verr) {
		if werr := report.WriteMissing(out, verr); werr != nil {
			return werr
		}
		return fmt.Errorf("manifest %s is incomplete", validateManifest)
	}
	if err != nil {
		return err
	}

	conflicts := info.IdentityConflicts()
	dangling := info.DanglingOutputs()
	if err := report.WriteProblems(out, "Identity conflicts", conflicts); err != nil {
		return err
	}
	if err := report.WriteProblems(out, "Outputs referencing unknown build roots", dangling); err != nil {
		return err
	}

	if problems := len(conflicts) + len(dangling); problems > 0 {
		if cfg.Import.Strict {
			return fmt.Errorf("strict validation failed: %d problem(s)", problems)
		}
		log.Warnf("Manifest has %d problem(s); pass --strict to fail on them", problems)
	}

	cmd.Printf("✓ %s is complete (%d build root(s), %d output(s))\n",
		info.Build().NVR(), len(info.BuildRoots()), len(info.Outputs()))
	return nil
}
