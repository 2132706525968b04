package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile         string
	logLevel        string
	logFormat       string
	metadataVersion int
	noColor         bool
)

var rootCmd = &cobra.Command{
	Use:   "kojiimport",
	Short: "Koji content generator import builder",
	Long: `A CLI tool that assembles Koji content generator imports from
manifests, reports every missing property in one pass, and archives
validated imports in MySQL.

Features:
  - Staged assembly of build, build root and output sections
  - Aggregated validation with path-qualified missing properties
  - Order-independent structural equality and hashing
  - JSON and YAML rendering in the Koji metadata layout
  - MySQL archive guarded by per-build advisory locks`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "kojiimport.yaml",
		"Path to configuration file (optional)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Import overrides
	rootCmd.PersistentFlags().IntVar(&metadataVersion, "metadata-version", -1,
		"Override default metadata version for manifests that omit it")

	// Output
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel        string
	LogFormat       string
	MetadataVersion int
	NoColor         bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:        logLevel,
		LogFormat:       logFormat,
		MetadataVersion: metadataVersion,
		NoColor:         noColor,
	}
}
