package cmd

import (
	"fmt"

	"github.com/dbsmedya/kojiimport/internal/config"
	"github.com/dbsmedya/kojiimport/internal/koji"
	"github.com/dbsmedya/kojiimport/internal/logger"
	"github.com/dbsmedya/kojiimport/internal/manifest"
	"github.com/dbsmedya/kojiimport/internal/report"
	"github.com/dbsmedya/kojiimport/internal/wire"
)

// loadConfig loads the optional config file, applies CLI overrides and
// validates the result.
func loadConfig(strict bool) (*config.Config, error) {
	cfg, err := config.LoadOptional(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat, overrides.MetadataVersion, strict)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	report.SetColor(!overrides.NoColor)
	return cfg, nil
}

// setup loads configuration and creates the logger.
func setup(strict bool) (*config.Config, *logger.Logger, error) {
	cfg, err := loadConfig(strict)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

// assembleManifest loads a manifest and runs it through the import builder.
// An incomplete manifest returns a *koji.VerificationError.
func assembleManifest(path string, cfg *config.Config) (*koji.ImportInfo, error) {
	doc, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	return wire.Assemble(doc, cfg.Import.MetadataVersion)
}
