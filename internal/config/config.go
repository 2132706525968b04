// Package config provides configuration structures and loading for kojiimport.
package config

import "github.com/dbsmedya/kojiimport/internal/koji"

// Config represents the complete application configuration.
type Config struct {
	Import  ImportConfig  `yaml:"import" mapstructure:"import"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// ImportConfig controls how manifests are assembled into imports.
type ImportConfig struct {
	MetadataVersion int  `yaml:"metadata_version" mapstructure:"metadata_version"`
	Strict          bool `yaml:"strict" mapstructure:"strict"` // fail on identity conflicts and dangling outputs
}

// StoreConfig represents the MySQL archive that validated imports are saved to.
type StoreConfig struct {
	Enabled            bool   `yaml:"enabled" mapstructure:"enabled"`
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	Table              string `yaml:"table" mapstructure:"table"`
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
	LockTimeout        int    `yaml:"lock_timeout" mapstructure:"lock_timeout"` // seconds, -1 waits forever
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Import: ImportConfig{
			MetadataVersion: koji.DefaultMetadataVersion,
		},
		Store: StoreConfig{
			Port:               3306,
			TLS:                "preferred",
			Table:              "koji_imports",
			MaxConnections:     4,
			MaxIdleConnections: 2,
			LockTimeout:        10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
