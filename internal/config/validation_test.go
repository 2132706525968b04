package config

import (
	"errors"
	"strings"
	"testing"
)

func validStoreConfig() *Config {
	cfg := DefaultConfig()
	cfg.Store.Enabled = true
	cfg.Store.Host = "localhost"
	cfg.Store.User = "koji"
	cfg.Store.Database = "imports"
	return cfg
}

func TestValidStoreConfig(t *testing.T) {
	if err := validStoreConfig().Validate(); err != nil {
		t.Errorf("expected no validation errors, got: %v", err)
	}
}

func TestDisabledStoreSkipsStoreValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Port = 0
	cfg.Store.Table = "bad-name"

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected disabled store to be ignored, got: %v", err)
	}
}

func TestStoreFieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"missing host", func(c *Config) { c.Store.Host = "" }, "store.host"},
		{"invalid port", func(c *Config) { c.Store.Port = 99999 }, "store.port"},
		{"missing user", func(c *Config) { c.Store.User = "" }, "store.user"},
		{"missing database", func(c *Config) { c.Store.Database = "" }, "store.database"},
		{"invalid tls", func(c *Config) { c.Store.TLS = "sometimes" }, "store.tls"},
		{"invalid table", func(c *Config) { c.Store.Table = "imports; DROP TABLE x" }, "store.table"},
		{"empty table", func(c *Config) { c.Store.Table = "" }, "store.table"},
		{"negative connections", func(c *Config) { c.Store.MaxConnections = -1 }, "store.max_connections"},
		{"negative idle", func(c *Config) { c.Store.MaxIdleConnections = -1 }, "store.max_idle_connections"},
		{"lock timeout", func(c *Config) { c.Store.LockTimeout = -5 }, "store.lock_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validStoreConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error for %s", tt.field)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to mention %q, got: %v", tt.field, err)
			}
		})
	}
}

func TestNegativeMetadataVersion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Import.MetadataVersion = -1

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "import.metadata_version") {
		t.Errorf("expected import.metadata_version error, got: %v", err)
	}
}

func TestInvalidLogging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "verbose"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors for logging")
	}
	if !strings.Contains(err.Error(), "logging.level") || !strings.Contains(err.Error(), "logging.format") {
		t.Errorf("expected both logging errors, got: %v", err)
	}
}

func TestMultipleErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Enabled = true
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	// host, user, database and logging.level
	if len(verrs) != 4 {
		t.Errorf("expected 4 errors, got %d: %v", len(verrs), verrs)
	}
}
