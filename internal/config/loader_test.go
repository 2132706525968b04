package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kojiimport.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
import:
  metadata_version: 2
  strict: true
store:
  enabled: true
  host: db.example.com
  user: koji
  database: imports
  table: cg_imports
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Import.MetadataVersion != 2 {
		t.Errorf("expected metadata_version 2, got %d", cfg.Import.MetadataVersion)
	}
	if !cfg.Import.Strict {
		t.Error("expected strict mode")
	}
	if cfg.Store.Host != "db.example.com" {
		t.Errorf("expected store host 'db.example.com', got %s", cfg.Store.Host)
	}
	if cfg.Store.Table != "cg_imports" {
		t.Errorf("expected table 'cg_imports', got %s", cfg.Store.Table)
	}
	// Defaults survive for keys the file does not set
	if cfg.Store.Port != 3306 {
		t.Errorf("expected default port 3306, got %d", cfg.Store.Port)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected format 'json', got %s", cfg.Logging.Format)
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	t.Setenv("TEST_KOJI_DB_HOST", "env-host")
	t.Setenv("TEST_KOJI_DB_PASS", "env-pass")

	path := writeConfig(t, `
store:
  host: ${TEST_KOJI_DB_HOST}
  password: $TEST_KOJI_DB_PASS
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Store.Host != "env-host" {
		t.Errorf("expected store host 'env-host', got %s", cfg.Store.Host)
	}
	if cfg.Store.Password != "env-pass" {
		t.Errorf("expected store password 'env-pass', got %s", cfg.Store.Password)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "test-value")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TEST_VAR}", "test-value"},
		{"$TEST_VAR", "test-value"},
		{"prefix-${TEST_VAR}-suffix", "prefix-test-value-suffix"},
		{"${NONEXISTENT_KOJI_VAR}", "${NONEXISTENT_KOJI_VAR}"},
		{"no-vars-here", "no-vars-here"},
	}

	for _, tt := range tests {
		if got := ExpandEnv(tt.input); got != tt.expected {
			t.Errorf("ExpandEnv(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	if _, err := Load("/nonexistent/kojiimport.yaml"); err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected defaults for missing file, got: %v", err)
	}
	if cfg.Store.Table != "koji_imports" {
		t.Errorf("expected default config, got table %s", cfg.Store.Table)
	}

	path := writeConfig(t, "import:\n  metadata_version: 5\n")
	cfg, err = LoadOptional(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Import.MetadataVersion != 5 {
		t.Errorf("expected metadata_version 5, got %d", cfg.Import.MetadataVersion)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyOverrides("debug", "json", 1, true)

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected format 'json', got %s", cfg.Logging.Format)
	}
	if cfg.Import.MetadataVersion != 1 {
		t.Errorf("expected metadata_version 1, got %d", cfg.Import.MetadataVersion)
	}
	if !cfg.Import.Strict {
		t.Error("expected strict mode")
	}
}

func TestApplyOverridesZeroValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Import.MetadataVersion = 4
	cfg.Import.Strict = true
	cfg.ApplyOverrides("", "", -1, false)

	if cfg.Logging.Level != "info" {
		t.Errorf("expected level unchanged, got %s", cfg.Logging.Level)
	}
	if cfg.Import.MetadataVersion != 4 {
		t.Errorf("expected metadata_version unchanged, got %d", cfg.Import.MetadataVersion)
	}
	if !cfg.Import.Strict {
		t.Error("expected strict mode to stay on")
	}
}
