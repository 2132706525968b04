package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified YAML file and substitutes
// ${VAR} references in credential fields.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadOptional behaves like Load but returns DefaultConfig when the file does
// not exist. Any other read error is returned.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return Load(configPath)
}

// LoadFromViper creates a Config from an existing Viper instance.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	substituteEnvVars(cfg)
	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

func substituteEnvVars(cfg *Config) {
	cfg.Store.Host = ExpandEnv(cfg.Store.Host)
	cfg.Store.User = ExpandEnv(cfg.Store.User)
	cfg.Store.Password = ExpandEnv(cfg.Store.Password)
	cfg.Store.Database = ExpandEnv(cfg.Store.Database)
	cfg.Logging.Output = ExpandEnv(cfg.Logging.Output)
}

// ExpandEnv expands ${VAR} and $VAR references. Unset variables are left as is.
func ExpandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var name string
		if strings.HasPrefix(match, "${") {
			name = match[2 : len(match)-1]
		} else {
			name = match[1:]
		}

		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return match
	})
}

// ApplyOverrides applies CLI flag overrides. Only non-empty values and a
// non-negative metadata version are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat string, metadataVersion int, strict bool) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if metadataVersion >= 0 {
		c.Import.MetadataVersion = metadataVersion
	}
	if strict {
		c.Import.Strict = true
	}
}
