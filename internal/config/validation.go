package config

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Validate checks every section and reports all problems together.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Import.MetadataVersion < 0 {
		errs = append(errs, ValidationError{
			Field:   "import.metadata_version",
			Message: "metadata_version cannot be negative",
		})
	}

	if c.Store.Enabled {
		errs = append(errs, c.validateStore()...)
	}

	errs = append(errs, c.validateLogging()...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Config) validateStore() ValidationErrors {
	var errs ValidationErrors
	s := &c.Store

	if s.Host == "" {
		errs = append(errs, ValidationError{Field: "store.host", Message: "host is required when store is enabled"})
	}
	if s.Port <= 0 || s.Port > 65535 {
		errs = append(errs, ValidationError{Field: "store.port", Message: "port must be between 1 and 65535"})
	}
	if s.User == "" {
		errs = append(errs, ValidationError{Field: "store.user", Message: "user is required when store is enabled"})
	}
	if s.Database == "" {
		errs = append(errs, ValidationError{Field: "store.database", Message: "database name is required when store is enabled"})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[s.TLS] {
		errs = append(errs, ValidationError{Field: "store.tls", Message: "tls must be 'disable', 'preferred', or 'required'"})
	}

	if !tableNamePattern.MatchString(s.Table) {
		errs = append(errs, ValidationError{Field: "store.table", Message: "table must contain only letters, digits and underscores"})
	}

	if s.MaxConnections < 0 {
		errs = append(errs, ValidationError{Field: "store.max_connections", Message: "max_connections cannot be negative"})
	}
	if s.MaxIdleConnections < 0 {
		errs = append(errs, ValidationError{Field: "store.max_idle_connections", Message: "max_idle_connections cannot be negative"})
	}
	if s.LockTimeout < -1 {
		errs = append(errs, ValidationError{Field: "store.lock_timeout", Message: "lock_timeout must be -1 (wait forever) or a number of seconds"})
	}

	return errs
}

func (c *Config) validateLogging() ValidationErrors {
	var errs ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, ValidationError{Field: "logging.level", Message: "level must be 'debug', 'info', 'warn', or 'error'"})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errs = append(errs, ValidationError{Field: "logging.format", Message: "format must be 'json' or 'text'"})
	}

	return errs
}
