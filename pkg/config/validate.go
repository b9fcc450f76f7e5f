package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific
// configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field
	// (e.g. "standards.path").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a
// configuration.
type ValidationError struct {
	// Errors contains all validation errors found.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

var (
	validAspects = map[string]bool{
		"equipment_selection": true,
		"placement":           true,
		"configuration":       true,
		"quantities":          true,
		"cabling":             true,
		"commercial":          true,
	}
	validSeverities = map[string]bool{
		"error":      true,
		"warning":    true,
		"suggestion": true,
	}
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"text": true, "json": true}
)

// Validate validates the entire configuration. All validation errors
// are collected and returned together as a *ValidationError.
func Validate(cfg *Config) error {
	var errs []FieldError

	switch cfg.Standards.Source {
	case "dir":
		if cfg.Standards.Path == "" {
			errs = append(errs, FieldError{"standards.path", "path is required when source is \"dir\""})
		}
	case "sqlite":
		if cfg.Standards.DatabasePath == "" {
			errs = append(errs, FieldError{"standards.database_path", "database path is required when source is \"sqlite\""})
		}
	default:
		errs = append(errs, FieldError{"standards.source",
			fmt.Sprintf("unknown source %q (expected \"dir\" or \"sqlite\")", cfg.Standards.Source)})
	}
	if cfg.Standards.WatchDebounce < 0 {
		errs = append(errs, FieldError{"standards.watch_debounce", "must not be negative"})
	}
	if cfg.Standards.Watch && cfg.Standards.Source != "dir" {
		errs = append(errs, FieldError{"standards.watch", "watch mode requires source \"dir\""})
	}

	if cfg.Engine.MaxRulesPerPass < 0 {
		errs = append(errs, FieldError{"engine.max_rules_per_pass", "must not be negative"})
	}
	for aspect, severity := range cfg.Engine.Severity {
		if !validAspects[aspect] {
			errs = append(errs, FieldError{"engine.severity",
				fmt.Sprintf("unknown aspect %q", aspect)})
		}
		if !validSeverities[severity] {
			errs = append(errs, FieldError{"engine.severity",
				fmt.Sprintf("unknown severity %q for aspect %q", severity, aspect)})
		}
	}

	if cfg.History.Enabled {
		if cfg.History.DatabasePath == "" {
			errs = append(errs, FieldError{"history.database_path", "database path is required when history is enabled"})
		}
		if cfg.History.AsyncBuffer < 0 {
			errs = append(errs, FieldError{"history.async_buffer", "must not be negative"})
		}
		if cfg.History.RetentionDays < 0 {
			errs = append(errs, FieldError{"history.retention_days", "must not be negative"})
		}
		if cfg.History.MaxRecords < 0 {
			errs = append(errs, FieldError{"history.max_records", "must not be negative"})
		}
		if cfg.History.PruneSchedule != "" {
			if _, err := cron.ParseStandard(cfg.History.PruneSchedule); err != nil {
				errs = append(errs, FieldError{"history.prune_schedule",
					fmt.Sprintf("invalid cron expression %q", cfg.History.PruneSchedule)})
			}
		}
	}

	if !validLogLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{"logging.level",
			fmt.Sprintf("unknown level %q (expected debug, info, warn, or error)", cfg.Logging.Level)})
	}
	if !validLogFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{"logging.format",
			fmt.Sprintf("unknown format %q (expected text or json)", cfg.Logging.Format)})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
