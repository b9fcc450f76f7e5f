package config

import "time"

// Config is the root configuration structure for Meridian. It contains
// all configuration sections for the standards library, the validation
// engine, pass history, and logging.
type Config struct {
	// Standards contains configuration for where the standards library
	// lives and whether it is watched for changes.
	Standards StandardsConfig `yaml:"standards"`

	// Engine contains configuration for the validation engine.
	Engine EngineConfig `yaml:"engine"`

	// History contains configuration for validation pass history.
	History HistoryConfig `yaml:"history"`

	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// StandardsConfig contains configuration for the standards library.
type StandardsConfig struct {
	// Source selects where standards are loaded from: "dir" for a
	// directory of YAML files, "sqlite" for a database.
	// Default: "dir"
	Source string `yaml:"source"`

	// Path is the standards directory when Source is "dir".
	// Default: "./standards"
	Path string `yaml:"path"`

	// DatabasePath is the SQLite file when Source is "sqlite".
	// Default: "data/standards.db"
	DatabasePath string `yaml:"database_path"`

	// Watch reloads directory-sourced standards when files change.
	// Default: false
	Watch bool `yaml:"watch"`

	// WatchDebounce is the quiet interval before a reload fires after
	// a burst of file events.
	// Default: 100ms
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// EngineConfig contains configuration for the validation engine.
type EngineConfig struct {
	// MaxRulesPerPass bounds the number of rules a single validation
	// pass will evaluate. 0 means unlimited.
	// Default: 1000
	MaxRulesPerPass int `yaml:"max_rules_per_pass"`

	// EnableTrace records per-step evaluation details on results.
	// Default: false
	EnableTrace bool `yaml:"enable_trace"`

	// Severity maps rule aspects to severities, overriding the
	// aspect-based defaults. Keys are aspect names
	// (e.g. "configuration"), values are "error", "warning", or
	// "suggestion".
	Severity map[string]string `yaml:"severity"`
}

// HistoryConfig contains configuration for validation pass history.
type HistoryConfig struct {
	// Enabled enables history recording.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// DatabasePath is the SQLite file holding pass history.
	// Default: "data/history.db"
	DatabasePath string `yaml:"database_path"`

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 256
	AsyncBuffer int `yaml:"async_buffer"`

	// WriteTimeout is the timeout for writing a record to storage.
	// Default: 5s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// RetentionDays is the number of days to retain records.
	// 0 keeps records forever.
	// Default: 90
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is a cron expression for scheduled pruning.
	// Empty disables the scheduler.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`

	// MaxRecords caps the number of retained records. 0 is unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "text" or "json".
	// Default: "text"
	Format string `yaml:"format"`
}
