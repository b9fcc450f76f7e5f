package config

import "time"

// Default values for configuration fields.
const (
	// Standards defaults
	DefaultStandardsSource       = "dir"
	DefaultStandardsPath         = "./standards"
	DefaultStandardsDatabasePath = "data/standards.db"
	DefaultStandardsWatch        = false
	DefaultWatchDebounce         = 100 * time.Millisecond

	// Engine defaults
	DefaultMaxRulesPerPass = 1000
	DefaultEnableTrace     = false

	// History defaults
	DefaultHistoryEnabled      = true
	DefaultHistoryDatabasePath = "data/history.db"
	DefaultHistoryAsyncBuffer  = 256
	DefaultHistoryWriteTimeout = 5 * time.Second
	DefaultRetentionDays       = 90
	DefaultPruneSchedule       = "0 3 * * *"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// ApplyDefaults fills in default values for unset configuration
// fields. Zero values are treated as unset except where a zero is
// meaningful (MaxRecords, Watch, EnableTrace).
func ApplyDefaults(cfg *Config) {
	if cfg.Standards.Source == "" {
		cfg.Standards.Source = DefaultStandardsSource
	}
	if cfg.Standards.Path == "" {
		cfg.Standards.Path = DefaultStandardsPath
	}
	if cfg.Standards.DatabasePath == "" {
		cfg.Standards.DatabasePath = DefaultStandardsDatabasePath
	}
	if cfg.Standards.WatchDebounce == 0 {
		cfg.Standards.WatchDebounce = DefaultWatchDebounce
	}

	if cfg.Engine.MaxRulesPerPass == 0 {
		cfg.Engine.MaxRulesPerPass = DefaultMaxRulesPerPass
	}

	if cfg.History.DatabasePath == "" {
		cfg.History.DatabasePath = DefaultHistoryDatabasePath
	}
	if cfg.History.AsyncBuffer == 0 {
		cfg.History.AsyncBuffer = DefaultHistoryAsyncBuffer
	}
	if cfg.History.WriteTimeout == 0 {
		cfg.History.WriteTimeout = DefaultHistoryWriteTimeout
	}
	if cfg.History.RetentionDays == 0 {
		cfg.History.RetentionDays = DefaultRetentionDays
	}
	if cfg.History.PruneSchedule == "" {
		cfg.History.PruneSchedule = DefaultPruneSchedule
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{
		History: HistoryConfig{Enabled: DefaultHistoryEnabled},
	}
	ApplyDefaults(cfg)
	return cfg
}
