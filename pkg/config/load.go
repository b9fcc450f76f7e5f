package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified
// path. It applies default values, validates the configuration, and
// returns any errors. Use LoadConfigWithEnvOverrides for environment
// variable overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Booleans that default to true are pre-set so an omitted key and
	// an explicit false stay distinguishable through unmarshalling.
	var cfg Config
	cfg.History.Enabled = DefaultHistoryEnabled
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Environment variables follow
// the naming convention MERIDIAN_SECTION_FIELD
// (e.g. MERIDIAN_STANDARDS_PATH) and always take precedence over
// file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	// Standards overrides
	if val := os.Getenv("MERIDIAN_STANDARDS_SOURCE"); val != "" {
		cfg.Standards.Source = val
	}
	if val := os.Getenv("MERIDIAN_STANDARDS_PATH"); val != "" {
		cfg.Standards.Path = val
	}
	if val := os.Getenv("MERIDIAN_STANDARDS_DATABASE_PATH"); val != "" {
		cfg.Standards.DatabasePath = val
	}
	if val := os.Getenv("MERIDIAN_STANDARDS_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Standards.Watch = b
		}
	}
	if val := os.Getenv("MERIDIAN_STANDARDS_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Standards.WatchDebounce = d
		}
	}

	// Engine overrides
	if val := os.Getenv("MERIDIAN_ENGINE_MAX_RULES_PER_PASS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Engine.MaxRulesPerPass = n
		}
	}
	if val := os.Getenv("MERIDIAN_ENGINE_ENABLE_TRACE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Engine.EnableTrace = b
		}
	}

	// History overrides
	if val := os.Getenv("MERIDIAN_HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv("MERIDIAN_HISTORY_DATABASE_PATH"); val != "" {
		cfg.History.DatabasePath = val
	}
	if val := os.Getenv("MERIDIAN_HISTORY_RETENTION_DAYS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.History.RetentionDays = n
		}
	}
	if val := os.Getenv("MERIDIAN_HISTORY_PRUNE_SCHEDULE"); val != "" {
		cfg.History.PruneSchedule = val
	}

	// Logging overrides
	if val := os.Getenv("MERIDIAN_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("MERIDIAN_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}
