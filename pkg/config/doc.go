// Package config provides configuration management for Meridian.
//
// This package handles loading, validating, and managing configuration
// from YAML files with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention
// MERIDIAN_SECTION_FIELD. For example:
//
//   - MERIDIAN_STANDARDS_PATH overrides standards.path
//   - MERIDIAN_HISTORY_DATABASE_PATH overrides history.database_path
//   - MERIDIAN_LOGGING_LEVEL overrides logging.level
//
// Environment variables always take precedence over file-based
// configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later
// overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
// For application-wide configuration access, use the singleton
// pattern:
//
//	// At application startup
//	if err := config.Initialize("config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Anywhere in the application
//	cfg := config.GetConfig()
//
// For testing, prefer dependency injection with explicit Config
// instances rather than the global singleton.
package config
