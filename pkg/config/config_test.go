package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Standards.Source != "dir" || cfg.Standards.Path != "./standards" {
		t.Errorf("standards defaults wrong: %+v", cfg.Standards)
	}
	if cfg.Standards.WatchDebounce != 100*time.Millisecond {
		t.Errorf("watch debounce = %v", cfg.Standards.WatchDebounce)
	}
	if cfg.Engine.MaxRulesPerPass != 1000 || cfg.Engine.EnableTrace {
		t.Errorf("engine defaults wrong: %+v", cfg.Engine)
	}
	if !cfg.History.Enabled || cfg.History.RetentionDays != 90 {
		t.Errorf("history defaults wrong: %+v", cfg.History)
	}
	if cfg.History.PruneSchedule != "0 3 * * *" {
		t.Errorf("prune schedule = %q", cfg.History.PruneSchedule)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("logging defaults wrong: %+v", cfg.Logging)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("default configuration must validate: %v", err)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Standards.Path = "/etc/meridian/standards"
	cfg.Engine.MaxRulesPerPass = 50
	cfg.Logging.Level = "debug"

	ApplyDefaults(cfg)

	if cfg.Standards.Path != "/etc/meridian/standards" {
		t.Errorf("explicit path overwritten: %q", cfg.Standards.Path)
	}
	if cfg.Engine.MaxRulesPerPass != 50 {
		t.Errorf("explicit limit overwritten: %d", cfg.Engine.MaxRulesPerPass)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("explicit level overwritten: %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("unset format not defaulted: %q", cfg.Logging.Format)
	}
}
