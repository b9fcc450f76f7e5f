package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
standards:
  path: /srv/standards
  watch: true
  watch_debounce: 250ms

engine:
  max_rules_per_pass: 200
  severity:
    commercial: warning

history:
  retention_days: 30

logging:
  level: debug
  format: json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Standards.Path != "/srv/standards" || !cfg.Standards.Watch {
		t.Errorf("standards section lost: %+v", cfg.Standards)
	}
	if cfg.Standards.WatchDebounce != 250*time.Millisecond {
		t.Errorf("watch debounce = %v", cfg.Standards.WatchDebounce)
	}
	if cfg.Engine.MaxRulesPerPass != 200 {
		t.Errorf("max rules = %d", cfg.Engine.MaxRulesPerPass)
	}
	if cfg.Engine.Severity["commercial"] != "warning" {
		t.Errorf("severity map lost: %v", cfg.Engine.Severity)
	}
	if cfg.History.RetentionDays != 30 {
		t.Errorf("retention days = %d", cfg.History.RetentionDays)
	}
	if !cfg.History.Enabled {
		t.Error("history must default to enabled")
	}
	if cfg.History.DatabasePath != DefaultHistoryDatabasePath {
		t.Errorf("history db path not defaulted: %q", cfg.History.DatabasePath)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging section lost: %+v", cfg.Logging)
	}
}

func TestLoadConfigExplicitDisable(t *testing.T) {
	path := writeConfig(t, `
history:
  enabled: false
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.History.Enabled {
		t.Error("explicit history.enabled=false was overridden")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file must fail")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := writeConfig(t, "standards: [\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("broken YAML must fail")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeConfig(t, `
standards:
  source: ldap
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("invalid configuration must fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
standards:
  path: /srv/standards
`)

	t.Setenv("MERIDIAN_STANDARDS_PATH", "/opt/standards")
	t.Setenv("MERIDIAN_ENGINE_MAX_RULES_PER_PASS", "77")
	t.Setenv("MERIDIAN_HISTORY_ENABLED", "false")
	t.Setenv("MERIDIAN_LOGGING_LEVEL", "warn")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides: %v", err)
	}

	if cfg.Standards.Path != "/opt/standards" {
		t.Errorf("path override lost: %q", cfg.Standards.Path)
	}
	if cfg.Engine.MaxRulesPerPass != 77 {
		t.Errorf("limit override lost: %d", cfg.Engine.MaxRulesPerPass)
	}
	if cfg.History.Enabled {
		t.Error("history enable override lost")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level override lost: %q", cfg.Logging.Level)
	}
}

func TestEnvOverrideInvalidFailsValidation(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("MERIDIAN_LOGGING_LEVEL", "loud")
	if _, err := LoadConfigWithEnvOverrides(path); err == nil {
		t.Fatal("invalid override must fail validation")
	}
}
