package engine

import "fmt"

// Config contains configuration for the validation engine.
type Config struct {
	// MaxRulesPerPass bounds the number of rules a single pass will
	// accept. Zero means unlimited. Default: 1000.
	MaxRulesPerPass int

	// EnableTrace records per-step evaluation details on the result.
	// Adds overhead; intended for debugging and verbose CLI output.
	// Default: false.
	EnableTrace bool

	// SeverityPolicy classifies failing outcomes. Nil selects
	// AspectSeverityPolicy.
	SeverityPolicy SeverityPolicy

	// Metrics receives Prometheus observations when non-nil. Construct
	// one Metrics per process (collectors register globally).
	Metrics *Metrics
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxRulesPerPass: 1000,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.MaxRulesPerPass < 0 {
		return fmt.Errorf("%w: MaxRulesPerPass must not be negative, got %d",
			ErrInvalidConfig, c.MaxRulesPerPass)
	}
	return nil
}
