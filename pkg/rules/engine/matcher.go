package engine

import (
	"log/slog"

	"avdesign-hq/meridian/pkg/standards"
)

// Matcher decides whether a single rule applies to a design context.
type Matcher struct {
	logger *slog.Logger
}

// NewMatcher creates a condition matcher.
func NewMatcher(logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{logger: logger}
}

// Matches reports whether every condition of the rule holds under the
// design's dimension values. Conditions are AND-combined, and a
// condition over an unspecified dimension evaluates to false (the
// fail-closed policy), so incompletely specified contexts never trigger
// rules meant for a narrower scope.
func (m *Matcher) Matches(rule *standards.Rule, design *DesignContext) bool {
	if len(rule.Conditions) == 0 {
		// Structurally invalid; the gate should have rejected it.
		return false
	}

	for _, cond := range rule.Conditions {
		actual, ok := design.Dimensions.Value(cond.Dimension)
		if !ok {
			m.logger.Debug("dimension unset, condition fails closed",
				"rule_id", rule.ID,
				"dimension", cond.Dimension,
			)
			return false
		}

		if !evaluateCondition(cond.Operator, standards.StringValue(actual), cond.Value) {
			return false
		}
	}

	return true
}
