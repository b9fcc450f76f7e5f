package engine

import "avdesign-hq/meridian/pkg/standards"

// Severity classifies a validation issue. Errors block a save or
// import; warnings and suggestions never do.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// rank orders severities for dedup (higher wins).
func (s Severity) rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeveritySuggestion:
		return 1
	}
	return 0
}

// IsValid returns true for a known severity.
func (s Severity) IsValid() bool {
	return s == SeverityError || s == SeverityWarning || s == SeveritySuggestion
}

// SeverityPolicy derives the severity of a failing rule outcome. Rules
// carry no severity field of their own, so classification is supplied
// by the caller; AspectSeverityPolicy is the default.
type SeverityPolicy func(rule *standards.Rule, outcome Outcome) Severity

// AspectSeverityPolicy classifies by the rule's aspect: the override
// aspects (equipment selection, placement, configuration) produce
// errors, quantities and cabling produce warnings, and commercial rules
// produce suggestions.
func AspectSeverityPolicy(rule *standards.Rule, outcome Outcome) Severity {
	switch rule.Aspect {
	case standards.AspectEquipmentSelection, standards.AspectPlacement, standards.AspectConfiguration:
		return SeverityError
	case standards.AspectQuantities, standards.AspectCabling:
		return SeverityWarning
	case standards.AspectCommercial:
		return SeveritySuggestion
	}
	return SeverityWarning
}

// SeverityPolicyFromOverrides wraps AspectSeverityPolicy with explicit
// per-aspect overrides, typically sourced from configuration.
func SeverityPolicyFromOverrides(overrides map[standards.RuleAspect]Severity) SeverityPolicy {
	return func(rule *standards.Rule, outcome Outcome) Severity {
		if s, ok := overrides[rule.Aspect]; ok && s.IsValid() {
			return s
		}
		return AspectSeverityPolicy(rule, outcome)
	}
}
