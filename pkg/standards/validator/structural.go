package validator

import (
	"fmt"

	"avdesign-hq/meridian/pkg/standards"
)

// Priority bounds for rules.
const (
	MinRulePriority = 0
	MaxRulePriority = 100
)

// ValidateRule checks a single rule for structural validity. A rule
// failing this check must never reach the engine.
func ValidateRule(rule *standards.Rule) error {
	el := NewErrorList()
	validateRuleInto(el, rule)
	return el.ToError()
}

func validateRuleInto(el *ErrorList, rule *standards.Rule) {
	if rule == nil {
		el.Addf("rule", "rule is nil")
		return
	}
	subject := fmt.Sprintf("rule %q", rule.ID)

	if rule.ID == "" {
		el.AddWithSuggestion(subject, "missing rule id", "assign a unique id")
	}
	if rule.Name == "" {
		el.Addf(subject, "missing rule name")
	}
	if !rule.Aspect.IsValid() {
		el.AddWithSuggestion(subject,
			fmt.Sprintf("unknown aspect %q", rule.Aspect),
			"one of: equipment_selection, quantities, placement, configuration, cabling, commercial")
	}
	if !rule.ExpressionType.IsValid() {
		el.AddWithSuggestion(subject,
			fmt.Sprintf("unknown expression type %q", rule.ExpressionType),
			"one of: constraint, formula, conditional, range_match, pattern")
	}
	if rule.Expression == "" {
		el.Addf(subject, "missing expression")
	}
	if rule.ExpressionType.RequiresField() && rule.Field == "" {
		el.AddWithSuggestion(subject,
			fmt.Sprintf("expression type %q requires a subject field", rule.ExpressionType),
			"set 'field' to the context field path the expression applies to")
	}
	if rule.Priority < MinRulePriority || rule.Priority > MaxRulePriority {
		el.Addf(subject, "priority %d outside [%d, %d]", rule.Priority, MinRulePriority, MaxRulePriority)
	}

	if len(rule.Conditions) == 0 {
		el.AddWithSuggestion(subject,
			"rule has no conditions",
			"every rule needs at least one condition scoping where it applies")
	}
	for i, cond := range rule.Conditions {
		validateConditionInto(el, subject, i, cond)
	}
}

func validateConditionInto(el *ErrorList, subject string, index int, cond standards.RuleCondition) {
	where := fmt.Sprintf("%s condition %d", subject, index)

	if !cond.Dimension.IsValid() {
		el.AddWithSuggestion(where,
			fmt.Sprintf("unknown dimension %q", cond.Dimension),
			"one of: room_type, platform, ecosystem, tier, use_case, client")
	}
	if !cond.Operator.IsValid() {
		el.AddWithSuggestion(where,
			fmt.Sprintf("unknown operator %q", cond.Operator),
			"one of: equals, not_equals, contains, greater_than, less_than, in")
	}
	if cond.Value.IsNull() {
		el.Addf(where, "missing condition value")
		return
	}
	if cond.Operator.RequiresListValue() && cond.Value.Kind != standards.ValueList {
		el.AddWithSuggestion(where,
			fmt.Sprintf("operator %q requires a list value, got %s", cond.Operator, cond.Value.Kind),
			"write the value as a list, e.g. [\"teams\", \"zoom\"]")
	}
	if !cond.Operator.RequiresListValue() && cond.Value.Kind == standards.ValueList {
		el.Addf(where, "operator %q takes a scalar value, got a list", cond.Operator)
	}
}

// ValidateStandard checks a standard and all of its rules.
func ValidateStandard(std *standards.Standard) error {
	el := NewErrorList()
	if std == nil {
		el.Addf("standard", "standard is nil")
		return el.ToError()
	}
	subject := fmt.Sprintf("standard %q", std.ID)
	if std.ID == "" {
		el.Addf(subject, "missing standard id")
	}
	if std.Name == "" {
		el.Addf(subject, "missing standard name")
	}
	if std.NodeID == "" {
		el.AddWithSuggestion(subject, "standard is not attached to a node",
			"set 'node' to the id of a hierarchy leaf")
	}
	seen := make(map[string]bool, len(std.Rules))
	for _, rule := range std.Rules {
		if rule != nil && rule.ID != "" {
			if seen[rule.ID] {
				el.Addf(subject, "duplicate rule id %q", rule.ID)
			}
			seen[rule.ID] = true
		}
		validateRuleInto(el, rule)
	}
	return el.ToError()
}

// ValidateNode checks a single node's fields. Parent links are checked
// forest-wide by ValidateForest.
func ValidateNode(node *standards.StandardNode) error {
	el := NewErrorList()
	validateNodeInto(el, node)
	return el.ToError()
}

func validateNodeInto(el *ErrorList, node *standards.StandardNode) {
	if node == nil {
		el.Addf("node", "node is nil")
		return
	}
	subject := fmt.Sprintf("node %q", node.ID)
	if node.ID == "" {
		el.Addf(subject, "missing node id")
	}
	if node.ParentID == node.ID && node.ID != "" {
		el.Addf(subject, "node is its own parent")
	}
	if !node.Kind.IsValid() {
		el.AddWithSuggestion(subject,
			fmt.Sprintf("unknown node kind %q", node.Kind),
			"one of: folder, standard")
	}
	if node.Name == "" {
		el.Addf(subject, "missing node name")
	}
	if node.HasBinding() {
		if !node.Dimension.IsValid() {
			el.Addf(subject, "unknown binding dimension %q", node.Dimension)
		}
		if node.Value == "" {
			el.Addf(subject, "binding dimension %q has no value", node.Dimension)
		}
	} else if node.Value != "" {
		el.Addf(subject, "binding value %q has no dimension", node.Value)
	}
}
