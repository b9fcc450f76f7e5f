package engine

import (
	"strings"

	"avdesign-hq/meridian/pkg/standards"
)

// evaluateCondition applies a condition operator to the context value
// (actual) and the condition value (expected). The semantics never
// raise: an inapplicable comparison simply fails.
func evaluateCondition(op standards.ConditionOperator, actual, expected standards.Value) bool {
	switch op {
	case standards.OperatorEquals:
		return actual.Equal(expected)

	case standards.OperatorNotEquals:
		return !actual.Equal(expected)

	case standards.OperatorContains:
		return evaluateContains(actual, expected)

	case standards.OperatorGreaterThan:
		a, okA := actual.AsNumber()
		b, okB := expected.AsNumber()
		return okA && okB && a > b

	case standards.OperatorLessThan:
		a, okA := actual.AsNumber()
		b, okB := expected.AsNumber()
		return okA && okB && a < b

	case standards.OperatorIn:
		return expected.Contains(actual)

	default:
		return false
	}
}

// evaluateContains does substring matching on strings and membership
// testing on list-valued context fields.
func evaluateContains(actual, expected standards.Value) bool {
	if actual.Kind == standards.ValueList {
		return actual.Contains(expected)
	}
	a, okA := actual.AsString()
	b, okB := expected.AsString()
	if !okA || !okB {
		return false
	}
	return strings.Contains(a, b)
}
