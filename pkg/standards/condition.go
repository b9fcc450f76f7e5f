package standards

// ConditionOperator is a comparison operator in a rule condition.
type ConditionOperator string

const (
	OperatorEquals      ConditionOperator = "equals"
	OperatorNotEquals   ConditionOperator = "not_equals"
	OperatorContains    ConditionOperator = "contains"
	OperatorGreaterThan ConditionOperator = "greater_than"
	OperatorLessThan    ConditionOperator = "less_than"
	OperatorIn          ConditionOperator = "in"
)

// AllOperators lists the condition operators.
var AllOperators = []ConditionOperator{
	OperatorEquals,
	OperatorNotEquals,
	OperatorContains,
	OperatorGreaterThan,
	OperatorLessThan,
	OperatorIn,
}

// IsValid returns true if op is a known operator.
func (op ConditionOperator) IsValid() bool {
	switch op {
	case OperatorEquals, OperatorNotEquals, OperatorContains,
		OperatorGreaterThan, OperatorLessThan, OperatorIn:
		return true
	}
	return false
}

// RequiresListValue returns true for operators whose condition value
// must be a list.
func (op ConditionOperator) RequiresListValue() bool {
	return op == OperatorIn
}

// RuleCondition scopes a rule to a design dimension. All conditions of
// a rule are AND-combined: every one must hold for the rule to apply.
type RuleCondition struct {
	Dimension RuleDimension     `json:"dimension" yaml:"dimension"`
	Operator  ConditionOperator `json:"operator" yaml:"operator"`
	Value     Value             `json:"value" yaml:"value"`
}
