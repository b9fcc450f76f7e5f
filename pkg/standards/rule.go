package standards

import "time"

// RuleAspect is the facet of a design a rule governs.
type RuleAspect string

const (
	AspectEquipmentSelection RuleAspect = "equipment_selection"
	AspectQuantities         RuleAspect = "quantities"
	AspectPlacement          RuleAspect = "placement"
	AspectConfiguration      RuleAspect = "configuration"
	AspectCabling            RuleAspect = "cabling"
	AspectCommercial         RuleAspect = "commercial"
)

// AllAspects lists the rule aspects.
var AllAspects = []RuleAspect{
	AspectEquipmentSelection,
	AspectQuantities,
	AspectPlacement,
	AspectConfiguration,
	AspectCabling,
	AspectCommercial,
}

// IsValid returns true if a is a known aspect.
func (a RuleAspect) IsValid() bool {
	switch a {
	case AspectEquipmentSelection, AspectQuantities, AspectPlacement,
		AspectConfiguration, AspectCabling, AspectCommercial:
		return true
	}
	return false
}

// IsOverride returns true for aspects resolved to exactly one winning
// rule per conflict group. The remaining aspects are additive: every
// matching active rule applies cumulatively.
func (a RuleAspect) IsOverride() bool {
	switch a {
	case AspectEquipmentSelection, AspectPlacement, AspectConfiguration:
		return true
	}
	return false
}

// ExpressionType selects the evaluation form of a rule's expression.
type ExpressionType string

const (
	ExpressionConstraint  ExpressionType = "constraint"
	ExpressionFormula     ExpressionType = "formula"
	ExpressionConditional ExpressionType = "conditional"
	ExpressionRangeMatch  ExpressionType = "range_match"
	ExpressionPattern     ExpressionType = "pattern"
)

// AllExpressionTypes lists the expression types.
var AllExpressionTypes = []ExpressionType{
	ExpressionConstraint,
	ExpressionFormula,
	ExpressionConditional,
	ExpressionRangeMatch,
	ExpressionPattern,
}

// IsValid returns true if t is a known expression type.
func (t ExpressionType) IsValid() bool {
	switch t {
	case ExpressionConstraint, ExpressionFormula, ExpressionConditional,
		ExpressionRangeMatch, ExpressionPattern:
		return true
	}
	return false
}

// RequiresField returns true for expression types whose subject field
// is named by Rule.Field rather than embedded in the expression.
func (t ExpressionType) RequiresField() bool {
	return t == ExpressionRangeMatch || t == ExpressionPattern
}

// Rule is a single standards rule. Conditions decide where the rule
// applies; the expression decides whether a design passes it.
//
// A rule with a non-empty EquipmentType is evaluated once per placed
// equipment item of that type; its field paths resolve against the
// item's attributes before the room context. Other rules evaluate once
// at room scope.
type Rule struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Aspect         RuleAspect     `json:"aspect" yaml:"aspect"`
	ExpressionType ExpressionType `json:"expression_type" yaml:"expression_type"`

	// Conditions scope applicability; a structurally valid rule has at
	// least one.
	Conditions []RuleCondition `json:"conditions" yaml:"conditions"`

	// Expression is the rule body, interpreted per ExpressionType.
	Expression string `json:"expression" yaml:"expression"`

	// Field names the subject field path for range_match and pattern
	// expressions, and the reported field for issues. Optional for the
	// other expression types, which embed their own field references.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`

	// EquipmentType restricts evaluation to placed equipment of this
	// type. Empty means room scope.
	EquipmentType string `json:"equipment_type,omitempty" yaml:"equipment_type,omitempty"`

	// Priority breaks conflicts between rules whose highest condition
	// dimensions tie. Valid range is 0 to 100.
	Priority int `json:"priority" yaml:"priority"`

	IsActive bool `json:"is_active" yaml:"active"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// HighestDimensionPriority returns the greatest dimension priority
// among the rule's conditions. It is the first-ranked key of conflict
// resolution for override aspects.
func (r *Rule) HighestDimensionPriority() int {
	highest := 0
	for _, c := range r.Conditions {
		if p := c.Dimension.Priority(); p > highest {
			highest = p
		}
	}
	return highest
}
