package engine

import (
	"time"

	"avdesign-hq/meridian/pkg/standards"
)

// RoomAttributes are the typed physical attributes of the room under
// design. Distances are meters, area is square meters.
type RoomAttributes struct {
	Name          string  `json:"name" yaml:"name"`
	Area          float64 `json:"area" yaml:"area"`
	Length        float64 `json:"length" yaml:"length"`
	Width         float64 `json:"width" yaml:"width"`
	CeilingHeight float64 `json:"ceiling_height" yaml:"ceiling_height"`
	Capacity      int     `json:"capacity" yaml:"capacity"`
}

// PlacedEquipment is one equipment instance placed in the room.
// Attributes is an open bag of vendor/spec values (display size, mount
// height, and so on); X and Y are the placement coordinates on the room
// canvas.
type PlacedEquipment struct {
	ID         string                     `json:"id" yaml:"id"`
	Type       string                     `json:"type" yaml:"type"`
	Name       string                     `json:"name,omitempty" yaml:"name,omitempty"`
	Attributes map[string]standards.Value `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	X          float64                    `json:"x,omitempty" yaml:"x,omitempty"`
	Y          float64                    `json:"y,omitempty" yaml:"y,omitempty"`
}

// DesignContext is the caller-assembled snapshot a validation pass runs
// over: the six dimension values, the room, the placed equipment, and
// free-form attribute groups (for example a "display" group holding the
// chosen display's size before it is placed). The engine treats it as
// immutable.
type DesignContext struct {
	Dimensions standards.Dimensions       `json:"dimensions" yaml:"dimensions"`
	Room       RoomAttributes             `json:"room" yaml:"room"`
	Equipment  []*PlacedEquipment         `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Attributes map[string]standards.Value `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// EquipmentByID returns the placed equipment with the given id, or nil.
func (d *DesignContext) EquipmentByID(id string) *PlacedEquipment {
	for _, eq := range d.Equipment {
		if eq.ID == id {
			return eq
		}
	}
	return nil
}

// EquipmentOfType returns all placed equipment of the given type.
func (d *DesignContext) EquipmentOfType(equipType string) []*PlacedEquipment {
	var out []*PlacedEquipment
	for _, eq := range d.Equipment {
		if eq.Type == equipType {
			out = append(out, eq)
		}
	}
	return out
}

// ValidationIssue is one problem a rule found with the design.
type ValidationIssue struct {
	RuleID       string   `json:"rule_id"`
	RuleName     string   `json:"rule_name"`
	Message      string   `json:"message"`
	Severity     Severity `json:"severity"`
	EquipmentID  string   `json:"equipment_id,omitempty"`
	Field        string   `json:"field,omitempty"`
	SuggestedFix string   `json:"suggested_fix,omitempty"`
}

// ValidationResult is the merged outcome of one validation pass.
// IsValid is true exactly when Errors is empty; warnings and
// suggestions never block.
type ValidationResult struct {
	IsValid     bool              `json:"is_valid"`
	Errors      []ValidationIssue `json:"errors"`
	Warnings    []ValidationIssue `json:"warnings"`
	Suggestions []ValidationIssue `json:"suggestions"`

	// EvaluatedRules counts rules whose expressions ran; SkippedRules
	// counts rules dropped by the structural gate or a parse failure.
	EvaluatedRules int `json:"evaluated_rules"`
	SkippedRules   int `json:"skipped_rules"`

	Duration time.Duration `json:"duration"`

	// Trace holds per-step details when tracing is enabled.
	Trace *Trace `json:"trace,omitempty"`
}

// AllIssues returns every issue of the result, errors first.
func (r *ValidationResult) AllIssues() []ValidationIssue {
	out := make([]ValidationIssue, 0, len(r.Errors)+len(r.Warnings)+len(r.Suggestions))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	out = append(out, r.Suggestions...)
	return out
}

// Outcome is the result of evaluating one rule's expression against the
// design.
type Outcome struct {
	// Matched is true when the design satisfies the expression.
	Matched bool

	// Derived carries the computed left-hand value of a formula.
	HasDerived bool
	Derived    float64

	// Message explains a failure in author-facing terms.
	Message string

	// Field is the context field the outcome concerns, when known.
	Field string

	// SuggestedFix is an optional remediation hint.
	SuggestedFix string
}

// EvaluatedRule pairs a rule, the equipment it targeted (nil for room
// scope), and its outcome.
type EvaluatedRule struct {
	Rule    *standards.Rule
	Target  *PlacedEquipment
	Outcome Outcome
}

// GroupKey identifies a conflict-resolution group: one design aspect on
// one target. TargetID is the equipment instance id, or empty for the
// room itself.
type GroupKey struct {
	Aspect   standards.RuleAspect
	TargetID string
}

// Trace records evaluation steps for debugging and verbose CLI output.
type Trace struct {
	Steps     []TraceStep
	TotalTime time.Duration
}

// TraceStep is one recorded evaluation step.
type TraceStep struct {
	Kind     string // "structural_reject", "match", "resolve", "evaluate", "skip"
	RuleID   string
	Details  string
	Duration time.Duration
}

func (t *Trace) add(kind, ruleID, details string, d time.Duration) {
	if t == nil {
		return
	}
	t.Steps = append(t.Steps, TraceStep{Kind: kind, RuleID: ruleID, Details: details, Duration: d})
}
