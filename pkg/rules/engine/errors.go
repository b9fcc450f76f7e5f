package engine

import (
	"errors"
	"fmt"
)

// Common sentinel errors.
var (
	// ErrNilDesign indicates ValidateDesign received a nil design
	// context.
	ErrNilDesign = errors.New("design context cannot be nil")

	// ErrInvalidConfig indicates invalid engine configuration.
	ErrInvalidConfig = errors.New("invalid engine configuration")
)

// TooManyRulesError indicates the standards snapshot exceeds the
// configured per-pass rule limit.
type TooManyRulesError struct {
	Count int
	Max   int
}

// Error returns the error message.
func (e *TooManyRulesError) Error() string {
	return fmt.Sprintf("too many rules in pass: %d (max: %d)", e.Count, e.Max)
}

// EvaluationError wraps an internal defect surfaced during a pass.
// These are programming bugs, not authoring mistakes; the engine
// reports them instead of panicking so a validation pane stays
// responsive.
type EvaluationError struct {
	RuleID  string
	Message string
	Cause   error
}

// Error returns the error message.
func (e *EvaluationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rule %s: %s: %v", e.RuleID, e.Message, e.Cause)
	}
	return fmt.Sprintf("rule %s: %s", e.RuleID, e.Message)
}

// Unwrap returns the underlying cause.
func (e *EvaluationError) Unwrap() error {
	return e.Cause
}
