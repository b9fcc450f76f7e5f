package expr

import "fmt"

// ParseError describes a syntactically malformed expression. The
// offending rule is skipped at the engine's per-rule boundary.
type ParseError struct {
	Expr    string // The full expression text
	Pos     int    // Byte offset of the problem
	Message string // What went wrong
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d in %q: %s", e.Pos, e.Expr, e.Message)
}

// MissingFieldError indicates a field reference that the design context
// cannot resolve. Per the fail-closed policy this is not a user-visible
// failure mode of the engine; it makes the expression evaluate to
// not-matched.
type MissingFieldError struct {
	Path string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field %q not present in design context", e.Path)
}

// EvalError indicates a runtime evaluation failure other than a missing
// field, such as division by zero.
type EvalError struct {
	Message string
}

// Error implements the error interface.
func (e *EvalError) Error() string { return e.Message }
