package validator

import (
	"fmt"
	"strings"
)

// Error is a single structural validation error with optional context
// about the offending entity and a suggested fix.
type Error struct {
	Message    string // What is wrong
	Subject    string // Offending entity, e.g. `rule "r-12"` or `node "conference"`
	Suggestion string // Suggested fix (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	if e.Subject != "" {
		sb.WriteString(e.Subject)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Suggestion != "" {
		sb.WriteString(" (suggestion: ")
		sb.WriteString(e.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

// ErrorList accumulates validation errors so callers see every defect
// in one pass.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates an empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// Addf creates and appends an error for the given subject.
func (el *ErrorList) Addf(subject, format string, args ...interface{}) {
	el.Add(&Error{Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// AddWithSuggestion creates and appends an error carrying a suggestion.
func (el *ErrorList) AddWithSuggestion(subject, message, suggestion string) {
	el.Add(&Error{Subject: subject, Message: message, Suggestion: suggestion})
}

// HasErrors returns true if any error was recorded.
func (el *ErrorList) HasErrors() bool { return len(el.Errors) > 0 }

// Count returns the number of recorded errors.
func (el *ErrorList) Count() int { return len(el.Errors) }

// Error implements the error interface, rendering all recorded errors.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "found %d validation error(s):\n", el.Count())
	for _, err := range el.Errors {
		sb.WriteString("  - ")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToError returns nil for an empty list, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}
