// Package validator performs structural validation of standards data
// before it reaches the rule engine: rules with empty condition lists,
// priorities outside the allowed range, unknown enum values, or
// mismatched operator/value arity are rejected here, and the standards
// node forest is checked for parent-link cycles at creation time.
//
// Validation accumulates every problem found into an ErrorList instead
// of stopping at the first, so an author sees all defects of a
// standards file in one pass.
package validator
