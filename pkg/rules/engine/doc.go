// Package engine validates an AV room design against the standards
// rule hierarchy. It is the runtime core of meridian: condition
// matching decides which rules apply to a design, conflict resolution
// picks the authoritative rule per design aspect, the expression
// evaluator computes pass/fail for each winner, and the aggregator
// folds the outcomes into a single severity-classified
// ValidationResult.
//
// # Evaluation Flow
//
//	DesignContext + []*Standard
//	       ↓
//	Structural gate (invalid rules never reach evaluation)
//	       ↓
//	Condition Matcher (AND semantics, fail-closed on missing dimensions)
//	       ↓
//	Conflict Resolver (group by aspect and target; override aspects pick
//	one winner by dimension priority, rule priority, recency, id;
//	additive aspects keep every rule)
//	       ↓
//	Expression Evaluator (five expression forms; a malformed expression
//	skips its rule and the pass continues)
//	       ↓
//	Aggregator (dedup, severity policy, IsValid ⇔ no errors)
//
// # Purity
//
// A validation pass is a pure function over its inputs: the engine
// performs no I/O, owns no state between calls, and never mutates the
// design context or the standards snapshot. It is safe to call
// concurrently from any number of goroutines.
//
// # Severity
//
// Rules carry no severity of their own. Classification is an injectable
// SeverityPolicy; AspectSeverityPolicy is the named default. See
// severity.go.
package engine
