// Package expr implements the restricted expression sublanguage of
// standards rules: a hand-written lexer and recursive-descent parser
// for the five expression forms, plus an arithmetic evaluator for
// formulas. It deliberately is not a general-purpose evaluator: the
// grammar admits field references, numeric and string literals, the six
// comparison operators, and the four arithmetic operators with
// parentheses, nothing else, so a malformed or malicious expression can
// never execute arbitrary logic.
//
// The five forms:
//
//	constraint    display.size >= 75
//	formula       (room.length + room.width) * 2 <= 100
//	conditional   if room.area > 40 then constraint: display.size >= 85
//	              [else constraint: display.size >= 65]
//	range_match   4-8            (applied to the rule's subject field)
//	pattern       ^TAA-          (Go regexp over the subject field)
//
// Conditional branches are one of the other four forms; a conditional
// branch inside a conditional is a parse error.
//
// Parsing problems surface as *ParseError with the byte offset of the
// defect. The engine catches ParseError at the per-rule boundary so one
// badly authored rule never aborts a validation pass.
package expr
