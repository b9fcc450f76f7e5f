package expr

import "regexp"

// CompareOp is one of the six comparison operators shared by
// constraints and formulas.
type CompareOp string

const (
	OpGE CompareOp = ">="
	OpLE CompareOp = "<="
	OpGT CompareOp = ">"
	OpLT CompareOp = "<"
	OpEQ CompareOp = "=="
	OpNE CompareOp = "!="
)

// Compare applies the operator to two numbers.
func (op CompareOp) Compare(left, right float64) bool {
	switch op {
	case OpGE:
		return left >= right
	case OpLE:
		return left <= right
	case OpGT:
		return left > right
	case OpLT:
		return left < right
	case OpEQ:
		return left == right
	case OpNE:
		return left != right
	}
	return false
}

// IsOrdering returns true for <, >, <=, >=, the operators that only
// apply to numbers.
func (op CompareOp) IsOrdering() bool {
	switch op {
	case OpGE, OpLE, OpGT, OpLT:
		return true
	}
	return false
}

// LiteralKind discriminates constraint literal variants.
type LiteralKind string

const (
	LiteralNumber LiteralKind = "number"
	LiteralString LiteralKind = "string"
	LiteralBool   LiteralKind = "bool"
)

// Literal is the right-hand side of a constraint.
type Literal struct {
	Kind LiteralKind
	Num  float64
	Str  string
	Bool bool
}

// Constraint is a parsed constraint expression:
// <field-path> <op> <literal>.
type Constraint struct {
	Field   string
	Op      CompareOp
	Literal Literal
}

// Node is an arithmetic expression node in a formula.
type Node interface{ node() }

// NumberLit is a numeric literal.
type NumberLit struct{ Value float64 }

// FieldRef is a reference to a context field by dotted path.
type FieldRef struct{ Path string }

// Unary is a unary minus.
type Unary struct{ X Node }

// Binary is one of + - * /.
type Binary struct {
	Op   byte // '+', '-', '*', '/'
	X, Y Node
}

func (NumberLit) node() {}
func (FieldRef) node()  {}
func (Unary) node()     {}
func (Binary) node()    {}

// Formula is a parsed formula expression: <arith> <op> <arith>. The
// derived value reported by the engine is the evaluated left side.
type Formula struct {
	Left  Node
	Op    CompareOp
	Right Node
}

// BranchType names the expression form of a conditional branch.
// Conditional is deliberately absent: branches never nest.
type BranchType string

const (
	BranchConstraint BranchType = "constraint"
	BranchFormula    BranchType = "formula"
	BranchRangeMatch BranchType = "range_match"
	BranchPattern    BranchType = "pattern"
)

// Branch is one arm of a conditional, kept as raw text and parsed by
// the dispatching evaluator.
type Branch struct {
	Type BranchType
	Raw  string
}

// Conditional is a parsed conditional expression: a guard constraint
// selecting between a then branch and an optional else branch. Without
// an else branch a false guard means the rule simply does not bite.
type Conditional struct {
	Guard *Constraint
	Then  Branch
	Else  *Branch
}

// Range is a parsed inclusive range expression "min-max".
type Range struct {
	Min, Max float64
}

// Contains reports whether n lies within the inclusive range.
func (r Range) Contains(n float64) bool {
	return n >= r.Min && n <= r.Max
}

// Pattern is a parsed pattern expression.
type Pattern struct {
	Source string
	Re     *regexp.Regexp
}
