package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"avdesign-hq/meridian/pkg/rules/expr"
	"avdesign-hq/meridian/pkg/standards"
)

// Evaluator computes pass/fail for a rule's expression against a
// design, dispatched by expression type.
type Evaluator struct {
	logger *slog.Logger
}

// NewEvaluator creates an expression evaluator.
func NewEvaluator(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{logger: logger}
}

// Evaluate runs a rule's expression. A returned error is always an
// *expr.ParseError, the signal for the engine to skip the rule; every
// other failure mode is expressed in the Outcome, with missing fields
// failing closed.
func (ev *Evaluator) Evaluate(rule *standards.Rule, design *DesignContext, target *PlacedEquipment) (Outcome, error) {
	switch rule.ExpressionType {
	case standards.ExpressionConstraint:
		c, err := expr.ParseConstraint(rule.Expression)
		if err != nil {
			return Outcome{}, err
		}
		return ev.evalConstraint(c, design, target), nil

	case standards.ExpressionFormula:
		f, err := expr.ParseFormula(rule.Expression)
		if err != nil {
			return Outcome{}, err
		}
		return ev.evalFormula(f, rule, design, target), nil

	case standards.ExpressionConditional:
		c, err := expr.ParseConditional(rule.Expression)
		if err != nil {
			return Outcome{}, err
		}
		return ev.evalConditional(c, rule, design, target)

	case standards.ExpressionRangeMatch:
		rng, err := expr.ParseRange(rule.Expression)
		if err != nil {
			return Outcome{}, err
		}
		return ev.evalRange(rng, rule.Field, design, target), nil

	case standards.ExpressionPattern:
		p, err := expr.ParsePattern(rule.Expression)
		if err != nil {
			return Outcome{}, err
		}
		return ev.evalPattern(p, rule.Field, design, target), nil

	default:
		return Outcome{}, &expr.ParseError{Expr: rule.Expression,
			Message: fmt.Sprintf("unknown expression type %q", rule.ExpressionType)}
	}
}

// evalConstraint evaluates "<field> <op> <literal>".
func (ev *Evaluator) evalConstraint(c *expr.Constraint, design *DesignContext, target *PlacedEquipment) Outcome {
	value, ok := ResolveField(design, target, c.Field)
	if !ok {
		return missingFieldOutcome(c.Field)
	}

	switch c.Literal.Kind {
	case expr.LiteralNumber:
		n, numeric := value.AsNumber()
		if !numeric {
			return Outcome{
				Field:   c.Field,
				Message: fmt.Sprintf("%s is %q, which is not numeric", c.Field, value.String()),
			}
		}
		matched := c.Op.Compare(n, c.Literal.Num)
		out := Outcome{Matched: matched, Field: c.Field}
		if !matched {
			out.Message = fmt.Sprintf("%s is %s, expected %s %s",
				c.Field, value.String(), c.Op, formatNumber(c.Literal.Num))
			out.SuggestedFix = numericFix(c.Field, c.Op, c.Literal.Num)
		}
		return out

	case expr.LiteralString:
		if c.Op.IsOrdering() {
			return Outcome{
				Field:   c.Field,
				Message: fmt.Sprintf("operator %s requires a numeric literal", c.Op),
			}
		}
		s, isString := value.AsString()
		if !isString {
			return Outcome{
				Field:   c.Field,
				Message: fmt.Sprintf("%s is not a string", c.Field),
			}
		}
		matched := (s == c.Literal.Str) == (c.Op == expr.OpEQ)
		out := Outcome{Matched: matched, Field: c.Field}
		if !matched {
			out.Message = fmt.Sprintf("%s is %q, expected %s %q", c.Field, s, c.Op, c.Literal.Str)
		}
		return out

	case expr.LiteralBool:
		if c.Op.IsOrdering() {
			return Outcome{
				Field:   c.Field,
				Message: fmt.Sprintf("operator %s requires a numeric literal", c.Op),
			}
		}
		if value.Kind != standards.ValueBool {
			return Outcome{
				Field:   c.Field,
				Message: fmt.Sprintf("%s is not a boolean", c.Field),
			}
		}
		matched := (value.Bool == c.Literal.Bool) == (c.Op == expr.OpEQ)
		out := Outcome{Matched: matched, Field: c.Field}
		if !matched {
			out.Message = fmt.Sprintf("%s is %v, expected %s %v", c.Field, value.Bool, c.Op, c.Literal.Bool)
		}
		return out
	}

	return Outcome{Field: c.Field, Message: "unsupported literal kind"}
}

// evalFormula evaluates an arithmetic comparison, carrying the computed
// left side as the derived value.
func (ev *Evaluator) evalFormula(f *expr.Formula, rule *standards.Rule, design *DesignContext, target *PlacedEquipment) Outcome {
	resolve := func(path string) (float64, bool) {
		return resolveNumericField(design, target, path)
	}

	field := rule.Field
	if field == "" {
		field = firstFieldRef(f.Left)
	}

	matched, derived, err := expr.EvalFormula(f, resolve)
	if err != nil {
		var missing *expr.MissingFieldError
		if errors.As(err, &missing) {
			return missingFieldOutcome(missing.Path)
		}
		return Outcome{Field: field, Message: err.Error()}
	}

	out := Outcome{Matched: matched, HasDerived: true, Derived: derived, Field: field}
	if !matched {
		out.Message = fmt.Sprintf("computed value %s fails %s threshold",
			formatNumber(derived), f.Op)
	}
	return out
}

// evalConditional evaluates the guard and recurses into the selected
// branch. A false guard without an else branch means the rule does not
// bite.
func (ev *Evaluator) evalConditional(c *expr.Conditional, rule *standards.Rule, design *DesignContext, target *PlacedEquipment) (Outcome, error) {
	guard := ev.evalConstraint(c.Guard, design, target)

	var branch *expr.Branch
	if guard.Matched {
		branch = &c.Then
	} else if c.Else != nil {
		branch = c.Else
	} else {
		return Outcome{Matched: true, Field: guard.Field}, nil
	}

	return ev.evalBranch(branch, rule, design, target)
}

// evalBranch dispatches a conditional branch by its declared type.
// Parse errors inside a branch skip the whole rule, same as top-level
// ones.
func (ev *Evaluator) evalBranch(branch *expr.Branch, rule *standards.Rule, design *DesignContext, target *PlacedEquipment) (Outcome, error) {
	switch branch.Type {
	case expr.BranchConstraint:
		c, err := expr.ParseConstraint(branch.Raw)
		if err != nil {
			return Outcome{}, err
		}
		return ev.evalConstraint(c, design, target), nil
	case expr.BranchFormula:
		f, err := expr.ParseFormula(branch.Raw)
		if err != nil {
			return Outcome{}, err
		}
		return ev.evalFormula(f, rule, design, target), nil
	case expr.BranchRangeMatch:
		rng, err := expr.ParseRange(branch.Raw)
		if err != nil {
			return Outcome{}, err
		}
		return ev.evalRange(rng, rule.Field, design, target), nil
	case expr.BranchPattern:
		p, err := expr.ParsePattern(branch.Raw)
		if err != nil {
			return Outcome{}, err
		}
		return ev.evalPattern(p, rule.Field, design, target), nil
	default:
		return Outcome{}, &expr.ParseError{Expr: branch.Raw,
			Message: fmt.Sprintf("unknown branch type %q", branch.Type)}
	}
}

// evalRange checks that the subject field lies within an inclusive
// range.
func (ev *Evaluator) evalRange(rng *expr.Range, field string, design *DesignContext, target *PlacedEquipment) Outcome {
	n, ok := resolveNumericField(design, target, field)
	if !ok {
		return missingFieldOutcome(field)
	}
	matched := rng.Contains(n)
	out := Outcome{Matched: matched, Field: field}
	if !matched {
		out.Message = fmt.Sprintf("%s is %s, expected between %s and %s",
			field, formatNumber(n), formatNumber(rng.Min), formatNumber(rng.Max))
		out.SuggestedFix = fmt.Sprintf("set %s to a value between %s and %s",
			field, formatNumber(rng.Min), formatNumber(rng.Max))
	}
	return out
}

// evalPattern matches the subject field against a regular expression.
func (ev *Evaluator) evalPattern(p *expr.Pattern, field string, design *DesignContext, target *PlacedEquipment) Outcome {
	value, ok := ResolveField(design, target, field)
	if !ok {
		return missingFieldOutcome(field)
	}
	s, isString := value.AsString()
	if !isString {
		return Outcome{
			Field:   field,
			Message: fmt.Sprintf("%s is not a string", field),
		}
	}
	matched := p.Re.MatchString(s)
	out := Outcome{Matched: matched, Field: field}
	if !matched {
		out.Message = fmt.Sprintf("%s value %q does not match pattern %q", field, s, p.Source)
	}
	return out
}

// missingFieldOutcome is the fail-closed outcome for an unresolvable
// field path.
func missingFieldOutcome(field string) Outcome {
	return Outcome{
		Field:   field,
		Message: fmt.Sprintf("field %q is not present in the design context", field),
	}
}

// firstFieldRef returns the first field referenced by an arithmetic
// node, for issue attribution when the rule names no subject field.
func firstFieldRef(n expr.Node) string {
	switch t := n.(type) {
	case expr.FieldRef:
		return t.Path
	case expr.Unary:
		return firstFieldRef(t.X)
	case expr.Binary:
		if f := firstFieldRef(t.X); f != "" {
			return f
		}
		return firstFieldRef(t.Y)
	}
	return ""
}

// numericFix phrases a remediation hint for a failed numeric
// constraint.
func numericFix(field string, op expr.CompareOp, threshold float64) string {
	switch op {
	case expr.OpGE, expr.OpGT:
		return fmt.Sprintf("increase %s to at least %s", field, formatNumber(threshold))
	case expr.OpLE, expr.OpLT:
		return fmt.Sprintf("reduce %s to at most %s", field, formatNumber(threshold))
	case expr.OpEQ:
		return fmt.Sprintf("set %s to %s", field, formatNumber(threshold))
	}
	return ""
}

func formatNumber(n float64) string {
	return standards.NumberValue(n).String()
}
