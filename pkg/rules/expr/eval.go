package expr

import "fmt"

// FieldFunc resolves a dotted field path to a numeric value. The second
// return is false when the path is absent or non-numeric, which makes
// the evaluation fail closed via MissingFieldError.
type FieldFunc func(path string) (float64, bool)

// EvalArith evaluates an arithmetic node against the given field
// resolver.
func EvalArith(n Node, resolve FieldFunc) (float64, error) {
	switch t := n.(type) {
	case NumberLit:
		return t.Value, nil
	case FieldRef:
		v, ok := resolve(t.Path)
		if !ok {
			return 0, &MissingFieldError{Path: t.Path}
		}
		return v, nil
	case Unary:
		x, err := EvalArith(t.X, resolve)
		if err != nil {
			return 0, err
		}
		return -x, nil
	case Binary:
		x, err := EvalArith(t.X, resolve)
		if err != nil {
			return 0, err
		}
		y, err := EvalArith(t.Y, resolve)
		if err != nil {
			return 0, err
		}
		switch t.Op {
		case '+':
			return x + y, nil
		case '-':
			return x - y, nil
		case '*':
			return x * y, nil
		case '/':
			if y == 0 {
				return 0, &EvalError{Message: "division by zero"}
			}
			return x / y, nil
		}
		return 0, &EvalError{Message: fmt.Sprintf("unknown arithmetic operator %q", t.Op)}
	default:
		return 0, &EvalError{Message: fmt.Sprintf("unknown expression node %T", n)}
	}
}

// EvalFormula evaluates both sides of a formula and applies its
// comparison. The left side's value is returned as the derived value
// even when the comparison fails.
func EvalFormula(f *Formula, resolve FieldFunc) (matched bool, derived float64, err error) {
	left, err := EvalArith(f.Left, resolve)
	if err != nil {
		return false, 0, err
	}
	right, err := EvalArith(f.Right, resolve)
	if err != nil {
		return false, left, err
	}
	return f.Op.Compare(left, right), left, nil
}
