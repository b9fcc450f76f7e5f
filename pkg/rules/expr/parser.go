package expr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// parser is a recursive-descent parser over a lexed token stream.
type parser struct {
	input  string
	tokens []token
	pos    int
}

func newParser(input string) (*parser, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	return &parser{input: input, tokens: tokens}, nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(pos int, format string, args ...interface{}) error {
	return &ParseError{Expr: p.input, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) expectEOF() error {
	if tok := p.peek(); tok.kind != tokenEOF {
		return p.errorf(tok.pos, "unexpected trailing input %q", tok.text)
	}
	return nil
}

// ParseConstraint parses "<field-path> <op> <literal>".
func ParseConstraint(input string) (*Constraint, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}
	c, err := p.parseConstraint()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *parser) parseConstraint() (*Constraint, error) {
	fieldTok := p.peek()
	if fieldTok.kind != tokenField {
		return nil, p.errorf(fieldTok.pos, "expected field path, got %q", fieldTok.text)
	}
	if fieldTok.text == "true" || fieldTok.text == "false" {
		return nil, p.errorf(fieldTok.pos, "expected field path, got boolean literal")
	}
	p.advance()

	opTok := p.peek()
	if opTok.kind != tokenCompare {
		return nil, p.errorf(opTok.pos, "expected comparison operator, got %q", opTok.text)
	}
	p.advance()

	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}

	return &Constraint{Field: fieldTok.text, Op: CompareOp(opTok.text), Literal: lit}, nil
}

func (p *parser) parseLiteral() (Literal, error) {
	tok := p.peek()
	switch tok.kind {
	case tokenNumber:
		p.advance()
		return Literal{Kind: LiteralNumber, Num: tok.num}, nil
	case tokenMinus:
		p.advance()
		num := p.peek()
		if num.kind != tokenNumber {
			return Literal{}, p.errorf(num.pos, "expected number after minus sign")
		}
		p.advance()
		return Literal{Kind: LiteralNumber, Num: -num.num}, nil
	case tokenString:
		p.advance()
		return Literal{Kind: LiteralString, Str: tok.text}, nil
	case tokenField:
		if tok.text == "true" || tok.text == "false" {
			p.advance()
			return Literal{Kind: LiteralBool, Bool: tok.text == "true"}, nil
		}
		return Literal{}, p.errorf(tok.pos,
			"expected literal, got identifier %q (quote string values)", tok.text)
	default:
		return Literal{}, p.errorf(tok.pos, "expected literal, got %q", tok.text)
	}
}

// ParseFormula parses "<arith> <op> <arith>" over + - * / ( ), numeric
// literals, and field references.
func ParseFormula(input string) (*Formula, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}

	left, err := p.parseArith()
	if err != nil {
		return nil, err
	}

	opTok := p.peek()
	if opTok.kind != tokenCompare {
		return nil, p.errorf(opTok.pos, "expected comparison operator, got %q", opTok.text)
	}
	p.advance()

	right, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	return &Formula{Left: left, Op: CompareOp(opTok.text), Right: right}, nil
}

// parseArith parses addition-level expressions.
func (p *parser) parseArith() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenPlus && tok.kind != tokenMinus {
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: tok.text[0], X: left, Y: right}
	}
}

// parseTerm parses multiplication-level expressions.
func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenStar && tok.kind != tokenSlash {
			return left, nil
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: tok.text[0], X: left, Y: right}
	}
}

// parseFactor parses literals, field references, parenthesized
// expressions, and unary minus.
func (p *parser) parseFactor() (Node, error) {
	tok := p.peek()
	switch tok.kind {
	case tokenNumber:
		p.advance()
		return NumberLit{Value: tok.num}, nil
	case tokenField:
		if tok.text == "true" || tok.text == "false" {
			return nil, p.errorf(tok.pos, "boolean literal not allowed in formula")
		}
		p.advance()
		return FieldRef{Path: tok.text}, nil
	case tokenMinus:
		p.advance()
		x, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return Unary{X: x}, nil
	case tokenLParen:
		p.advance()
		inner, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		closing := p.peek()
		if closing.kind != tokenRParen {
			return nil, p.errorf(closing.pos, "missing closing parenthesis")
		}
		p.advance()
		return inner, nil
	default:
		return nil, p.errorf(tok.pos, "expected number, field, or parenthesis, got %q", tok.text)
	}
}

var (
	thenBranchRe = regexp.MustCompile(`\bthen\s+(constraint|formula|range_match|pattern)\s*:`)
	elseBranchRe = regexp.MustCompile(`\belse\s+(constraint|formula|range_match|pattern)\s*:`)
)

// ParseConditional parses
// "if <constraint> then <type>: <expr> [else <type>: <expr>]".
// Branch types are limited to the four non-conditional forms.
func ParseConditional(input string) (*Conditional, error) {
	trimmed := strings.TrimSpace(input)
	rest, ok := strings.CutPrefix(trimmed, "if")
	if !ok || (rest != "" && !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, "\t")) {
		return nil, &ParseError{Expr: input, Pos: 0, Message: "conditional must start with 'if'"}
	}

	thenLoc := thenBranchRe.FindStringSubmatchIndex(rest)
	if thenLoc == nil {
		return nil, &ParseError{Expr: input, Pos: 0,
			Message: "missing 'then <type>:' branch"}
	}

	guard, err := ParseConstraint(rest[:thenLoc[0]])
	if err != nil {
		return nil, err
	}

	thenType := BranchType(rest[thenLoc[2]:thenLoc[3]])
	afterThen := rest[thenLoc[1]:]

	cond := &Conditional{Guard: guard}

	if elseLoc := elseBranchRe.FindStringSubmatchIndex(afterThen); elseLoc != nil {
		cond.Then = Branch{Type: thenType, Raw: strings.TrimSpace(afterThen[:elseLoc[0]])}
		cond.Else = &Branch{
			Type: BranchType(afterThen[elseLoc[2]:elseLoc[3]]),
			Raw:  strings.TrimSpace(afterThen[elseLoc[1]:]),
		}
	} else {
		cond.Then = Branch{Type: thenType, Raw: strings.TrimSpace(afterThen)}
	}

	if cond.Then.Raw == "" {
		return nil, &ParseError{Expr: input, Pos: 0, Message: "empty then branch"}
	}
	if cond.Else != nil && cond.Else.Raw == "" {
		return nil, &ParseError{Expr: input, Pos: 0, Message: "empty else branch"}
	}
	return cond, nil
}

var rangeRe = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*-\s*(-?\d+(?:\.\d+)?)\s*$`)

// ParseRange parses an inclusive "min-max" range expression.
func ParseRange(input string) (*Range, error) {
	m := rangeRe.FindStringSubmatch(input)
	if m == nil {
		return nil, &ParseError{Expr: input, Pos: 0,
			Message: "expected range of the form \"min-max\""}
	}
	lo, _ := strconv.ParseFloat(m[1], 64)
	hi, _ := strconv.ParseFloat(m[2], 64)
	if lo > hi {
		return nil, &ParseError{Expr: input, Pos: 0,
			Message: fmt.Sprintf("range minimum %v exceeds maximum %v", lo, hi)}
	}
	return &Range{Min: lo, Max: hi}, nil
}

// ParsePattern compiles a pattern expression as a Go regular
// expression.
func ParsePattern(input string) (*Pattern, error) {
	re, err := regexp.Compile(input)
	if err != nil {
		return nil, &ParseError{Expr: input, Pos: 0,
			Message: fmt.Sprintf("invalid regular expression: %v", err)}
	}
	return &Pattern{Source: input, Re: re}, nil
}
