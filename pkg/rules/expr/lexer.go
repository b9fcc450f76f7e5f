package expr

import (
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenField           // dotted identifier path, also bare keywords
	tokenNumber
	tokenString
	tokenCompare // one of >= <= > < == !=
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// lexer produces the token stream for constraints and formulas.
type lexer struct {
	input  string
	pos    int
	tokens []token
}

// lex tokenizes the whole input up front. The grammar is small enough
// that a materialized token slice keeps the parsers simple.
func lex(input string) ([]token, error) {
	l := &lexer{input: input}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.kind == tokenEOF {
			return l.tokens, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.input) {
		return token{kind: tokenEOF, pos: start}, nil
	}

	c := l.input[l.pos]
	switch {
	case c == '+':
		l.pos++
		return token{kind: tokenPlus, text: "+", pos: start}, nil
	case c == '-':
		l.pos++
		return token{kind: tokenMinus, text: "-", pos: start}, nil
	case c == '*':
		l.pos++
		return token{kind: tokenStar, text: "*", pos: start}, nil
	case c == '/':
		l.pos++
		return token{kind: tokenSlash, text: "/", pos: start}, nil
	case c == '(':
		l.pos++
		return token{kind: tokenLParen, text: "(", pos: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokenRParen, text: ")", pos: start}, nil
	case c == '>' || c == '<':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '=' {
			l.pos++
		}
		return token{kind: tokenCompare, text: l.input[start:l.pos], pos: start}, nil
	case c == '=' || c == '!':
		l.pos++
		if l.pos >= len(l.input) || l.input[l.pos] != '=' {
			return token{}, &ParseError{Expr: l.input, Pos: start,
				Message: "expected " + string(c) + "= operator"}
		}
		l.pos++
		return token{kind: tokenCompare, text: l.input[start:l.pos], pos: start}, nil
	case c == '"' || c == '\'':
		return l.lexString(c)
	case c >= '0' && c <= '9', c == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1]):
		return l.lexNumber()
	case isIdentStart(rune(c)):
		return l.lexField()
	default:
		return token{}, &ParseError{Expr: l.input, Pos: start,
			Message: "unexpected character " + strconv.QuoteRune(rune(c))}
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}

func (l *lexer) lexString(quote byte) (token, error) {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\\' && l.pos+1 < len(l.input) {
			sb.WriteByte(l.input[l.pos+1])
			l.pos += 2
			continue
		}
		if c == quote {
			l.pos++
			return token{kind: tokenString, text: sb.String(), pos: start}, nil
		}
		sb.WriteByte(c)
		l.pos++
	}
	return token{}, &ParseError{Expr: l.input, Pos: start, Message: "unterminated string literal"}
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '.') {
		l.pos++
	}
	text := l.input[start:l.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, &ParseError{Expr: l.input, Pos: start,
			Message: "malformed number " + strconv.Quote(text)}
	}
	return token{kind: tokenNumber, text: text, num: n, pos: start}, nil
}

// lexField consumes a dotted identifier path. A trailing or doubled dot
// is a parse error.
func (l *lexer) lexField() (token, error) {
	start := l.pos
	for {
		if l.pos >= len(l.input) || !isIdentStart(rune(l.input[l.pos])) {
			return token{}, &ParseError{Expr: l.input, Pos: l.pos,
				Message: "expected identifier segment"}
		}
		for l.pos < len(l.input) && isIdentPart(rune(l.input[l.pos])) {
			l.pos++
		}
		if l.pos < len(l.input) && l.input[l.pos] == '.' {
			l.pos++
			continue
		}
		return token{kind: tokenField, text: l.input[start:l.pos], pos: start}, nil
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
