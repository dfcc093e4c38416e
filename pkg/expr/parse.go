package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax is matched by ParseError.
var ErrSyntax = errors.New("expr: syntax error")

// ParseError reports malformed input and the byte offset where it was found.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expr: parse error at offset %d: %s", e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

// Parse reads an expression in the notation String produces:
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := '-' unary | power
//	power   := atom (('**' | '^') unary)?
//	atom    := number | imaginary | complex | name | name '(' expr ')' | '(' expr ')'
//	complex := '(' ['-'] number ('+' | '-') imaginary ')'
//
// Subtraction builds a + (-b) and division a * (1/b); a leading "1 /"
// builds the reciprocal itself. A minus directly before a number literal
// yields a negative constant. The names e and pi are constants, names of
// registered functions must be called, and any other name is a variable.
func Parse(input string) (ExprNode, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	if p.peek().typ == tokEOF {
		return nil, &ParseError{Pos: 0, Msg: "empty expression"}
	}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.typ != tokEOF {
		return nil, &ParseError{Pos: t.pos, Msg: "unexpected token " + t.String()}
	}
	return node, nil
}

// MustParse is like Parse but panics on error.
func MustParse(input string) ExprNode {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	if p.pos >= len(p.tokens) {
		return token{typ: tokEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *parser) expect(typ tokenType, what string) (token, error) {
	t := p.peek()
	if t.typ != typ {
		return t, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("expected %s, found %s", what, t)}
	}
	return p.advance(), nil
}

// parseExpr: term (('+' | '-') term)*
func (p *parser) parseExpr() (ExprNode, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	terms := []ExprNode{first}
	for p.peek().typ == tokPlus || p.peek().typ == tokMinus {
		op := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op.typ == tokMinus {
			right = neg(right)
		}
		terms = append(terms, right)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return sum(terms...), nil
}

// parseTerm: unary (('*' | '/') unary)*
func (p *parser) parseTerm() (ExprNode, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	factors := []ExprNode{first}
	for p.peek().typ == tokStar || p.peek().typ == tokSlash {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op.typ == tokStar {
			factors = append(factors, right)
			continue
		}
		if len(factors) == 1 && isOne(factors[0]) {
			factors[0] = inv(right)
			continue
		}
		factors = append(factors, inv(right))
	}
	if len(factors) == 1 {
		return factors[0], nil
	}
	return prod(factors...), nil
}

func isOne(e ExprNode) bool {
	c, ok := e.(*IntNode)
	return ok && c.Val == 1
}

// parseUnary: '-' unary | power
func (p *parser) parseUnary() (ExprNode, error) {
	if p.peek().typ != tokMinus {
		return p.parsePower()
	}
	p.advance()
	literal := p.peek().typ == tokNumber
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if literal {
		switch c := operand.(type) {
		case *IntNode:
			return IntNumber(c.Val).Neg().Node(), nil
		case *FloatNode:
			return &FloatNode{Val: -c.Val}, nil
		}
	}
	return neg(operand), nil
}

// parsePower: atom (('**' | '^') unary)?
func (p *parser) parsePower() (ExprNode, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek().typ != tokPow {
		return base, nil
	}
	p.advance()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return pow(base, exp), nil
}

func (p *parser) parseAtom() (ExprNode, error) {
	t := p.advance()
	switch t.typ {
	case tokNumber:
		return parseNumber(t)
	case tokImag:
		lit := strings.TrimRight(t.literal, "ij")
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, &ParseError{Pos: t.pos, Msg: "invalid number " + t.String()}
		}
		return &ComplexNode{Val: complex(0, v)}, nil
	case tokIdent:
		if p.peek().typ == tokLParen {
			return p.parseCall(t)
		}
		if c, ok := NamedConst(t.literal); ok {
			return c, nil
		}
		if _, ok := LookupFunction(t.literal); ok {
			return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("function %s needs an argument", t.literal)}
		}
		return &VarNode{Name: t.literal}, nil
	case tokLParen:
		if c, ok := p.complexLiteral(); ok {
			return c, nil
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, &ParseError{Pos: t.pos, Msg: "unexpected token " + t.String()}
	}
}

// complexLiteral reads the (a+bi) form String uses for complex constants.
// The opening parenthesis is already consumed; on no match nothing is.
func (p *parser) complexLiteral() (ExprNode, bool) {
	at := func(k int) token {
		if p.pos+k < len(p.tokens) {
			return p.tokens[p.pos+k]
		}
		return token{typ: tokEOF}
	}
	k := 0
	re := 1.0
	if at(k).typ == tokMinus {
		re = -1
		k++
	}
	if at(k).typ != tokNumber {
		return nil, false
	}
	v, err := strconv.ParseFloat(at(k).literal, 64)
	if err != nil {
		return nil, false
	}
	re *= v
	k++

	im := 1.0
	switch at(k).typ {
	case tokPlus:
	case tokMinus:
		im = -1
	default:
		return nil, false
	}
	k++
	if at(k).typ != tokImag {
		return nil, false
	}
	v, err = strconv.ParseFloat(strings.TrimRight(at(k).literal, "ij"), 64)
	if err != nil {
		return nil, false
	}
	im *= v
	k++
	if at(k).typ != tokRParen {
		return nil, false
	}
	p.pos += k + 1
	return &ComplexNode{Val: complex(re, im)}, true
}

func (p *parser) parseCall(name token) (ExprNode, error) {
	op, ok := LookupFunction(name.literal)
	if !ok {
		return nil, &ParseError{Pos: name.pos, Msg: "unknown function " + name.literal}
	}
	p.advance() // (
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen, `")"`); err != nil {
		return nil, err
	}
	return apply(op, arg), nil
}

// parseNumber reads an integer literal as IntNode, falling back to a float
// when it has a fraction, an exponent or does not fit in int64.
func parseNumber(t token) (ExprNode, error) {
	if !strings.ContainsAny(t.literal, ".eE") {
		if v, err := strconv.ParseInt(t.literal, 10, 64); err == nil {
			return &IntNode{Val: v}, nil
		}
	}
	v, err := strconv.ParseFloat(t.literal, 64)
	if err != nil {
		return nil, &ParseError{Pos: t.pos, Msg: "invalid number " + t.String()}
	}
	return &FloatNode{Val: v}, nil
}
