package expr

import "fmt"

type tokenType int

const (
	tokNumber tokenType = iota
	tokImag
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	typ     tokenType
	literal string
	pos     int // byte offset in the input
}

func (t token) String() string {
	if t.typ == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.literal)
}

// lex splits input into tokens. Numbers are decimal with an optional
// fraction and exponent; a trailing i or j makes them imaginary.
func lex(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		ch := input[i]

		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			i++
			continue
		}

		switch ch {
		case '+':
			tokens = append(tokens, token{typ: tokPlus, literal: "+", pos: i})
			i++
		case '-':
			tokens = append(tokens, token{typ: tokMinus, literal: "-", pos: i})
			i++
		case '*':
			if i+1 < len(input) && input[i+1] == '*' {
				tokens = append(tokens, token{typ: tokPow, literal: "**", pos: i})
				i += 2
			} else {
				tokens = append(tokens, token{typ: tokStar, literal: "*", pos: i})
				i++
			}
		case '^':
			tokens = append(tokens, token{typ: tokPow, literal: "^", pos: i})
			i++
		case '/':
			tokens = append(tokens, token{typ: tokSlash, literal: "/", pos: i})
			i++
		case '(':
			tokens = append(tokens, token{typ: tokLParen, literal: "(", pos: i})
			i++
		case ')':
			tokens = append(tokens, token{typ: tokRParen, literal: ")", pos: i})
			i++
		default:
			switch {
			case isDigit(ch) || (ch == '.' && i+1 < len(input) && isDigit(input[i+1])):
				start := i
				i = scanNumber(input, i)
				typ := tokNumber
				if i < len(input) && (input[i] == 'i' || input[i] == 'j') &&
					(i+1 == len(input) || !isIdentRune(rune(input[i+1]), false)) {
					typ = tokImag
					i++
				}
				tokens = append(tokens, token{typ: typ, literal: input[start:i], pos: start})
			case isIdentRune(rune(ch), true):
				start := i
				for i < len(input) && isIdentRune(rune(input[i]), false) {
					i++
				}
				tokens = append(tokens, token{typ: tokIdent, literal: input[start:i], pos: start})
			default:
				return nil, &ParseError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", ch)}
			}
		}
	}
	tokens = append(tokens, token{typ: tokEOF, pos: len(input)})
	return tokens, nil
}

// scanNumber returns the end of the number starting at i. An exponent is
// only consumed when digits follow, so 2e reads as 2 then the constant e.
func scanNumber(input string, i int) int {
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	if i < len(input) && input[i] == '.' {
		i++
		for i < len(input) && isDigit(input[i]) {
			i++
		}
	}
	if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
		j := i + 1
		if j < len(input) && (input[j] == '+' || input[j] == '-') {
			j++
		}
		if j < len(input) && isDigit(input[j]) {
			for j < len(input) && isDigit(input[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
