package expr

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenName
	tokenInt
	tokenFloat
	tokenString
	tokenLparen
	tokenRparen
	tokenLbracket
	tokenRbracket
	tokenComma
	tokenEq       // ==
	tokenNe       // !=
	tokenLe       // <=
	tokenGe       // >=
	tokenLt       // <
	tokenGt       // >
	tokenPlus     // +
	tokenMinus    // -
	tokenStar     // *
	tokenSlash    // /
	tokenFloorDiv // //
	tokenPercent  // %
	tokenPower    // **
)

type token struct {
	kind tokenKind
	text string
	pos  int

	intValue   int64
	floatValue float64
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNamePart(c byte) bool {
	// Dots are part of names so server paths like "config.lr" scan as one
	// identifier.
	return isNameStart(c) || c == '.' || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// lex tokenizes a preprocessed filter expression. It is all-or-nothing: any
// unrecognized character fails the whole expression.
func lex(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isNameStart(c):
			start := i
			for i < len(input) && isNamePart(input[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenName, text: input[start:i], pos: start})
		case isDigit(c) || (c == '.' && i+1 < len(input) && isDigit(input[i+1])):
			tok, next, err := lexNumber(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		case c == '\'' || c == '"':
			tok, next, err := lexString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		default:
			tok, next, err := lexPunct(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(input)})
	return tokens, nil
}

func lexNumber(input string, start int) (token, int, error) {
	i := start
	isFloat := false
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	// The fraction may stand alone on either side of the dot: ".5" and "5."
	// are both valid literals.
	if i < len(input) && input[i] == '.' {
		isFloat = true
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
			isFloat = true
			i = j
			for i < len(input) && isDigit(input[i]) {
				i++
			}
		}
	}

	text := input[start:i]
	if isFloat {
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, 0, fmt.Errorf("invalid number %q at position %d", text, start)
		}
		return token{kind: tokenFloat, text: text, pos: start, floatValue: value}, i, nil
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token{}, 0, fmt.Errorf("invalid number %q at position %d", text, start)
	}
	return token{kind: tokenInt, text: text, pos: start, intValue: value}, i, nil
}

func lexString(input string, start int) (token, int, error) {
	quote := input[start]
	var b strings.Builder
	i := start + 1
	for i < len(input) {
		c := input[i]
		if c == '\\' && i+1 < len(input) {
			switch next := input[i+1]; next {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '\'', '"':
				b.WriteByte(next)
			default:
				// Unrecognized escapes keep the backslash.
				b.WriteByte('\\')
				b.WriteByte(next)
			}
			i += 2
			continue
		}
		if c == quote {
			return token{kind: tokenString, text: b.String(), pos: start}, i + 1, nil
		}
		b.WriteByte(c)
		i++
	}
	return token{}, 0, fmt.Errorf("unterminated string literal at position %d", start)
}

func lexPunct(input string, start int) (token, int, error) {
	two := ""
	if start+2 <= len(input) {
		two = input[start : start+2]
	}
	switch two {
	case "==":
		return token{kind: tokenEq, text: two, pos: start}, start + 2, nil
	case "!=":
		return token{kind: tokenNe, text: two, pos: start}, start + 2, nil
	case "<=":
		return token{kind: tokenLe, text: two, pos: start}, start + 2, nil
	case ">=":
		return token{kind: tokenGe, text: two, pos: start}, start + 2, nil
	case "//":
		return token{kind: tokenFloorDiv, text: two, pos: start}, start + 2, nil
	case "**":
		return token{kind: tokenPower, text: two, pos: start}, start + 2, nil
	}

	switch input[start] {
	case '(':
		return token{kind: tokenLparen, text: "(", pos: start}, start + 1, nil
	case ')':
		return token{kind: tokenRparen, text: ")", pos: start}, start + 1, nil
	case '[':
		return token{kind: tokenLbracket, text: "[", pos: start}, start + 1, nil
	case ']':
		return token{kind: tokenRbracket, text: "]", pos: start}, start + 1, nil
	case ',':
		return token{kind: tokenComma, text: ",", pos: start}, start + 1, nil
	case '<':
		return token{kind: tokenLt, text: "<", pos: start}, start + 1, nil
	case '>':
		return token{kind: tokenGt, text: ">", pos: start}, start + 1, nil
	case '+':
		return token{kind: tokenPlus, text: "+", pos: start}, start + 1, nil
	case '-':
		return token{kind: tokenMinus, text: "-", pos: start}, start + 1, nil
	case '*':
		return token{kind: tokenStar, text: "*", pos: start}, start + 1, nil
	case '/':
		return token{kind: tokenSlash, text: "/", pos: start}, start + 1, nil
	case '%':
		return token{kind: tokenPercent, text: "%", pos: start}, start + 1, nil
	}
	return token{}, 0, fmt.Errorf("unexpected character %q at position %d", input[start], start)
}
