package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ErrLiteralOverflow is returned when a digit run does not fit in 32 bits.
var ErrLiteralOverflow = errors.New("integer literal out of range")

// Scan converts source text into tokens.
// Unrecognised characters are dropped and reported as diagnostics; only a literal
// that cannot be represented stops the scan.
func Scan(src string) ([]Token, []Diagnostic, error) {
	var tokens []Token
	var diags []Diagnostic

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case isDigit(c):
			start := i
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			text := src[start:i]
			val, err := strconv.ParseInt(text, 10, 32)
			if err != nil {
				return nil, diags, errors.Wrapf(ErrLiteralOverflow, "%s at offset %d", text, start)
			}
			tokens = append(tokens, Token{Type: TokenLiteral, Value: int32(val), Pos: start})

		case isOperator(c):
			tokens = append(tokens, Token{Type: TokenOperator, Op: c, Pos: i})
			i++

		default:
			r, size := utf8.DecodeRuneInString(src[i:])
			if !unicode.IsSpace(r) {
				diags = append(diags, Diagnostic{Pos: i, Char: r})
			}
			i += size
		}
	}
	return tokens, diags, nil
}

// isDigit only accepts ASCII digits; other Unicode digits are unexpected characters.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/':
		return true
	}
	return false
}
