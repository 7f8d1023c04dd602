package lexer

import (
	"fmt"
	"strconv"
)

// TokenType defines the type of a lexical token.
type TokenType int

const (
	// TokenLiteral is a run of decimal digits.
	TokenLiteral TokenType = iota
	// TokenOperator is one of + - * /.
	TokenOperator
)

// Token represents one scanned element of the source.
type Token struct {
	Type TokenType
	// Value is set for literals.
	Value int32
	// Op is set for operators.
	Op  byte
	Pos int // Byte offset in the source
}

// IsLiteral returns true if this token is a numeric literal.
func (t Token) IsLiteral() bool {
	return t.Type == TokenLiteral
}

// IsOperator returns true if this token is an operator.
func (t Token) IsOperator() bool {
	return t.Type == TokenOperator
}

func (t Token) String() string {
	if t.Type == TokenLiteral {
		return strconv.FormatInt(int64(t.Value), 10)
	}
	return string(t.Op)
}

// Diagnostic is a non-fatal problem found while scanning.
type Diagnostic struct {
	Pos  int
	Char rune
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("unexpected character: '%c'", d.Char)
}
