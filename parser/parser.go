package parser

import (
	"github.com/pkg/errors"

	"github.com/Urethramancer/exprc/lexer"
)

var (
	// ErrMissingLeftOperand is returned for an operator with nothing before it.
	ErrMissingLeftOperand = errors.New("operator without left operand")
	// ErrMissingRightOperand is returned when an operator is not followed by a literal.
	ErrMissingRightOperand = errors.New("operator without right operand")
	// ErrDanglingLiteral is returned when a literal is not joined to the expression.
	ErrDanglingLiteral = errors.New("dangling literal")
	// ErrEmptyExpression is returned when there is nothing to compile.
	ErrEmptyExpression = errors.New("empty expression")
)

// Build folds tokens left to right into expression trees using a single working stack.
// Each operator takes the top of the stack as its left operand and the next literal
// as its right operand, so chains are left-associative and there is no precedence.
// The stack is returned as is; callers wanting exactly one tree should use Parse.
func Build(tokens []lexer.Token) ([]Node, error) {
	var stack []Node
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.IsLiteral() {
			stack = append(stack, Literal{Value: tok.Value})
			continue
		}

		kind, ok := KindOf(tok.Op)
		if !ok {
			return nil, errors.Errorf("unknown operator %q at offset %d", tok.Op, tok.Pos)
		}
		if len(stack) == 0 {
			return nil, errors.Wrapf(ErrMissingLeftOperand, "'%c' at offset %d", tok.Op, tok.Pos)
		}
		if i+1 >= len(tokens) || !tokens[i+1].IsLiteral() {
			return nil, errors.Wrapf(ErrMissingRightOperand, "'%c' at offset %d", tok.Op, tok.Pos)
		}

		left := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		i++
		right := Literal{Value: tokens[i].Value}
		stack = append(stack, BinaryOp{Kind: kind, Left: left, Right: right})
	}
	return stack, nil
}

// Parse builds the tree for a complete expression.
// Input that does not reduce to exactly one tree is an error.
func Parse(tokens []lexer.Token) (Node, error) {
	nodes, err := Build(tokens)
	if err != nil {
		return nil, err
	}

	switch len(nodes) {
	case 0:
		return nil, ErrEmptyExpression
	case 1:
		return nodes[0], nil
	}

	// A second root can only start at a literal that directly follows another
	// operand, since operators always consume the literal after them.
	tok := danglingLiteral(tokens)
	return nil, errors.Wrapf(ErrDanglingLiteral, "%s at offset %d", tok, tok.Pos)
}

func danglingLiteral(tokens []lexer.Token) lexer.Token {
	for i := 1; i < len(tokens); i++ {
		if tokens[i].IsLiteral() && tokens[i-1].IsLiteral() {
			return tokens[i]
		}
	}
	return tokens[len(tokens)-1]
}
