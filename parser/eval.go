package parser

import (
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrDivisionByZero is returned when a divisor evaluates to zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrArithmeticOverflow is returned when a result does not fit in 64 bits.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)

// Eval computes the value of a tree at the width of the accumulator register.
func Eval(n Node) (int64, error) {
	switch n := n.(type) {
	case Literal:
		return int64(n.Value), nil
	case BinaryOp:
		left, err := Eval(n.Left)
		if err != nil {
			return 0, err
		}
		right, err := Eval(n.Right)
		if err != nil {
			return 0, err
		}
		result, err := Apply(n.Kind, left, right)
		if err != nil {
			return 0, errors.WithMessagef(err, "%s", n)
		}
		return result, nil
	case nil:
		return 0, errors.New("nil node")
	}
	return 0, errors.Errorf("unknown node type %T", n)
}

// Apply performs one arithmetic operation with overflow and zero-divisor checks.
func Apply(kind Kind, left, right int64) (int64, error) {
	switch kind {
	case Add:
		r := left + right
		// Overflow iff both operands share a sign the result does not.
		if (left >= 0) == (right >= 0) && (r >= 0) != (left >= 0) {
			return 0, ErrArithmeticOverflow
		}
		return r, nil

	case Sub:
		r := left - right
		if (left >= 0) != (right >= 0) && (r >= 0) != (left >= 0) {
			return 0, ErrArithmeticOverflow
		}
		return r, nil

	case Mul:
		if left == 0 || right == 0 {
			return 0, nil
		}
		r := left * right
		if r/right != left || (left == -1 && right == math.MinInt64) || (right == -1 && left == math.MinInt64) {
			return 0, ErrArithmeticOverflow
		}
		return r, nil

	case Div:
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		if left == math.MinInt64 && right == -1 {
			return 0, ErrArithmeticOverflow
		}
		return left / right, nil
	}
	return 0, errors.Errorf("unknown operation %s", kind)
}
