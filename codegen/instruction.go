package codegen

import (
	"fmt"

	"github.com/Urethramancer/exprc/parser"
)

// Op defines the type of a generated instruction.
type Op int

const (
	// OpLoadImmediate loads a constant into the accumulator.
	OpLoadImmediate Op = iota
	// OpAdd carries the operands of an addition.
	OpAdd
	// OpSub carries the operands of a subtraction.
	OpSub
	// OpMul carries the operands of a multiplication.
	OpMul
	// OpDiv carries the operands of a division.
	OpDiv
)

var opNames = map[Op]string{
	OpLoadImmediate: "load",
	OpAdd:           "add",
	OpSub:           "sub",
	OpMul:           "mul",
	OpDiv:           "div",
}

var kindOps = map[parser.Kind]Op{
	parser.Add: OpAdd,
	parser.Sub: OpSub,
	parser.Mul: OpMul,
	parser.Div: OpDiv,
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Kind maps an arithmetic op back to the tree operation it folds.
func (o Op) Kind() (parser.Kind, bool) {
	for k, op := range kindOps {
		if op == o {
			return k, true
		}
	}
	return 0, false
}

// Instruction is one step of the generated program.
type Instruction struct {
	Op Op
	// Value is set for OpLoadImmediate.
	Value int64
	// Left and Right hold the unevaluated operands of arithmetic ops.
	Left  parser.Node
	Right parser.Node
}

func (i Instruction) String() string {
	if i.Op == OpLoadImmediate {
		return fmt.Sprintf("%s %d", i.Op, i.Value)
	}
	return fmt.Sprintf("%s %s, %s", i.Op, i.Left, i.Right)
}
