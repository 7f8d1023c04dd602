package codegen

import (
	"github.com/Urethramancer/exprc/parser"
)

// Generate turns each tree root into one accumulator instruction.
// Operator nodes keep their operands unevaluated; folding happens in Emit.
// Every instruction overwrites the accumulator, so only the last root is
// observable in the final program.
func Generate(nodes []parser.Node) []Instruction {
	instrs := make([]Instruction, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case parser.Literal:
			instrs = append(instrs, Instruction{Op: OpLoadImmediate, Value: int64(n.Value)})
		case parser.BinaryOp:
			instrs = append(instrs, Instruction{Op: kindOps[n.Kind], Left: n.Left, Right: n.Right})
		}
	}
	return instrs
}
