package codegen

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/Urethramancer/exprc/parser"
)

// Accumulator is the register holding the result of main.
const Accumulator = "rax"

// Emit writes the assembly text for a generated program, one line at a time.
//
// Constant folding is the only code-generation strategy: every arithmetic
// instruction is evaluated here and written as a single immediate load, so the
// program never performs arithmetic at run time. This holds only while every
// operand is a literal. Runtime values need real register or stack code, not
// wider folding.
func Emit(w io.Writer, instrs []Instruction) error {
	if err := writeLines(w, "  .globl main", "main:"); err != nil {
		return err
	}

	for _, inst := range instrs {
		val, err := Fold(inst)
		if err != nil {
			return errors.WithMessage(err, "constant folding failed")
		}
		if err := writeLines(w, fmt.Sprintf("  mov $%d, %%%s", val, Accumulator)); err != nil {
			return err
		}
	}

	return writeLines(w, "  ret")
}

// EmitString is Emit into a string.
func EmitString(instrs []Instruction) (string, error) {
	var sb strings.Builder
	if err := Emit(&sb, instrs); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Fold returns the constant an instruction leaves in the accumulator.
func Fold(inst Instruction) (int64, error) {
	if inst.Op == OpLoadImmediate {
		return inst.Value, nil
	}

	kind, ok := inst.Op.Kind()
	if !ok {
		return 0, errors.Errorf("unknown instruction: %s", inst.Op)
	}
	return parser.Eval(parser.BinaryOp{Kind: kind, Left: inst.Left, Right: inst.Right})
}

func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return errors.Wrap(err, "write failed")
		}
	}
	return nil
}
