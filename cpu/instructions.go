package cpu

import (
	"fmt"
	"strings"
)

// Opcode identifies an instruction.
type Opcode int

// Supported instructions.
const (
	OPMOV Opcode = iota
	OPADD
	OPSUB
	OPIMUL
	OPCQO
	OPIDIV
	OPNEG
	OPRET
)

var opcodeNames = map[Opcode]string{
	OPMOV:  "mov",
	OPADD:  "add",
	OPSUB:  "sub",
	OPIMUL: "imul",
	OPCQO:  "cqo",
	OPIDIV: "idiv",
	OPNEG:  "neg",
	OPRET:  "ret",
}

// operandCounts is the number of operands each opcode takes.
var operandCounts = map[Opcode]int{
	OPMOV:  2,
	OPADD:  2,
	OPSUB:  2,
	OPIMUL: 2,
	OPCQO:  0,
	OPIDIV: 1,
	OPNEG:  1,
	OPRET:  0,
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("op%d", int(o))
}

// LookupOpcode finds an opcode by mnemonic, accepting the q size suffix.
func LookupOpcode(mnemonic string) (Opcode, bool) {
	m := strings.ToLower(mnemonic)
	for op, name := range opcodeNames {
		if m == name || (m == name+"q" && op != OPCQO && op != OPRET) {
			return op, true
		}
	}
	return 0, false
}

// Operands returns how many operands an opcode takes.
func (o Opcode) Operands() int {
	return operandCounts[o]
}

// Operand is a decoded instruction operand.
type Operand struct {
	Mode     Mode
	Register Register
	Value    int64
}

func (o Operand) String() string {
	switch o.Mode {
	case ModeRegister:
		return "%" + o.Register.String()
	case ModeImmediate:
		return fmt.Sprintf("$%d", o.Value)
	}
	return ""
}

// Instruction is one assembled instruction. Operands are in AT&T order: source first.
type Instruction struct {
	Op       Opcode
	Operands []Operand
	Line     int // Source line, for error messages
}

func (i Instruction) String() string {
	if len(i.Operands) == 0 {
		return i.Op.String()
	}
	ops := make([]string, len(i.Operands))
	for n, o := range i.Operands {
		ops[n] = o.String()
	}
	return i.Op.String() + " " + strings.Join(ops, ", ")
}

// Program is an assembled instruction stream with its labels.
type Program struct {
	Code    []Instruction
	Labels  map[string]int
	Globals []string
}

// NewProgram creates an empty program.
func NewProgram() *Program {
	return &Program{Labels: make(map[string]int)}
}
