package assembler

import "github.com/Urethramancer/exprc/cpu"

// NodeType defines the type of an assembly node.
type NodeType int

const (
	// NodeInstruction type.
	NodeInstruction NodeType = iota
	// NodeLabel type.
	NodeLabel
	// NodeDirective type.
	NodeDirective
)

// Node represents one parsed element from the assembly source.
type Node struct {
	Type     NodeType
	Label    string
	Mnemonic string
	Operands []cpu.Operand
	Parts    []string
	Line     int
}
