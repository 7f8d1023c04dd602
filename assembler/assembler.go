package assembler

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Urethramancer/exprc/cpu"
)

// Assembler holds the state for the assembly process.
type Assembler struct {
	symbols map[string]int64
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{
		symbols: make(map[string]int64),
	}
}

// Assemble takes x86-64 assembly in AT&T syntax and returns a program for the cpu package.
func (asm *Assembler) Assemble(src string) (*cpu.Program, error) {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	nodes, err := asm.parseLines(lines)
	if err != nil {
		return nil, errors.WithMessage(err, "parsing error")
	}

	prog := cpu.NewProgram()
	for _, n := range nodes {
		switch n.Type {
		case NodeLabel:
			if _, ok := prog.Labels[n.Label]; ok {
				return nil, errors.Errorf("line %d: label %s redefined", n.Line, n.Label)
			}
			prog.Labels[n.Label] = len(prog.Code)

		case NodeDirective:
			if err := asm.directive(n, prog); err != nil {
				return nil, errors.WithMessagef(err, "line %d", n.Line)
			}

		case NodeInstruction:
			inst, err := asm.instruction(n)
			if err != nil {
				return nil, errors.WithMessagef(err, "line %d", n.Line)
			}
			prog.Code = append(prog.Code, inst)
		}
	}

	for _, g := range prog.Globals {
		if _, ok := prog.Labels[g]; !ok {
			return nil, errors.Errorf("global symbol %s is never defined", g)
		}
	}
	return prog, nil
}

// Assemble is a shortcut using a fresh Assembler.
func Assemble(src string) (*cpu.Program, error) {
	return New().Assemble(src)
}

// parseLines converts raw source lines into a slice of Node objects.
func (asm *Assembler) parseLines(lines []string) ([]*Node, error) {
	var nodes []*Node
	for i, line := range lines {
		if commentIndex := strings.IndexRune(line, '#'); commentIndex != -1 {
			line = line[:commentIndex]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if colon := strings.IndexRune(line, ':'); colon != -1 {
			label := strings.TrimSpace(line[:colon])
			if !reLabel.MatchString(label) {
				return nil, errors.Errorf("line %d: invalid label: %s", i+1, label)
			}
			nodes = append(nodes, &Node{Type: NodeLabel, Label: label, Parts: []string{label + ":"}, Line: i + 1})
			line = strings.TrimSpace(line[colon+1:])
		}

		if line == "" {
			continue
		}

		var mnemonic, operandStr string
		firstSpace := strings.IndexAny(line, " \t")
		if firstSpace == -1 {
			mnemonic = line
		} else {
			mnemonic = line[:firstSpace]
			operandStr = strings.TrimSpace(line[firstSpace:])
		}

		nodeParts := []string{mnemonic}
		if operandStr != "" {
			nodeParts = append(nodeParts, splitOperands(operandStr)...)
		}

		if strings.HasPrefix(mnemonic, ".") {
			nodes = append(nodes, &Node{Type: NodeDirective, Parts: nodeParts, Line: i + 1})
			continue
		}

		nodes = append(nodes, &Node{Type: NodeInstruction, Mnemonic: strings.ToLower(mnemonic), Parts: nodeParts, Line: i + 1})
	}
	return nodes, nil
}

// directive applies an assembler directive.
func (asm *Assembler) directive(n *Node, prog *cpu.Program) error {
	dir := strings.ToLower(n.Parts[0])
	args := n.Parts[1:]

	switch dir {
	case ".globl", ".global":
		if len(args) == 0 {
			return errors.Errorf("%s requires a symbol", dir)
		}
		for _, sym := range args {
			if !reLabel.MatchString(sym) {
				return errors.Errorf("invalid symbol: %s", sym)
			}
			prog.Globals = append(prog.Globals, sym)
		}
		return nil

	case ".text", ".att_syntax":
		return nil

	case ".intel_syntax":
		return errors.New("only AT&T syntax is supported")

	case ".set", ".equ":
		if len(args) != 2 {
			return errors.Errorf("%s requires a symbol and a value", dir)
		}
		if !reLabel.MatchString(args[0]) {
			return errors.Errorf("invalid symbol: %s", args[0])
		}
		val, err := parseConstant(args[1], asm)
		if err != nil {
			return err
		}
		asm.symbols[args[0]] = val
		return nil
	}
	return errors.Errorf("unknown directive: %s", n.Parts[0])
}

// instruction resolves the mnemonic and operands of an instruction node.
func (asm *Assembler) instruction(n *Node) (cpu.Instruction, error) {
	op, ok := cpu.LookupOpcode(n.Mnemonic)
	if !ok {
		return cpu.Instruction{}, errors.Errorf("unknown instruction: %s", n.Mnemonic)
	}

	var operands []cpu.Operand
	for _, s := range n.Parts[1:] {
		o, err := parseOperand(s, asm)
		if err != nil {
			return cpu.Instruction{}, err
		}
		operands = append(operands, o)
	}
	if len(operands) != op.Operands() {
		return cpu.Instruction{}, errors.Errorf("%s requires %d operands, got %d", op, op.Operands(), len(operands))
	}
	if len(operands) == 2 && operands[1].Mode != cpu.ModeRegister {
		return cpu.Instruction{}, errors.Errorf("%s destination must be a register", op)
	}

	n.Operands = operands
	return cpu.Instruction{Op: op, Operands: operands, Line: n.Line}, nil
}
