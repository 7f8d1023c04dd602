package cpu

import (
	"fmt"
	"strings"
)

// Register is an x86-64 general purpose register, numbered as in the encoding.
type Register int

// General purpose registers.
const (
	RAX Register = iota
	RCX
	RDX
	RBX
	RSP
	RBP
	RSI
	RDI
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15

	RegisterCount
)

var registerNames = [RegisterCount]string{
	"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
}

func (r Register) String() string {
	if r < 0 || r >= RegisterCount {
		return fmt.Sprintf("r?%d", int(r))
	}
	return registerNames[r]
}

// LookupRegister finds a register by name, with or without the % prefix.
func LookupRegister(name string) (Register, bool) {
	name = strings.ToLower(strings.TrimPrefix(name, "%"))
	for i, n := range registerNames {
		if n == name {
			return Register(i), true
		}
	}
	return 0, false
}

// Mode defines how an operand is addressed.
type Mode int

const (
	// ModeNone marks an absent operand.
	ModeNone Mode = iota
	// ModeRegister is register direct: %reg
	ModeRegister
	// ModeImmediate is a constant: $imm
	ModeImmediate
)
