package cpu

import (
	"github.com/pkg/errors"
)

// Handler executes one decoded instruction.
type Handler func(*CPU, *Instruction) error

var handlers = map[Opcode]Handler{
	OPMOV:  (*CPU).opMOV,
	OPADD:  (*CPU).opADD,
	OPSUB:  (*CPU).opSUB,
	OPIMUL: (*CPU).opIMUL,
	OPCQO:  (*CPU).opCQO,
	OPIDIV: (*CPU).opIDIV,
	OPNEG:  (*CPU).opNEG,
	OPRET:  (*CPU).opRET,
}

// Decode checks an instruction's operand shape and returns its handler.
func (c *CPU) Decode(inst *Instruction) (Handler, error) {
	h, ok := handlers[inst.Op]
	if !ok {
		return nil, errors.Errorf("no handler for %s", inst.Op)
	}
	if len(inst.Operands) != inst.Op.Operands() {
		return nil, errors.Errorf("%s requires %d operands, got %d", inst.Op, inst.Op.Operands(), len(inst.Operands))
	}
	// Every two-operand instruction writes to a register.
	if len(inst.Operands) == 2 && inst.Operands[1].Mode != ModeRegister {
		return nil, errors.Errorf("%s destination must be a register", inst.Op)
	}
	return h, nil
}
