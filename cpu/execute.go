package cpu

import (
	"github.com/pkg/errors"
)

// Execute fetches, decodes, and executes a single instruction.
func (c *CPU) Execute() error {
	if !c.Running {
		return nil
	}
	if c.Program == nil || c.PC < 0 || c.PC >= len(c.Program.Code) {
		c.Running = false
		return errors.Errorf("pc %d outside program", c.PC)
	}

	// Fetch
	inst := &c.Program.Code[c.PC]
	c.PC++
	c.Steps++

	// Decode
	h, err := c.Decode(inst)
	if err != nil {
		return errors.WithMessagef(err, "decode failed at line %d", inst.Line)
	}

	// Execute
	if err := h(c, inst); err != nil {
		return errors.WithMessagef(err, "execution failed for '%s' at line %d", inst, inst.Line)
	}
	return nil
}

// GetOperand reads the value of a source operand.
func (c *CPU) GetOperand(op Operand) (int64, error) {
	switch op.Mode {
	case ModeRegister:
		return c.R[op.Register], nil
	case ModeImmediate:
		return op.Value, nil
	}
	return 0, errors.Errorf("unsupported addressing mode: %d", op.Mode)
}

// PutOperand writes a result to a destination operand.
func (c *CPU) PutOperand(op Operand, v int64) error {
	if op.Mode != ModeRegister {
		return errors.Errorf("cannot write to %s", op)
	}
	c.R[op.Register] = v
	return nil
}
