package cpu

import (
	"math"

	"github.com/pkg/errors"
)

// ErrDivideError is the #DE fault raised by IDIV.
var ErrDivideError = errors.New("divide error")

// binary fetches both operands of a two-operand instruction.
func (c *CPU) binary(inst *Instruction) (src, dst int64, err error) {
	src, err = c.GetOperand(inst.Operands[0])
	if err != nil {
		return 0, 0, errors.WithMessage(err, "failed to get source operand")
	}
	dst, err = c.GetOperand(inst.Operands[1])
	if err != nil {
		return 0, 0, errors.WithMessage(err, "failed to get destination operand")
	}
	return src, dst, nil
}

// opADD handles ADD src, dst. Results wrap like the hardware.
func (c *CPU) opADD(inst *Instruction) error {
	src, dst, err := c.binary(inst)
	if err != nil {
		return err
	}
	return c.PutOperand(inst.Operands[1], dst+src)
}

// opSUB handles SUB src, dst: dst = dst - src.
func (c *CPU) opSUB(inst *Instruction) error {
	src, dst, err := c.binary(inst)
	if err != nil {
		return err
	}
	return c.PutOperand(inst.Operands[1], dst-src)
}

// opIMUL handles the two-operand IMUL src, dst.
func (c *CPU) opIMUL(inst *Instruction) error {
	src, dst, err := c.binary(inst)
	if err != nil {
		return err
	}
	return c.PutOperand(inst.Operands[1], dst*src)
}

// opCQO sign-extends RAX into RDX.
func (c *CPU) opCQO(inst *Instruction) error {
	if c.R[RAX] < 0 {
		c.R[RDX] = -1
	} else {
		c.R[RDX] = 0
	}
	return nil
}

// opIDIV handles IDIV src: RDX:RAX / src, quotient in RAX, remainder in RDX.
// Only dividends that fit in RAX (RDX holding its sign extension) are supported.
func (c *CPU) opIDIV(inst *Instruction) error {
	divisor, err := c.GetOperand(inst.Operands[0])
	if err != nil {
		return err
	}
	if divisor == 0 {
		return errors.Wrap(ErrDivideError, "division by zero")
	}

	dividend := c.R[RAX]
	ext := int64(0)
	if dividend < 0 {
		ext = -1
	}
	if c.R[RDX] != ext {
		return errors.New("128-bit dividends are not supported; use cqo first")
	}
	if dividend == math.MinInt64 && divisor == -1 {
		return errors.Wrap(ErrDivideError, "quotient overflow")
	}

	c.R[RAX] = dividend / divisor
	c.R[RDX] = dividend % divisor
	return nil
}

// opNEG handles NEG dst.
func (c *CPU) opNEG(inst *Instruction) error {
	v, err := c.GetOperand(inst.Operands[0])
	if err != nil {
		return err
	}
	return c.PutOperand(inst.Operands[0], -v)
}
