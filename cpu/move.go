package cpu

// opMOV handles MOV src, dst.
func (c *CPU) opMOV(inst *Instruction) error {
	v, err := c.GetOperand(inst.Operands[0])
	if err != nil {
		return err
	}
	return c.PutOperand(inst.Operands[1], v)
}
