package cpu

// opRET handles RET. There is no call stack, so returning from the entry
// routine halts the CPU.
func (c *CPU) opRET(inst *Instruction) error {
	c.Running = false
	return nil
}
