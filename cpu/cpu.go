package cpu

import (
	"github.com/pkg/errors"
)

// DefaultStepLimit stops runaway programs in Run.
const DefaultStepLimit = 1 << 20

// CPU is an x86-64 general register file executing assembled programs.
type CPU struct {
	// R holds the sixteen general purpose registers, indexed by Register.
	R [RegisterCount]int64
	// PC is the index of the next instruction in Program.
	PC int
	// Program being executed.
	Program *Program

	// Steps counts executed instructions.
	Steps int
	// Running or not.
	Running bool
}

// New creates a new CPU instance with cleared registers.
func New() *CPU {
	return &CPU{}
}

// LoadProgram sets the PC to the entry label and starts the CPU.
func (c *CPU) LoadProgram(p *Program, entry string) error {
	pc, ok := p.Labels[entry]
	if !ok {
		return errors.Errorf("entry point %s not defined", entry)
	}
	c.Program = p
	c.PC = pc
	c.Steps = 0
	c.Running = true
	return nil
}

// Reg returns the value of a register.
func (c *CPU) Reg(r Register) int64 {
	return c.R[r]
}

// SetReg writes a full 64-bit register.
func (c *CPU) SetReg(r Register, v int64) {
	c.R[r] = v
}

// Run executes until the program returns and yields the accumulator.
// A limit of zero means DefaultStepLimit.
func (c *CPU) Run(limit int) (int64, error) {
	if limit <= 0 {
		limit = DefaultStepLimit
	}
	for c.Running {
		if c.Steps >= limit {
			return 0, errors.Errorf("step limit of %d reached", limit)
		}
		if err := c.Execute(); err != nil {
			return 0, err
		}
	}
	return c.R[RAX], nil
}

// RunProgram loads a program at entry and runs it on a fresh CPU.
func RunProgram(p *Program, entry string) (int64, error) {
	c := New()
	if err := c.LoadProgram(p, entry); err != nil {
		return 0, err
	}
	return c.Run(0)
}
