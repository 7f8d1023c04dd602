package cpu

import (
	"fmt"
	"io"
)

// DumpRegisters writes the register file, four registers per line.
func (c *CPU) DumpRegisters(w io.Writer) {
	for i := Register(0); i < RegisterCount; i++ {
		fmt.Fprintf(w, "%-4s %016X", "%"+i.String(), uint64(c.R[i]))
		if i%4 == 3 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintf(w, "PC   %d  steps %d\n", c.PC, c.Steps)
}
