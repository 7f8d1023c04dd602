package cpu_test

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/exprc/cpu"
)

func imm(v int64) cpu.Operand { return cpu.Operand{Mode: cpu.ModeImmediate, Value: v} }

func reg(r cpu.Register) cpu.Operand { return cpu.Operand{Mode: cpu.ModeRegister, Register: r} }

func program(code ...cpu.Instruction) *cpu.Program {
	p := cpu.NewProgram()
	p.Labels["main"] = 0
	p.Code = code
	return p
}

func ins(op cpu.Opcode, operands ...cpu.Operand) cpu.Instruction {
	return cpu.Instruction{Op: op, Operands: operands}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		code []cpu.Instruction
		want int64
	}{
		{"MOV", []cpu.Instruction{ins(cpu.OPMOV, imm(10), reg(cpu.RAX)), ins(cpu.OPRET)}, 10},
		{"LastLoadWins", []cpu.Instruction{ins(cpu.OPMOV, imm(1), reg(cpu.RAX)), ins(cpu.OPMOV, imm(2), reg(cpu.RAX)), ins(cpu.OPRET)}, 2},
		{"ADD_SUB", []cpu.Instruction{
			ins(cpu.OPMOV, imm(5), reg(cpu.RAX)),
			ins(cpu.OPADD, imm(20), reg(cpu.RAX)),
			ins(cpu.OPSUB, imm(30), reg(cpu.RAX)),
			ins(cpu.OPRET),
		}, -5},
		{"IMUL", []cpu.Instruction{
			ins(cpu.OPMOV, imm(6), reg(cpu.RAX)),
			ins(cpu.OPMOV, imm(7), reg(cpu.RDI)),
			ins(cpu.OPIMUL, reg(cpu.RDI), reg(cpu.RAX)),
			ins(cpu.OPRET),
		}, 42},
		{"IDIV", []cpu.Instruction{
			ins(cpu.OPMOV, imm(-7), reg(cpu.RAX)),
			ins(cpu.OPMOV, imm(2), reg(cpu.RDI)),
			ins(cpu.OPCQO),
			ins(cpu.OPIDIV, reg(cpu.RDI)),
			ins(cpu.OPRET),
		}, -3},
		{"NEG", []cpu.Instruction{ins(cpu.OPMOV, imm(9), reg(cpu.RAX)), ins(cpu.OPNEG, reg(cpu.RAX)), ins(cpu.OPRET)}, -9},
	}
	for _, tc := range tests {
		got, err := cpu.RunProgram(program(tc.code...), "main")
		require.NoError(t, err, "[%s]", tc.name)
		require.Equal(t, tc.want, got, "[%s]", tc.name)
	}
}

func TestIDIVFaults(t *testing.T) {
	_, err := cpu.RunProgram(program(
		ins(cpu.OPMOV, imm(1), reg(cpu.RAX)),
		ins(cpu.OPCQO),
		ins(cpu.OPIDIV, reg(cpu.RDI)),
		ins(cpu.OPRET),
	), "main")
	require.True(t, errors.Is(err, cpu.ErrDivideError), "got %v", err)

	_, err = cpu.RunProgram(program(
		ins(cpu.OPMOV, imm(-1<<63), reg(cpu.RAX)),
		ins(cpu.OPMOV, imm(-1), reg(cpu.RCX)),
		ins(cpu.OPCQO),
		ins(cpu.OPIDIV, reg(cpu.RCX)),
	), "main")
	require.True(t, errors.Is(err, cpu.ErrDivideError), "got %v", err)

	// RDX must hold the sign extension of RAX.
	_, err = cpu.RunProgram(program(
		ins(cpu.OPMOV, imm(1), reg(cpu.RAX)),
		ins(cpu.OPMOV, imm(1), reg(cpu.RDX)),
		ins(cpu.OPMOV, imm(1), reg(cpu.RCX)),
		ins(cpu.OPIDIV, reg(cpu.RCX)),
	), "main")
	require.Error(t, err)
}

func TestExecuteErrors(t *testing.T) {
	_, err := cpu.RunProgram(program(ins(cpu.OPMOV, imm(1), reg(cpu.RAX))), "main")
	require.EqualError(t, err, "pc 1 outside program")

	_, err = cpu.RunProgram(program(ins(cpu.OPADD, imm(1))), "main")
	require.EqualError(t, err, "decode failed at line 0: add requires 2 operands, got 1")

	_, err = cpu.RunProgram(program(ins(cpu.OPRET)), "start")
	require.EqualError(t, err, "entry point start not defined")
}

func TestStepLimit(t *testing.T) {
	p := program(ins(cpu.OPMOV, imm(1), reg(cpu.RAX)), ins(cpu.OPMOV, imm(2), reg(cpu.RAX)), ins(cpu.OPRET))
	c := cpu.New()
	require.NoError(t, c.LoadProgram(p, "main"))
	_, err := c.Run(2)
	require.EqualError(t, err, "step limit of 2 reached")
	require.Equal(t, int64(2), c.Reg(cpu.RAX))
}

func TestLookup(t *testing.T) {
	r, ok := cpu.LookupRegister("%RDI")
	require.True(t, ok)
	require.Equal(t, cpu.RDI, r)
	_, ok = cpu.LookupRegister("eax")
	require.False(t, ok)

	op, ok := cpu.LookupOpcode("IMULQ")
	require.True(t, ok)
	require.Equal(t, cpu.OPIMUL, op)
	_, ok = cpu.LookupOpcode("retq")
	require.False(t, ok)
}

func TestDumpRegisters(t *testing.T) {
	c := cpu.New()
	c.SetReg(cpu.RAX, 42)
	c.SetReg(cpu.R15, -1)

	var sb strings.Builder
	c.DumpRegisters(&sb)
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	require.True(t, strings.HasPrefix(lines[0], "%rax 000000000000002A"), lines[0])
	require.True(t, strings.HasSuffix(lines[3], "%r15 FFFFFFFFFFFFFFFF"), lines[3])
	require.Equal(t, "PC   0  steps 0", lines[4])
}
