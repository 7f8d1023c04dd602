package compiler_test

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/exprc/assembler"
	"github.com/Urethramancer/exprc/compiler"
	"github.com/Urethramancer/exprc/cpu"
	"github.com/Urethramancer/exprc/lexer"
	"github.com/Urethramancer/exprc/parser"
)

func TestCompileOutput(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"test_10", "10", `  .globl main
main:
  mov $10, %rax
  ret
`},
		{"test_add_and_sub", "5+20+4-20-50+30+40", `  .globl main
main:
  mov $29, %rax
  ret
`},
		{"test_mul_div", "6*7/2", `  .globl main
main:
  mov $21, %rax
  ret
`},
	}
	for _, tc := range tests {
		out, err := compiler.Compile(tc.src)
		require.NoError(t, err, "[%s]", tc.name)
		require.Equal(t, tc.want, out, "[%s]", tc.name)
	}
}

func TestCompileUnexpectedCharacter(t *testing.T) {
	var diag bytes.Buffer
	res, err := compiler.New(compiler.Options{Diagnostics: &diag}).Compile("2@+3")
	require.NoError(t, err)
	require.Equal(t, int64(5), res.Value)
	require.Contains(t, res.Asm, "  mov $5, %rax\n")
	require.Equal(t, "unexpected character: '@'\n", diag.String())
	require.Equal(t, []lexer.Diagnostic{{Pos: 1, Char: '@'}}, res.Diagnostics)
}

func TestCompileStrict(t *testing.T) {
	var diag bytes.Buffer
	c := compiler.New(compiler.Options{Strict: true, Diagnostics: &diag})
	res, err := c.Compile("1 + 2 ; 3")
	require.Nil(t, res)
	require.True(t, errors.Is(err, compiler.ErrUnexpectedCharacter), "got %v", err)
	require.EqualError(t, err, "';' at offset 6: unexpected character")
	require.Equal(t, "unexpected character: ';'\n", diag.String())
	require.Len(t, c.Diagnostics(), 1)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"Overflow", "4294967296", lexer.ErrLiteralOverflow},
		{"DivZero", "1+2/0", parser.ErrDivisionByZero},
		{"LeadingOperator", "-7/2", parser.ErrMissingLeftOperand},
		{"Trailing", "7*", parser.ErrMissingRightOperand},
		{"Dangling", "1 2", parser.ErrDanglingLiteral},
		{"Empty", "", parser.ErrEmptyExpression},
		{"Garbage", "abc", parser.ErrEmptyExpression},
	}
	for _, tc := range tests {
		out, err := compiler.Compile(tc.src)
		require.Empty(t, out, "[%s]", tc.name)
		require.True(t, errors.Is(err, tc.want), "[%s] expected %v, got %v", tc.name, tc.want, err)
	}
}

// The emitted program, executed, leaves the directly evaluated value in %rax.
func TestCompileAndRun(t *testing.T) {
	for _, src := range []string{"0", "42", "20 + 3", "20 - 3", "2+3-4", "2+3*4", "7/2", "1-8/3", "2147483647*2147483647"} {
		res, err := compiler.New(compiler.Options{}).Compile(src)
		require.NoError(t, err, src)

		want, err := parser.Eval(res.Tree)
		require.NoError(t, err, src)
		require.Equal(t, want, res.Value, src)

		prog, err := assembler.Assemble(res.Asm)
		require.NoError(t, err, src)
		got, err := cpu.RunProgram(prog, "main")
		require.NoError(t, err, src)
		require.Equal(t, want, got, src)
	}
}
