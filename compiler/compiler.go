package compiler

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/Urethramancer/exprc/codegen"
	"github.com/Urethramancer/exprc/lexer"
	"github.com/Urethramancer/exprc/parser"
)

// ErrUnexpectedCharacter is returned in strict mode when the scanner reports anything.
var ErrUnexpectedCharacter = errors.New("unexpected character")

// Options control how the compiler treats recoverable problems.
type Options struct {
	// Strict makes scanner diagnostics fatal.
	Strict bool
	// Diagnostics receives one line per scanner diagnostic. Nil discards them.
	Diagnostics io.Writer
}

// Compiler holds the state for one compilation.
type Compiler struct {
	opt   Options
	diags []lexer.Diagnostic
}

// Result is everything a compilation produced.
type Result struct {
	Asm         string
	Tree        parser.Node
	Value       int64
	Diagnostics []lexer.Diagnostic
}

// New creates a new Compiler instance.
func New(opt Options) *Compiler {
	return &Compiler{opt: opt}
}

// Compile takes an arithmetic expression and returns the assembly text for main.
// Nothing is returned unless the whole program could be generated.
func (c *Compiler) Compile(src string) (*Result, error) {
	tokens, diags, err := lexer.Scan(src)
	c.diags = diags
	if werr := c.writeDiagnostics(); werr != nil {
		return nil, werr
	}
	if err != nil {
		return nil, errors.WithMessage(err, "scanning error")
	}
	if c.opt.Strict && len(diags) > 0 {
		d := diags[0]
		return nil, errors.Wrapf(ErrUnexpectedCharacter, "'%c' at offset %d", d.Char, d.Pos)
	}

	tree, err := parser.Parse(tokens)
	if err != nil {
		return nil, errors.WithMessage(err, "parsing error")
	}

	instrs := codegen.Generate([]parser.Node{tree})
	var buf bytes.Buffer
	if err := codegen.Emit(&buf, instrs); err != nil {
		return nil, errors.WithMessage(err, "code generation error")
	}

	value, err := codegen.Fold(instrs[len(instrs)-1])
	if err != nil {
		return nil, err
	}

	return &Result{
		Asm:         buf.String(),
		Tree:        tree,
		Value:       value,
		Diagnostics: diags,
	}, nil
}

// Diagnostics returns what the scanner reported during the last compilation,
// including one that failed.
func (c *Compiler) Diagnostics() []lexer.Diagnostic {
	return c.diags
}

// writeDiagnostics prints each diagnostic on its own line.
func (c *Compiler) writeDiagnostics() error {
	if c.opt.Diagnostics == nil {
		return nil
	}
	for _, d := range c.diags {
		if _, err := io.WriteString(c.opt.Diagnostics, d.String()+"\n"); err != nil {
			return errors.Wrap(err, "writing diagnostics")
		}
	}
	return nil
}

// Compile is a shortcut for a non-strict compilation that discards diagnostics.
func Compile(src string) (string, error) {
	res, err := New(Options{}).Compile(src)
	if err != nil {
		return "", err
	}
	return res.Asm, nil
}
