package main

import (
	"fmt"
	"log"
	"os"

	"github.com/grimdork/climate/arg"

	"github.com/Urethramancer/exprc/assembler"
	"github.com/Urethramancer/exprc/compiler"
	"github.com/Urethramancer/exprc/cpu"
)

// This program loads an x86-64 assembly file, or compiles an expression,
// runs it and prints the value left in %rax.
func main() {
	log.SetFlags(0)
	log.SetPrefix(os.Args[0] + ": ")

	opt := arg.New("run64")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "e", "expr", "Compile and run this expression instead of a file.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "m", "entry", "Label to start execution at.", "main", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "l", "limit", "Maximum number of instructions to execute.", cpu.DefaultStepLimit, false, arg.VarInt, nil)
	opt.SetOption(arg.GroupDefault, "v", "verbose", "Dump the registers after execution.", false, false, arg.VarBool, nil)
	opt.SetPositional("FILE", "Assembly source to run.", "", false, arg.VarString)

	err := opt.Parse(os.Args[1:])
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			os.Exit(1)
		}
		log.Fatalf("%v", err)
	}
	if opt.GetBool("help") {
		opt.PrintHelp()
		return
	}

	var src string
	if expr := opt.GetString("expr"); expr != "" {
		src, err = compiler.Compile(expr)
		if err != nil {
			log.Fatalf("%v", err)
		}
	} else {
		name := opt.GetPosString("FILE")
		if name == "" {
			log.Fatalf("invalid number of arguments")
		}
		data, err := os.ReadFile(name)
		if err != nil {
			log.Fatalf("error reading input file: %v", err)
		}
		src = string(data)
	}

	prog, err := assembler.Assemble(src)
	if err != nil {
		log.Fatalf("%v", err)
	}

	c := cpu.New()
	if err := c.LoadProgram(prog, opt.GetString("entry")); err != nil {
		log.Fatalf("%v", err)
	}
	rax, err := c.Run(opt.GetInt("limit"))
	if opt.GetBool("verbose") {
		c.DumpRegisters(os.Stderr)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(rax)
}
