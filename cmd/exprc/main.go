package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/grimdork/climate/arg"

	"github.com/Urethramancer/exprc/assembler"
	"github.com/Urethramancer/exprc/compiler"
	"github.com/Urethramancer/exprc/cpu"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix(os.Args[0] + ": ")

	opt := arg.New("exprc")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Write the assembly to this file instead of stdout.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "s", "strict", "Treat unexpected characters as errors.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "t", "tree", "Print the expression tree to stderr.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "r", "run", "Run the generated program and print the result to stderr.", false, false, arg.VarBool, nil)
	opt.SetPositional("EXPR", "Arithmetic expression of integers and + - * /.", "", true, arg.VarString)

	if positionals(os.Args[1:]) != 1 && !wantsHelp(os.Args[1:]) {
		log.Fatalf("invalid number of arguments")
	}

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

	c := compiler.New(compiler.Options{
		Strict:      opt.GetBool("strict"),
		Diagnostics: os.Stderr,
	})
	res, err := c.Compile(opt.GetPosString("EXPR"))
	if err != nil {
		log.Fatalf("%v", err)
	}

	if opt.GetBool("tree") {
		repr.New(os.Stderr, repr.Indent("  ")).Println(res.Tree)
	}

	if opt.GetBool("run") {
		prog, err := assembler.Assemble(res.Asm)
		if err != nil {
			log.Fatalf("%v", err)
		}
		rax, err := cpu.RunProgram(prog, "main")
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Fprintf(os.Stderr, "%%rax = %d\n", rax)
	}

	out := opt.GetString("output")
	if out == "" {
		fmt.Print(res.Asm)
		return
	}
	if err := os.WriteFile(out, []byte(res.Asm), 0644); err != nil {
		log.Fatalf("error writing output file: %v", err)
	}
}

// positionals counts the arguments that are not options or option values.
func positionals(args []string) int {
	n := 0
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-o" || a == "--output":
			i++
		case strings.HasPrefix(a, "-") && len(a) > 1:
		default:
			n++
		}
	}
	return n
}

func wantsHelp(args []string) bool {
	for _, a := range args {
		if a == "-h" || a == "--help" {
			return true
		}
	}
	return false
}
