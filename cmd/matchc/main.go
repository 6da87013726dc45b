// Command matchc compiles a `.match` source file and either prints its
// decision tree or evaluates it against arguments given on the command
// line.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/maranget/matchc/pkg/matchc"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{})

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: matchc [-trace] <file.match> [-eval arg...]")
		os.Exit(2)
	}

	trace := false
	var evalArgs []string
	var path string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-trace":
			trace = true
		case "-eval":
			evalArgs = args[i+1:]
			i = len(args)
		default:
			path = args[i]
		}
	}

	if path == "" {
		fmt.Fprintln(os.Stderr, "matchc: missing <file.match>")
		os.Exit(2)
	}

	if err := run(path, trace, evalArgs); err != nil {
		fmt.Fprintln(os.Stderr, "matchc:", err)
		os.Exit(1)
	}
}

func run(path string, trace bool, evalArgs []string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	matchc.SetTracing(trace)
	prog, err := matchc.CompileMatchNamed(path, string(src))
	if err != nil {
		return errors.Wrap(err, "compiling")
	}

	if evalArgs == nil {
		printProgram(prog)
		return nil
	}

	args := make([]any, len(evalArgs))
	for i, a := range evalArgs {
		args[i] = parseArg(a)
	}
	result, err := prog.Eval(args...)
	if err != nil {
		return errors.Wrap(err, "evaluating")
	}
	fmt.Println(result)
	return nil
}

func parseArg(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if s == "true" || s == "false" {
		return s == "true"
	}
	return s
}

// printProgram pretty-prints the compiled expression tree, wrapping to
// the terminal width when stdout is a real terminal.
func printProgram(prog *matchc.Program) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	text := fmt.Sprintf("%#v", prog.Expr)
	for len(text) > width {
		idx := strings.LastIndex(text[:width], " ")
		if idx <= 0 {
			idx = width
		}
		fmt.Println(text[:idx])
		text = text[idx:]
	}
	fmt.Println(text)
}
