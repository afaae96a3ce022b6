package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"arcscript/interpreter-go/pkg/interpreter"
	"arcscript/interpreter-go/pkg/parser"
	"arcscript/interpreter-go/pkg/runtime"
)

// runREPL evaluates lines against a single interpreter so definitions
// persist for the whole session. 'exit', an empty line, or EOF ends it.
func runREPL(in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "ArcScript REPL v0.1.0")
	fmt.Fprintln(out, "Type 'exit' or press Ctrl+C to quit.")
	fmt.Fprintln(out)

	interp := interpreter.New(out)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "exit" {
			break
		}

		program, parseErrs := parser.Parse(line)
		if len(parseErrs) > 0 {
			for _, parseErr := range parseErrs {
				fmt.Fprintf(out, "Parse error at %d:%d: %s\n",
					parseErr.Location.Line, parseErr.Location.Column, parseErr.Message)
			}
			continue
		}

		value, err := interp.Evaluate(program)
		if err != nil {
			fmt.Fprintf(out, "Runtime error: %s\n", err)
			continue
		}
		if _, isNil := value.(runtime.NilValue); !isNil {
			fmt.Fprintln(out, runtime.Stringify(value))
		}
	}
	fmt.Fprintln(out, "\nGoodbye!")
	return scanner.Err()
}
