// Package interpreter evaluates ArcScript programs by walking the AST
// against chained runtime environments. An Interpreter owns one global
// environment that persists across Evaluate calls, so a REPL can feed it
// programs one statement at a time and definitions accumulate.
package interpreter

import (
	"fmt"
	"io"

	"arcscript/interpreter-go/pkg/ast"
	"arcscript/interpreter-go/pkg/runtime"
)

// RuntimeError is an evaluation failure annotated with the 1-based source
// line it surfaced on.
type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

func errorAt(node ast.Node, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Message: fmt.Sprintf(format, args...),
		Line:    node.Span().Start.Line,
	}
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithMaxSteps caps how many statements and loop iterations one Evaluate
// call may execute before aborting with a RuntimeError. Zero means no cap.
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// Interpreter holds the global environment and the sink print/println write
// to. Nothing else in the evaluator performs I/O. Not safe for concurrent
// use.
type Interpreter struct {
	out      io.Writer
	global   *runtime.Environment
	maxSteps int
	steps    int
}

// New returns an interpreter whose global environment is populated with the
// built-in functions.
func New(out io.Writer, opts ...Option) *Interpreter {
	i := &Interpreter{out: out, global: runtime.NewEnvironment(nil)}
	for _, opt := range opts {
		opt(i)
	}
	i.registerBuiltins()
	return i
}

// Evaluate runs the program's statements in order against the global
// environment. The result is the value of the final top-level expression
// statement, Nil when the program ends with a declaration or control
// statement, or the returned value when a top-level return ends the script
// early. break and continue reaching the top level are runtime errors.
func (i *Interpreter) Evaluate(program *ast.Program) (runtime.Value, error) {
	i.steps = 0
	var last runtime.Value = runtime.NilValue{}
	for _, stmt := range program.Body {
		val, err := i.evaluateStatement(stmt, i.global)
		if err != nil {
			switch sig := err.(type) {
			case returnSignal:
				return sig.value, nil
			case breakSignal:
				return nil, &RuntimeError{Message: "'break' outside a loop", Line: sig.line}
			case continueSignal:
				return nil, &RuntimeError{Message: "'continue' outside a loop", Line: sig.line}
			}
			return nil, err
		}
		last = val
	}
	return last, nil
}

// checkSteps charges one execution step and fails once the configured cap is
// exceeded. Loops charge a step per iteration on top of the per-statement
// charge, so a loop with an empty body still hits the cap.
func (i *Interpreter) checkSteps(node ast.Node) *RuntimeError {
	i.steps++
	if i.maxSteps > 0 && i.steps > i.maxSteps {
		return errorAt(node, "execution exceeded %d steps", i.maxSteps)
	}
	return nil
}
