package interpreter

import "arcscript/interpreter-go/pkg/runtime"

// Control flow travels through the ordinary error path as unexported signal
// values. Loops catch break and continue, calls catch return; a signal that
// escapes to the top level becomes a RuntimeError at the line it carries.

type breakSignal struct {
	line int
}

func (breakSignal) Error() string { return "break" }

type continueSignal struct {
	line int
}

func (continueSignal) Error() string { return "continue" }

type returnSignal struct {
	value runtime.Value
}

func (returnSignal) Error() string { return "return" }
