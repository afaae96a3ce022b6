package interpreter

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"arcscript/interpreter-go/pkg/runtime"
)

// registerBuiltins installs the native functions into the global scope.
// Arity -1 marks a variadic builtin; the call site checks the rest before
// the Impl runs, so implementations can index args without guarding.
func (i *Interpreter) registerBuiltins() {
	builtins := []runtime.NativeFunctionValue{
		{Name: "print", Arity: -1, Impl: i.builtinPrint},
		{Name: "println", Arity: -1, Impl: i.builtinPrintln},
		{Name: "type", Arity: 1, Impl: builtinType},
		{Name: "len", Arity: 1, Impl: builtinLen},
		{Name: "str", Arity: 1, Impl: builtinStr},
		{Name: "int", Arity: 1, Impl: builtinInt},
		{Name: "float", Arity: 1, Impl: builtinFloat},
		{Name: "abs", Arity: 1, Impl: builtinAbs},
		{Name: "min", Arity: 2, Impl: builtinMin},
		{Name: "max", Arity: 2, Impl: builtinMax},
		{Name: "floor", Arity: 1, Impl: builtinFloor},
		{Name: "ceil", Arity: 1, Impl: builtinCeil},
		{Name: "round", Arity: 1, Impl: builtinRound},
		{Name: "sqrt", Arity: 1, Impl: builtinSqrt},
		{Name: "pow", Arity: 2, Impl: builtinPow},
		{Name: "substring", Arity: 3, Impl: builtinSubstring},
		{Name: "contains", Arity: 2, Impl: builtinContains},
		{Name: "toUpper", Arity: 1, Impl: builtinToUpper},
		{Name: "toLower", Arity: 1, Impl: builtinToLower},
	}
	for _, b := range builtins {
		i.global.Define(b.Name, b)
	}
}

func (i *Interpreter) builtinPrint(args []runtime.Value) (runtime.Value, error) {
	return runtime.NilValue{}, i.writeValues(args, "")
}

func (i *Interpreter) builtinPrintln(args []runtime.Value) (runtime.Value, error) {
	return runtime.NilValue{}, i.writeValues(args, "\n")
}

func (i *Interpreter) writeValues(args []runtime.Value, suffix string) error {
	parts := make([]string, len(args))
	for idx, arg := range args {
		parts[idx] = runtime.Stringify(arg)
	}
	if _, err := io.WriteString(i.out, strings.Join(parts, " ")+suffix); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func builtinType(args []runtime.Value) (runtime.Value, error) {
	return runtime.StringValue{Val: args[0].Kind().String()}, nil
}

func builtinLen(args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.StringValue:
		return runtime.IntegerValue{Val: int64(utf8.RuneCountInString(v.Val))}, nil
	case *runtime.TableValue:
		return runtime.IntegerValue{Val: int64(v.Len())}, nil
	}
	return nil, errors.New("len() requires string or table argument")
}

func builtinStr(args []runtime.Value) (runtime.Value, error) {
	return runtime.StringValue{Val: runtime.Stringify(args[0])}, nil
}

func builtinInt(args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.IntegerValue:
		return v, nil
	case runtime.FloatValue:
		return runtime.IntegerValue{Val: int64(v.Val)}, nil
	case runtime.BoolValue:
		if v.Val {
			return runtime.IntegerValue{Val: 1}, nil
		}
		return runtime.IntegerValue{Val: 0}, nil
	case runtime.StringValue:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Val), 10, 64)
		if err != nil {
			return nil, errors.New("cannot convert string to int")
		}
		return runtime.IntegerValue{Val: n}, nil
	}
	return nil, errors.New("cannot convert to int")
}

func builtinFloat(args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.FloatValue:
		return v, nil
	case runtime.IntegerValue:
		return runtime.FloatValue{Val: float64(v.Val)}, nil
	case runtime.StringValue:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Val), 64)
		if err != nil {
			return nil, errors.New("cannot convert string to float")
		}
		return runtime.FloatValue{Val: f}, nil
	}
	return nil, errors.New("cannot convert to float")
}

func builtinAbs(args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.IntegerValue:
		if v.Val < 0 {
			return runtime.IntegerValue{Val: -v.Val}, nil
		}
		return v, nil
	case runtime.FloatValue:
		return runtime.FloatValue{Val: math.Abs(v.Val)}, nil
	}
	return nil, errors.New("abs() requires a numeric argument")
}

// min and max return the winning argument unchanged, so an Integer input
// stays an Integer even when compared against a Float.

func builtinMin(args []runtime.Value) (runtime.Value, error) {
	cmp, ok := compareNumeric(args[0], args[1])
	if !ok {
		return nil, errors.New("min() requires numeric arguments")
	}
	if cmp <= 0 {
		return args[0], nil
	}
	return args[1], nil
}

func builtinMax(args []runtime.Value) (runtime.Value, error) {
	cmp, ok := compareNumeric(args[0], args[1])
	if !ok {
		return nil, errors.New("max() requires numeric arguments")
	}
	if cmp >= 0 {
		return args[0], nil
	}
	return args[1], nil
}

func builtinFloor(args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.IntegerValue:
		return v, nil
	case runtime.FloatValue:
		return runtime.IntegerValue{Val: int64(math.Floor(v.Val))}, nil
	}
	return nil, errors.New("floor() requires a numeric argument")
}

func builtinCeil(args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.IntegerValue:
		return v, nil
	case runtime.FloatValue:
		return runtime.IntegerValue{Val: int64(math.Ceil(v.Val))}, nil
	}
	return nil, errors.New("ceil() requires a numeric argument")
}

// builtinRound rounds half away from zero.
func builtinRound(args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.IntegerValue:
		return v, nil
	case runtime.FloatValue:
		return runtime.IntegerValue{Val: int64(math.Round(v.Val))}, nil
	}
	return nil, errors.New("round() requires a numeric argument")
}

func builtinSqrt(args []runtime.Value) (runtime.Value, error) {
	f, ok := asFloat(args[0])
	if !ok {
		return nil, errors.New("sqrt() requires a numeric argument")
	}
	if f < 0 {
		return nil, errors.New("sqrt() of a negative number")
	}
	return runtime.FloatValue{Val: math.Sqrt(f)}, nil
}

// builtinPow follows the '**' operator's result-kind rules.
func builtinPow(args []runtime.Value) (runtime.Value, error) {
	if !isNumeric(args[0]) || !isNumeric(args[1]) {
		return nil, errors.New("pow() requires numeric arguments")
	}
	return raisePower(args[0], args[1])
}

// builtinSubstring slices by character (rune) positions, half-open.
func builtinSubstring(args []runtime.Value) (runtime.Value, error) {
	s, sOK := args[0].(runtime.StringValue)
	from, fromOK := args[1].(runtime.IntegerValue)
	to, toOK := args[2].(runtime.IntegerValue)
	if !sOK || !fromOK || !toOK {
		return nil, errors.New("substring() requires a string and two integer indices")
	}
	runes := []rune(s.Val)
	if from.Val < 0 || from.Val > to.Val || to.Val > int64(len(runes)) {
		return nil, errors.New("substring() index out of range")
	}
	return runtime.StringValue{Val: string(runes[from.Val:to.Val])}, nil
}

func builtinContains(args []runtime.Value) (runtime.Value, error) {
	s, sok := args[0].(runtime.StringValue)
	sub, subok := args[1].(runtime.StringValue)
	if !sok || !subok {
		return nil, errors.New("contains() requires string arguments")
	}
	return runtime.BoolValue{Val: strings.Contains(s.Val, sub.Val)}, nil
}

func builtinToUpper(args []runtime.Value) (runtime.Value, error) {
	s, ok := args[0].(runtime.StringValue)
	if !ok {
		return nil, errors.New("toUpper() requires a string argument")
	}
	return runtime.StringValue{Val: strings.ToUpper(s.Val)}, nil
}

func builtinToLower(args []runtime.Value) (runtime.Value, error) {
	s, ok := args[0].(runtime.StringValue)
	if !ok {
		return nil, errors.New("toLower() requires a string argument")
	}
	return runtime.StringValue{Val: strings.ToLower(s.Val)}, nil
}
