package interpreter

import (
	"errors"
	"math"

	"arcscript/interpreter-go/pkg/runtime"
)

// isTruthy: false and nil are falsy, every other value is truthy.
func isTruthy(v runtime.Value) bool {
	switch val := v.(type) {
	case runtime.BoolValue:
		return val.Val
	case runtime.NilValue:
		return false
	default:
		return true
	}
}

func isNumeric(v runtime.Value) bool {
	switch v.(type) {
	case runtime.IntegerValue, runtime.FloatValue:
		return true
	}
	return false
}

func asFloat(v runtime.Value) (float64, bool) {
	switch val := v.(type) {
	case runtime.IntegerValue:
		return float64(val.Val), true
	case runtime.FloatValue:
		return val.Val, true
	}
	return 0, false
}

// Arithmetic keeps Integer results for Integer operands and promotes to
// Float as soon as either side is a Float. The error messages here are the
// bare taxonomy text; the evaluator attaches the source line.

func add(left, right runtime.Value) (runtime.Value, error) {
	if l, ok := left.(runtime.StringValue); ok {
		if r, ok := right.(runtime.StringValue); ok {
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		}
	}
	if l, ok := left.(runtime.IntegerValue); ok {
		if r, ok := right.(runtime.IntegerValue); ok {
			return runtime.IntegerValue{Val: l.Val + r.Val}, nil
		}
	}
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, errors.New("type error: cannot add the given operands")
	}
	return runtime.FloatValue{Val: lf + rf}, nil
}

func subtract(left, right runtime.Value) (runtime.Value, error) {
	if l, ok := left.(runtime.IntegerValue); ok {
		if r, ok := right.(runtime.IntegerValue); ok {
			return runtime.IntegerValue{Val: l.Val - r.Val}, nil
		}
	}
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, errors.New("type error: cannot subtract the given operands")
	}
	return runtime.FloatValue{Val: lf - rf}, nil
}

func multiply(left, right runtime.Value) (runtime.Value, error) {
	if l, ok := left.(runtime.IntegerValue); ok {
		if r, ok := right.(runtime.IntegerValue); ok {
			return runtime.IntegerValue{Val: l.Val * r.Val}, nil
		}
	}
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, errors.New("type error: cannot multiply the given operands")
	}
	return runtime.FloatValue{Val: lf * rf}, nil
}

// divide truncates for Integer operands and errors on any zero divisor,
// Float included.
func divide(left, right runtime.Value) (runtime.Value, error) {
	if l, ok := left.(runtime.IntegerValue); ok {
		if r, ok := right.(runtime.IntegerValue); ok {
			if r.Val == 0 {
				return nil, errors.New("division by zero")
			}
			return runtime.IntegerValue{Val: l.Val / r.Val}, nil
		}
	}
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, errors.New("type error: cannot divide the given operands")
	}
	if rf == 0 {
		return nil, errors.New("division by zero")
	}
	return runtime.FloatValue{Val: lf / rf}, nil
}

func modulo(left, right runtime.Value) (runtime.Value, error) {
	if l, ok := left.(runtime.IntegerValue); ok {
		if r, ok := right.(runtime.IntegerValue); ok {
			if r.Val == 0 {
				return nil, errors.New("modulo by zero")
			}
			return runtime.IntegerValue{Val: l.Val % r.Val}, nil
		}
	}
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, errors.New("type error: cannot apply '%' to the given operands")
	}
	if rf == 0 {
		return nil, errors.New("modulo by zero")
	}
	return runtime.FloatValue{Val: math.Mod(lf, rf)}, nil
}

// raisePower yields an Integer only for Integer base and non-negative
// Integer exponent; every other numeric pairing goes through math.Pow.
func raisePower(left, right runtime.Value) (runtime.Value, error) {
	if l, ok := left.(runtime.IntegerValue); ok {
		if r, ok := right.(runtime.IntegerValue); ok && r.Val >= 0 {
			return runtime.IntegerValue{Val: intPow(l.Val, r.Val)}, nil
		}
	}
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, errors.New("type error: cannot apply '**' to the given operands")
	}
	return runtime.FloatValue{Val: math.Pow(lf, rf)}, nil
}

// intPow is exponentiation by squaring.
func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// compareNumeric orders two numeric values, comparing exactly when both are
// Integers and through float64 otherwise. ok is false when either operand is
// not numeric.
func compareNumeric(left, right runtime.Value) (cmp int, ok bool) {
	if l, lok := left.(runtime.IntegerValue); lok {
		if r, rok := right.(runtime.IntegerValue); rok {
			switch {
			case l.Val < r.Val:
				return -1, true
			case l.Val > r.Val:
				return 1, true
			}
			return 0, true
		}
	}
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return 0, false
	}
	switch {
	case lf < rf:
		return -1, true
	case lf > rf:
		return 1, true
	}
	return 0, true
}

// equalValues compares scalars by value, with Integer/Float pairs compared
// numerically, and tables, functions and objects by reference identity.
// Values of different non-numeric kinds are never equal.
func equalValues(left, right runtime.Value) bool {
	if isNumeric(left) || isNumeric(right) {
		if l, ok := left.(runtime.IntegerValue); ok {
			if r, ok := right.(runtime.IntegerValue); ok {
				return l.Val == r.Val
			}
		}
		lf, lok := asFloat(left)
		rf, rok := asFloat(right)
		return lok && rok && lf == rf
	}
	switch l := left.(type) {
	case runtime.BoolValue:
		r, ok := right.(runtime.BoolValue)
		return ok && l.Val == r.Val
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		return ok && l.Val == r.Val
	case runtime.NilValue:
		_, ok := right.(runtime.NilValue)
		return ok
	case *runtime.TableValue:
		r, ok := right.(*runtime.TableValue)
		return ok && l == r
	case *runtime.FunctionValue:
		r, ok := right.(*runtime.FunctionValue)
		return ok && l == r
	case *runtime.ObjectValue:
		r, ok := right.(*runtime.ObjectValue)
		return ok && l == r
	case runtime.NativeFunctionValue:
		r, ok := right.(runtime.NativeFunctionValue)
		return ok && l.Name == r.Name
	}
	return false
}
