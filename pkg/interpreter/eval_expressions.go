package interpreter

import (
	"fmt"

	"arcscript/interpreter-go/pkg/ast"
	"arcscript/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil
	case *ast.Identifier:
		value, err := env.Get(n.Name)
		if err != nil {
			return nil, errorAt(n, "%s", err)
		}
		return value, nil
	case *ast.UnaryExpression:
		return i.evaluateUnary(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinary(n, env)
	case *ast.AssignmentExpression:
		return i.evaluateAssignment(n, env)
	case *ast.FunctionCall:
		return i.evaluateCall(n, env)
	case *ast.MemberAccessExpression:
		return i.evaluateMemberAccess(n, env)
	case *ast.IndexExpression:
		return i.evaluateIndex(n, env)
	case *ast.TableLiteral:
		return i.evaluateTableLiteral(n, env)
	case *ast.LambdaExpression:
		return i.evaluateLambda(n, env), nil
	}
	return nil, errorAt(expr, "unsupported expression type: %s", expr.NodeType())
}

func (i *Interpreter) evaluateUnary(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case ast.UnaryOperatorNegate:
		switch v := operand.(type) {
		case runtime.IntegerValue:
			return runtime.IntegerValue{Val: -v.Val}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Val: -v.Val}, nil
		}
		return nil, errorAt(expr, "type error: unary - on non-number")
	case ast.UnaryOperatorNot:
		return runtime.BoolValue{Val: !isTruthy(operand)}, nil
	}
	return nil, errorAt(expr, "unsupported unary operator '%s'", expr.Operator)
}

func (i *Interpreter) evaluateBinary(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	// and/or short-circuit: the right side only runs when the left side has
	// not decided the outcome. Both produce a Boolean.
	switch expr.Operator {
	case "and":
		left, err := i.evaluateExpression(expr.Left, env)
		if err != nil {
			return nil, err
		}
		if !isTruthy(left) {
			return runtime.BoolValue{Val: false}, nil
		}
		right, err := i.evaluateExpression(expr.Right, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: isTruthy(right)}, nil
	case "or":
		left, err := i.evaluateExpression(expr.Left, env)
		if err != nil {
			return nil, err
		}
		if isTruthy(left) {
			return runtime.BoolValue{Val: true}, nil
		}
		right, err := i.evaluateExpression(expr.Right, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: isTruthy(right)}, nil
	}

	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case "==":
		return runtime.BoolValue{Val: equalValues(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !equalValues(left, right)}, nil
	case "<", "<=", ">", ">=":
		cmp, ok := compareNumeric(left, right)
		if !ok {
			return nil, errorAt(expr, "type error: cannot compare given operands")
		}
		switch expr.Operator {
		case "<":
			return runtime.BoolValue{Val: cmp < 0}, nil
		case "<=":
			return runtime.BoolValue{Val: cmp <= 0}, nil
		case ">":
			return runtime.BoolValue{Val: cmp > 0}, nil
		default:
			return runtime.BoolValue{Val: cmp >= 0}, nil
		}
	}

	var result runtime.Value
	var opErr error
	switch expr.Operator {
	case "+":
		result, opErr = add(left, right)
	case "-":
		result, opErr = subtract(left, right)
	case "*":
		result, opErr = multiply(left, right)
	case "/":
		result, opErr = divide(left, right)
	case "%":
		result, opErr = modulo(left, right)
	case "**":
		result, opErr = raisePower(left, right)
	default:
		return nil, errorAt(expr, "unsupported operator '%s'", expr.Operator)
	}
	if opErr != nil {
		return nil, errorAt(expr, "%s", opErr)
	}
	return result, nil
}

// evaluateAssignment stores into an identifier, table member, table index or
// object field, and yields the assigned value so assignments chain.
func (i *Interpreter) evaluateAssignment(expr *ast.AssignmentExpression, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch target := expr.Left.(type) {
	case *ast.Identifier:
		if err := env.Assign(target.Name, value); err != nil {
			return nil, errorAt(target, "%s", err)
		}

	case *ast.MemberAccessExpression:
		object, err := i.evaluateExpression(target.Object, env)
		if err != nil {
			return nil, err
		}
		switch container := object.(type) {
		case *runtime.TableValue:
			container.Set(runtime.StringValue{Val: target.Member.Name}, value)
		case *runtime.ObjectValue:
			// Objects are fixed-shape: writes only update existing members.
			// Define rather than Assign, so a miss can never fall through to
			// an enclosing-scope variable of the same name.
			if !container.Members.HasInCurrentScope(target.Member.Name) {
				return nil, errorAt(target, "object '%s' has no field '%s'", container.Name, target.Member.Name)
			}
			container.Members.Define(target.Member.Name, value)
		default:
			return nil, errorAt(target, "cannot access member '%s' on %s", target.Member.Name, object.Kind())
		}

	case *ast.IndexExpression:
		object, err := i.evaluateExpression(target.Object, env)
		if err != nil {
			return nil, err
		}
		table, ok := object.(*runtime.TableValue)
		if !ok {
			return nil, errorAt(target, "cannot index %s", object.Kind())
		}
		key, err := i.evaluateExpression(target.Index, env)
		if err != nil {
			return nil, err
		}
		if !table.Set(key, value) {
			return nil, errorAt(target, "table key must be a string or integer")
		}

	default:
		return nil, errorAt(expr, "invalid assignment target")
	}
	return value, nil
}

func (i *Interpreter) evaluateCall(expr *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(expr.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, len(expr.Arguments))
	for idx, argExpr := range expr.Arguments {
		arg, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args[idx] = arg
	}

	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return i.callFunction(expr, fn, args)
	case runtime.NativeFunctionValue:
		if fn.Arity >= 0 && len(args) != fn.Arity {
			return nil, errorAt(expr, "%s", arityMessage(fn.Name, fn.Arity))
		}
		result, err := fn.Impl(args)
		if err != nil {
			return nil, errorAt(expr, "%s", err)
		}
		return result, nil
	}
	return nil, errorAt(expr, "attempt to call non-function")
}

// callFunction binds arguments into a scope whose parent is the function's
// captured environment, then runs the body. A return unwinds here; break or
// continue crossing the call boundary is an error.
func (i *Interpreter) callFunction(site ast.Node, fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	if len(args) != len(fn.Params) {
		name := fn.Name
		if name == "" {
			name = "<anonymous>"
		}
		return nil, errorAt(site, "Function '%s' expects %d arguments, got %d", name, len(fn.Params), len(args))
	}
	localEnv := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Params {
		localEnv.Define(param, args[idx])
	}
	if err := i.runStatements(fn.Body.Body, localEnv); err != nil {
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
	return runtime.NilValue{}, nil
}

func arityMessage(name string, want int) string {
	if want == 1 {
		return fmt.Sprintf("%s() requires 1 argument", name)
	}
	return fmt.Sprintf("%s() requires %d arguments", name, want)
}

func (i *Interpreter) evaluateMemberAccess(expr *ast.MemberAccessExpression, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	name := expr.Member.Name
	switch container := object.(type) {
	case *runtime.TableValue:
		value, ok := container.Get(runtime.StringValue{Val: name})
		if !ok {
			return runtime.NilValue{}, nil
		}
		return value, nil
	case *runtime.ObjectValue:
		if !container.Members.HasInCurrentScope(name) {
			return nil, errorAt(expr, "object '%s' has no member '%s'", container.Name, name)
		}
		value, _ := container.Members.Get(name)
		return value, nil
	}
	return nil, errorAt(expr, "cannot access member '%s' on %s", name, object.Kind())
}

func (i *Interpreter) evaluateIndex(expr *ast.IndexExpression, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	table, ok := object.(*runtime.TableValue)
	if !ok {
		return nil, errorAt(expr, "cannot index %s", object.Kind())
	}
	key, err := i.evaluateExpression(expr.Index, env)
	if err != nil {
		return nil, err
	}
	if !runtime.ValidTableKey(key) {
		return nil, errorAt(expr, "table key must be a string or integer")
	}
	value, found := table.Get(key)
	if !found {
		return runtime.NilValue{}, nil
	}
	return value, nil
}

func (i *Interpreter) evaluateTableLiteral(expr *ast.TableLiteral, env *runtime.Environment) (runtime.Value, error) {
	table := runtime.NewTable()
	for idx, entry := range expr.Entries {
		var key runtime.Value
		if entry.Key == nil {
			key = runtime.IntegerValue{Val: int64(idx)}
		} else {
			k, err := i.evaluateExpression(entry.Key, env)
			if err != nil {
				return nil, err
			}
			key = k
		}
		value, err := i.evaluateExpression(entry.Value, env)
		if err != nil {
			return nil, err
		}
		if !table.Set(key, value) {
			return nil, errorAt(entry, "table key must be a string or integer")
		}
	}
	return table, nil
}

// evaluateLambda builds a function value from a literal. A named literal gets
// its own closure scope holding just the name, so it can recurse without
// leaking the binding into the enclosing scope.
func (i *Interpreter) evaluateLambda(expr *ast.LambdaExpression, env *runtime.Environment) runtime.Value {
	fn := &runtime.FunctionValue{
		Params:  paramNames(expr.Params),
		Body:    expr.Body,
		Closure: env,
	}
	if expr.Name != nil {
		fnEnv := runtime.NewEnvironment(env)
		fn.Name = expr.Name.Name
		fn.Closure = fnEnv
		fnEnv.Define(fn.Name, fn)
	}
	return fn
}
