package interpreter

import (
	"arcscript/interpreter-go/pkg/ast"
	"arcscript/interpreter-go/pkg/runtime"
)

// evaluateStatement executes one statement in env. Expression statements
// yield their value; every other statement yields Nil.
func (i *Interpreter) evaluateStatement(stmt ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	if err := i.checkSteps(stmt); err != nil {
		return nil, err
	}

	switch n := stmt.(type) {
	case *ast.VariableDeclaration:
		var value runtime.Value = runtime.NilValue{}
		if n.Initializer != nil {
			v, err := i.evaluateExpression(n.Initializer, env)
			if err != nil {
				return nil, err
			}
			value = v
		}
		env.Define(n.Name.Name, value)
		return runtime.NilValue{}, nil

	case *ast.FunctionDefinition:
		// Defining into env before any call makes the name visible to the
		// body through the shared closure environment, so recursion works.
		env.Define(n.ID.Name, &runtime.FunctionValue{
			Name:    n.ID.Name,
			Params:  paramNames(n.Params),
			Body:    n.Body,
			Closure: env,
		})
		return runtime.NilValue{}, nil

	case *ast.ObjectDefinition:
		return runtime.NilValue{}, i.evaluateObjectDefinition(n, env)

	case *ast.BlockStatement:
		return runtime.NilValue{}, i.evaluateBlock(n, env)

	case *ast.IfStatement:
		return runtime.NilValue{}, i.evaluateIfStatement(n, env)

	case *ast.WhileStatement:
		return runtime.NilValue{}, i.evaluateWhileLoop(n, env)

	case *ast.ForStatement:
		return runtime.NilValue{}, i.evaluateForLoop(n, env)

	case *ast.BreakStatement:
		return nil, breakSignal{line: n.Span().Start.Line}

	case *ast.ContinueStatement:
		return nil, continueSignal{line: n.Span().Start.Line}

	case *ast.ReturnStatement:
		var value runtime.Value = runtime.NilValue{}
		if n.Argument != nil {
			v, err := i.evaluateExpression(n.Argument, env)
			if err != nil {
				return nil, err
			}
			value = v
		}
		return nil, returnSignal{value: value}
	}

	if expr, ok := stmt.(ast.Expression); ok {
		return i.evaluateExpression(expr, env)
	}
	return nil, errorAt(stmt, "unsupported statement type: %s", stmt.NodeType())
}

// evaluateBlock runs a block's statements in a fresh child scope.
func (i *Interpreter) evaluateBlock(block *ast.BlockStatement, env *runtime.Environment) error {
	return i.runStatements(block.Body, runtime.NewEnvironment(env))
}

// runStatements executes statements directly in env, without opening a new
// scope. Function bodies and loop iterations use this so their parameters or
// loop variable share the scope of the body's locals.
func (i *Interpreter) runStatements(stmts []ast.Statement, env *runtime.Environment) error {
	for _, stmt := range stmts {
		if _, err := i.evaluateStatement(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, env *runtime.Environment) error {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return err
	}
	if isTruthy(cond) {
		return i.evaluateBlock(stmt.Body, env)
	}
	for _, clause := range stmt.ElifClauses {
		cond, err := i.evaluateExpression(clause.Condition, env)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return i.evaluateBlock(clause.Body, env)
		}
	}
	if stmt.ElseBody != nil {
		return i.evaluateBlock(stmt.ElseBody, env)
	}
	return nil
}

func (i *Interpreter) evaluateWhileLoop(stmt *ast.WhileStatement, env *runtime.Environment) error {
	for {
		if err := i.checkSteps(stmt); err != nil {
			return err
		}
		cond, err := i.evaluateExpression(stmt.Condition, env)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if err := i.evaluateBlock(stmt.Body, env); err != nil {
			switch err.(type) {
			case breakSignal:
				return nil
			case continueSignal:
				continue
			default:
				return err
			}
		}
	}
}

// evaluateForLoop runs the numeric loop. Start, end and step are evaluated
// once, before the first iteration; the loop variable is defined fresh in
// each iteration's scope, so reassigning it inside the body does not steer
// the loop.
func (i *Interpreter) evaluateForLoop(stmt *ast.ForStatement, env *runtime.Environment) error {
	current, err := i.evaluateExpression(stmt.Start, env)
	if err != nil {
		return err
	}
	endVal, err := i.evaluateExpression(stmt.End, env)
	if err != nil {
		return err
	}
	var step runtime.Value = runtime.IntegerValue{Val: 1}
	if stmt.Step != nil {
		step, err = i.evaluateExpression(stmt.Step, env)
		if err != nil {
			return err
		}
	}
	if !isNumeric(current) || !isNumeric(endVal) || !isNumeric(step) {
		return errorAt(stmt, "for loop bounds must be numeric")
	}
	stepSign, _ := compareNumeric(step, runtime.IntegerValue{Val: 0})
	if stepSign == 0 {
		return errorAt(stmt, "for loop step cannot be zero")
	}

	for {
		if err := i.checkSteps(stmt); err != nil {
			return err
		}
		cmp, _ := compareNumeric(current, endVal)
		if stepSign > 0 && cmp > 0 {
			return nil
		}
		if stepSign < 0 && cmp < 0 {
			return nil
		}
		iterEnv := runtime.NewEnvironment(env)
		iterEnv.Define(stmt.Variable.Name, current)
		if err := i.runStatements(stmt.Body.Body, iterEnv); err != nil {
			switch err.(type) {
			case breakSignal:
				return nil
			case continueSignal:
				// fall through to the step update
			default:
				return err
			}
		}
		next, stepErr := add(current, step)
		if stepErr != nil {
			return errorAt(stmt, "%s", stepErr)
		}
		current = next
	}
}

// evaluateObjectDefinition builds the instance namespace: an environment
// whose parent is the declaring scope. Field initializers are evaluated once,
// in the declaring scope, so a field default cannot see its siblings; method
// and handler bodies close over the namespace itself and therefore can.
func (i *Interpreter) evaluateObjectDefinition(stmt *ast.ObjectDefinition, env *runtime.Environment) error {
	members := runtime.NewEnvironment(env)
	for _, field := range stmt.Fields {
		var value runtime.Value = runtime.NilValue{}
		if field.Initializer != nil {
			v, err := i.evaluateExpression(field.Initializer, env)
			if err != nil {
				return err
			}
			value = v
		}
		members.Define(field.Name.Name, value)
	}
	for _, method := range stmt.Methods {
		members.Define(method.ID.Name, &runtime.FunctionValue{
			Name:    method.ID.Name,
			Params:  paramNames(method.Params),
			Body:    method.Body,
			Closure: members,
		})
	}
	// Event handlers live in the same namespace as methods and are invoked
	// the same way, through member access.
	for _, handler := range stmt.Handlers {
		members.Define(handler.ID.Name, &runtime.FunctionValue{
			Name:    handler.ID.Name,
			Params:  paramNames(handler.Params),
			Body:    handler.Body,
			Closure: members,
		})
	}
	env.Define(stmt.ID.Name, &runtime.ObjectValue{Name: stmt.ID.Name, Members: members})
	return nil
}

func paramNames(params []*ast.FunctionParameter) []string {
	names := make([]string, len(params))
	for idx, param := range params {
		names[idx] = param.Name.Name
	}
	return names
}
