package parser

import (
	"strings"
	"testing"

	"arcscript/interpreter-go/pkg/ast"
	"arcscript/interpreter-go/pkg/lexer"
)

func mustParse(t testing.TB, source string) *ast.Program {
	t.Helper()
	program, errs := Parse(source)
	if len(errs) > 0 {
		t.Fatalf("Parse(%q) returned errors: %v", source, errs)
	}
	return program
}

func parseErrors(t testing.TB, source string) []*ParseError {
	t.Helper()
	program, errs := Parse(source)
	if len(errs) == 0 {
		t.Fatalf("Parse(%q) succeeded, want errors", source)
	}
	if program != nil {
		t.Fatalf("Parse(%q) returned a program alongside errors", source)
	}
	return errs
}

func checkSpan(t testing.TB, label string, span ast.Span, startLine, startCol, endLine, endCol int) {
	t.Helper()
	if span.Start.Line != startLine || span.Start.Column != startCol {
		t.Fatalf("%s start span mismatch: got (%d,%d), want (%d,%d)", label, span.Start.Line, span.Start.Column, startLine, startCol)
	}
	if span.End.Line != endLine || span.End.Column != endCol {
		t.Fatalf("%s end span mismatch: got (%d,%d), want (%d,%d)", label, span.End.Line, span.End.Column, endLine, endCol)
	}
}

func singleStatement(t testing.TB, source string) ast.Statement {
	t.Helper()
	program := mustParse(t, source)
	if len(program.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Body))
	}
	return program.Body[0]
}

func TestParseVariableDeclaration(t *testing.T) {
	stmt := singleStatement(t, `var hp = 100;`)
	decl, ok := stmt.(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("statement is %T, want *ast.VariableDeclaration", stmt)
	}
	if decl.Name.Name != "hp" {
		t.Fatalf("name = %q, want hp", decl.Name.Name)
	}
	lit, ok := decl.Initializer.(*ast.IntegerLiteral)
	if !ok || lit.Value != 100 {
		t.Fatalf("initializer = %#v, want IntegerLiteral 100", decl.Initializer)
	}
	checkSpan(t, "decl", decl.Span(), 1, 1, 1, 14)
}

func TestParseVariableDeclarationWithAnnotation(t *testing.T) {
	stmt := singleStatement(t, `var hp: Int = 100;`)
	decl, ok := stmt.(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("statement is %T, want *ast.VariableDeclaration", stmt)
	}
	if decl.Name.Name != "hp" {
		t.Fatalf("name = %q, want hp", decl.Name.Name)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	stmt := singleStatement(t, `1 + 2 * 3`)
	bin, ok := stmt.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+" {
		t.Fatalf("top node = %#v, want binary +", stmt)
	}
	right, ok := bin.Right.(*ast.BinaryExpression)
	if !ok || right.Operator != "*" {
		t.Fatalf("right = %#v, want binary *", bin.Right)
	}
}

func TestParsePowerRightAssociative(t *testing.T) {
	stmt := singleStatement(t, `2 ** 3 ** 2`)
	bin, ok := stmt.(*ast.BinaryExpression)
	if !ok || bin.Operator != "**" {
		t.Fatalf("top node = %#v, want binary **", stmt)
	}
	if _, ok := bin.Left.(*ast.IntegerLiteral); !ok {
		t.Fatalf("left = %#v, want integer literal", bin.Left)
	}
	right, ok := bin.Right.(*ast.BinaryExpression)
	if !ok || right.Operator != "**" {
		t.Fatalf("right = %#v, want nested **", bin.Right)
	}
}

func TestParseNegatedPower(t *testing.T) {
	// -x ** 2 parses as -(x ** 2).
	stmt := singleStatement(t, `-x ** 2`)
	unary, ok := stmt.(*ast.UnaryExpression)
	if !ok || unary.Operator != ast.UnaryOperatorNegate {
		t.Fatalf("top node = %#v, want unary negate", stmt)
	}
	if bin, ok := unary.Operand.(*ast.BinaryExpression); !ok || bin.Operator != "**" {
		t.Fatalf("operand = %#v, want binary **", unary.Operand)
	}
}

func TestParseLogicalPrecedence(t *testing.T) {
	stmt := singleStatement(t, `a == 1 and b or not c`)
	or, ok := stmt.(*ast.BinaryExpression)
	if !ok || or.Operator != "or" {
		t.Fatalf("top node = %#v, want binary or", stmt)
	}
	and, ok := or.Left.(*ast.BinaryExpression)
	if !ok || and.Operator != "and" {
		t.Fatalf("left = %#v, want binary and", or.Left)
	}
	if eq, ok := and.Left.(*ast.BinaryExpression); !ok || eq.Operator != "==" {
		t.Fatalf("and left = %#v, want binary ==", and.Left)
	}
	if not, ok := or.Right.(*ast.UnaryExpression); !ok || not.Operator != ast.UnaryOperatorNot {
		t.Fatalf("right = %#v, want unary not", or.Right)
	}
}

func TestParseAssignmentForms(t *testing.T) {
	stmt := singleStatement(t, `x = 1`)
	assign, ok := stmt.(*ast.AssignmentExpression)
	if !ok {
		t.Fatalf("statement = %#v, want assignment", stmt)
	}
	if _, ok := assign.Left.(*ast.Identifier); !ok {
		t.Fatalf("target = %#v, want identifier", assign.Left)
	}

	stmt = singleStatement(t, `t[0] = 5`)
	assign, ok = stmt.(*ast.AssignmentExpression)
	if !ok {
		t.Fatalf("statement = %#v, want assignment", stmt)
	}
	if _, ok := assign.Left.(*ast.IndexExpression); !ok {
		t.Fatalf("target = %#v, want index expression", assign.Left)
	}
}

func TestParseCompoundAssignmentDesugars(t *testing.T) {
	stmt := singleStatement(t, `t.field += 2`)
	assign, ok := stmt.(*ast.AssignmentExpression)
	if !ok {
		t.Fatalf("statement = %#v, want assignment", stmt)
	}
	member, ok := assign.Left.(*ast.MemberAccessExpression)
	if !ok {
		t.Fatalf("target = %#v, want member access", assign.Left)
	}
	bin, ok := assign.Right.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+" {
		t.Fatalf("right = %#v, want binary + rewrite", assign.Right)
	}
	if bin.Left != ast.Expression(member) {
		t.Fatalf("rewrite does not reuse the target node")
	}
	if lit, ok := bin.Right.(*ast.IntegerLiteral); !ok || lit.Value != 2 {
		t.Fatalf("rewrite operand = %#v, want integer 2", bin.Right)
	}
}

func TestParseChainedAssignmentIsRightAssociative(t *testing.T) {
	stmt := singleStatement(t, `x = y = 3`)
	outer, ok := stmt.(*ast.AssignmentExpression)
	if !ok {
		t.Fatalf("statement = %#v, want assignment", stmt)
	}
	if _, ok := outer.Right.(*ast.AssignmentExpression); !ok {
		t.Fatalf("right = %#v, want nested assignment", outer.Right)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	errs := parseErrors(t, `a + b = 1`)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Message != "invalid assignment target" {
		t.Fatalf("message = %q", errs[0].Message)
	}
}

func TestParseIfElifElse(t *testing.T) {
	source := `
if x > 0 then {
	y = 1;
} elif x < 0 then {
	y = 2;
} else {
	y = 3;
} end
`
	stmt := singleStatement(t, source)
	ifStmt, ok := stmt.(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement = %#v, want if", stmt)
	}
	if len(ifStmt.ElifClauses) != 1 {
		t.Fatalf("got %d elif clauses, want 1", len(ifStmt.ElifClauses))
	}
	if ifStmt.ElseBody == nil {
		t.Fatalf("missing else body")
	}
}

func TestParseWhile(t *testing.T) {
	stmt := singleStatement(t, `while i < 10 do { i += 1; } end`)
	loop, ok := stmt.(*ast.WhileStatement)
	if !ok {
		t.Fatalf("statement = %#v, want while", stmt)
	}
	if len(loop.Body.Body) != 1 {
		t.Fatalf("got %d body statements, want 1", len(loop.Body.Body))
	}
}

func TestParseForWithAndWithoutStep(t *testing.T) {
	stmt := singleStatement(t, `for i = 1, 10 do { } end`)
	loop, ok := stmt.(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement = %#v, want for", stmt)
	}
	if loop.Variable.Name != "i" || loop.Step != nil {
		t.Fatalf("loop = %#v, want variable i and nil step", loop)
	}

	stmt = singleStatement(t, `for i = 5, 1, -1 do { } end`)
	loop, ok = stmt.(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement = %#v, want for", stmt)
	}
	if loop.Step == nil {
		t.Fatalf("missing step expression")
	}
	if _, ok := loop.Step.(*ast.UnaryExpression); !ok {
		t.Fatalf("step = %#v, want unary negate", loop.Step)
	}
}

func TestParseBreakContinue(t *testing.T) {
	program := mustParse(t, `while true do { break; continue; } end`)
	loop := program.Body[0].(*ast.WhileStatement)
	if len(loop.Body.Body) != 2 {
		t.Fatalf("got %d statements, want 2", len(loop.Body.Body))
	}
	if _, ok := loop.Body.Body[0].(*ast.BreakStatement); !ok {
		t.Fatalf("first = %#v, want break", loop.Body.Body[0])
	}
	if _, ok := loop.Body.Body[1].(*ast.ContinueStatement); !ok {
		t.Fatalf("second = %#v, want continue", loop.Body.Body[1])
	}
}

func TestParseFunctionDefinition(t *testing.T) {
	source := `func add(a, b): {
	return a + b;
} end`
	stmt := singleStatement(t, source)
	fn, ok := stmt.(*ast.FunctionDefinition)
	if !ok {
		t.Fatalf("statement = %#v, want function definition", stmt)
	}
	if fn.ID.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("fn = %s/%d params, want add/2", fn.ID.Name, len(fn.Params))
	}
	if len(fn.Body.Body) != 1 {
		t.Fatalf("got %d body statements, want 1", len(fn.Body.Body))
	}
	ret, ok := fn.Body.Body[0].(*ast.ReturnStatement)
	if !ok || ret.Argument == nil {
		t.Fatalf("body statement = %#v, want return with argument", fn.Body.Body[0])
	}
	checkSpan(t, "fn", fn.Span(), 1, 1, 3, 6)
}

func TestParseFunctionReturnAnnotation(t *testing.T) {
	stmt := singleStatement(t, `func f(): Int: { return 1; } end`)
	fn, ok := stmt.(*ast.FunctionDefinition)
	if !ok || fn.ID.Name != "f" {
		t.Fatalf("statement = %#v, want function f", stmt)
	}
}

func TestParseParameterAnnotations(t *testing.T) {
	stmt := singleStatement(t, `func hit(target, amount: Int): { } end`)
	fn := stmt.(*ast.FunctionDefinition)
	if len(fn.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(fn.Params))
	}
	if fn.Params[0].TypeName != nil {
		t.Fatalf("first param has unexpected annotation")
	}
	if fn.Params[1].TypeName == nil || fn.Params[1].TypeName.Name != "Int" {
		t.Fatalf("second param annotation = %#v, want Int", fn.Params[1].TypeName)
	}
}

func TestParseLambdaExpression(t *testing.T) {
	stmt := singleStatement(t, `var f = func (x): { return x; } end;`)
	decl := stmt.(*ast.VariableDeclaration)
	lambda, ok := decl.Initializer.(*ast.LambdaExpression)
	if !ok {
		t.Fatalf("initializer = %#v, want lambda", decl.Initializer)
	}
	if lambda.Name != nil {
		t.Fatalf("anonymous lambda has name %v", lambda.Name)
	}

	stmt = singleStatement(t, `var g = func rec(n): { return rec; } end;`)
	decl = stmt.(*ast.VariableDeclaration)
	lambda, ok = decl.Initializer.(*ast.LambdaExpression)
	if !ok || lambda.Name == nil || lambda.Name.Name != "rec" {
		t.Fatalf("initializer = %#v, want named lambda rec", decl.Initializer)
	}
}

func TestParseCallMemberIndexChain(t *testing.T) {
	stmt := singleStatement(t, `registry.lookup("hp")[0](1, 2)`)
	call, ok := stmt.(*ast.FunctionCall)
	if !ok || len(call.Arguments) != 2 {
		t.Fatalf("statement = %#v, want call with 2 args", stmt)
	}
	index, ok := call.Callee.(*ast.IndexExpression)
	if !ok {
		t.Fatalf("callee = %#v, want index", call.Callee)
	}
	inner, ok := index.Object.(*ast.FunctionCall)
	if !ok || len(inner.Arguments) != 1 {
		t.Fatalf("index object = %#v, want call with 1 arg", index.Object)
	}
	member, ok := inner.Callee.(*ast.MemberAccessExpression)
	if !ok || member.Member.Name != "lookup" {
		t.Fatalf("inner callee = %#v, want member lookup", inner.Callee)
	}
}

func TestParseTableLiteralEntries(t *testing.T) {
	stmt := singleStatement(t, `var t = {name: "orc", "max hp": 20, 3: x, 4};`)
	decl := stmt.(*ast.VariableDeclaration)
	table, ok := decl.Initializer.(*ast.TableLiteral)
	if !ok {
		t.Fatalf("initializer = %#v, want table literal", decl.Initializer)
	}
	if len(table.Entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(table.Entries))
	}
	if key, ok := table.Entries[0].Key.(*ast.StringLiteral); !ok || key.Value != "name" {
		t.Fatalf("entry 0 key = %#v, want string name", table.Entries[0].Key)
	}
	if key, ok := table.Entries[1].Key.(*ast.StringLiteral); !ok || key.Value != "max hp" {
		t.Fatalf("entry 1 key = %#v, want string \"max hp\"", table.Entries[1].Key)
	}
	if key, ok := table.Entries[2].Key.(*ast.IntegerLiteral); !ok || key.Value != 3 {
		t.Fatalf("entry 2 key = %#v, want integer 3", table.Entries[2].Key)
	}
	if table.Entries[3].Key != nil {
		t.Fatalf("entry 3 key = %#v, want positional", table.Entries[3].Key)
	}
}

func TestParseNestedTableLiteral(t *testing.T) {
	stmt := singleStatement(t, `var t = {stats: {hp: 10}};`)
	decl := stmt.(*ast.VariableDeclaration)
	table := decl.Initializer.(*ast.TableLiteral)
	if _, ok := table.Entries[0].Value.(*ast.TableLiteral); !ok {
		t.Fatalf("nested value = %#v, want table literal", table.Entries[0].Value)
	}
}

func TestParseObjectDefinition(t *testing.T) {
	source := `
object Counter: {
	var count = 0;
	func increment(): {
		count += 1;
	} end
	on reset(): {
		count = 0;
	} end
} end
`
	stmt := singleStatement(t, source)
	obj, ok := stmt.(*ast.ObjectDefinition)
	if !ok {
		t.Fatalf("statement = %#v, want object definition", stmt)
	}
	if obj.ID.Name != "Counter" {
		t.Fatalf("name = %q, want Counter", obj.ID.Name)
	}
	if len(obj.Fields) != 1 || obj.Fields[0].Name.Name != "count" {
		t.Fatalf("fields = %#v, want single count field", obj.Fields)
	}
	if len(obj.Methods) != 1 || obj.Methods[0].ID.Name != "increment" {
		t.Fatalf("methods = %#v, want single increment method", obj.Methods)
	}
	if len(obj.Handlers) != 1 || obj.Handlers[0].ID.Name != "reset" {
		t.Fatalf("handlers = %#v, want single reset handler", obj.Handlers)
	}
}

func TestParseObjectRejectsOtherMembers(t *testing.T) {
	errs := parseErrors(t, `object Bad: { while true do { } end } end`)
	if !strings.Contains(errs[0].Message, "expected 'var', 'func', or 'on' in object body") {
		t.Fatalf("message = %q", errs[0].Message)
	}
}

func TestParseStandaloneBlock(t *testing.T) {
	stmt := singleStatement(t, `{ var a = 1; a = 2; }`)
	block, ok := stmt.(*ast.BlockStatement)
	if !ok {
		t.Fatalf("statement = %#v, want block", stmt)
	}
	if len(block.Body) != 2 {
		t.Fatalf("got %d statements, want 2", len(block.Body))
	}
}

func TestParseErrorRecoveryCollectsIndependentErrors(t *testing.T) {
	source := "var = 1;\nvar b = ;"
	errs := parseErrors(t, source)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Message, "expected identifier after 'var'") {
		t.Fatalf("first message = %q", errs[0].Message)
	}
	if errs[0].Location.Line != 1 || errs[0].Location.Column != 5 {
		t.Fatalf("first error at %d:%d, want 1:5", errs[0].Location.Line, errs[0].Location.Column)
	}
	if errs[1].Location.Line != 2 {
		t.Fatalf("second error on line %d, want 2", errs[1].Location.Line)
	}
}

func TestParseRecoveryInsideBlock(t *testing.T) {
	source := `
func outer(): {
	var = 2;
	var ok = 3;
} end
var tail = 4;
`
	_, errs := Parse(source)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
}

func TestParseMissingEnd(t *testing.T) {
	errs := parseErrors(t, `if x then { }`)
	if !strings.Contains(errs[0].Message, "expected 'end' after if statement") {
		t.Fatalf("message = %q", errs[0].Message)
	}
}

func TestParseLexicalErrorSurfacesAsDiagnostic(t *testing.T) {
	errs := parseErrors(t, "var s = \"oops")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Message != "unterminated string literal" {
		t.Fatalf("message = %q", errs[0].Message)
	}
	if errs[0].Location.Line != 1 || errs[0].Location.Column != 9 {
		t.Fatalf("error at %d:%d, want 1:9", errs[0].Location.Line, errs[0].Location.Column)
	}
}

func TestParseCollectsIndependentLexicalErrors(t *testing.T) {
	errs := parseErrors(t, "var a = ~;\nvar s = \"oops")
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	if errs[0].Message != "unexpected character '~'" {
		t.Fatalf("first message = %q", errs[0].Message)
	}
	if errs[0].Location.Line != 1 || errs[0].Location.Column != 9 {
		t.Fatalf("first error at %d:%d, want 1:9", errs[0].Location.Line, errs[0].Location.Column)
	}
	if errs[1].Message != "unterminated string literal" {
		t.Fatalf("second message = %q", errs[1].Message)
	}
	if errs[1].Location.Line != 2 || errs[1].Location.Column != 9 {
		t.Fatalf("second error at %d:%d, want 2:9", errs[1].Location.Line, errs[1].Location.Column)
	}
}

func TestParseProgramFromTokens(t *testing.T) {
	tokens, lexErrs := lexer.Tokenize(`var n = 1;`)
	if len(lexErrs) > 0 {
		t.Fatalf("tokenize failed: %v", lexErrs)
	}
	program, errs := New(tokens).ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(program.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Body))
	}
}

func TestParseExpressionSpans(t *testing.T) {
	program := mustParse(t, "var total = price * count")
	decl := program.Body[0].(*ast.VariableDeclaration)
	bin := decl.Initializer.(*ast.BinaryExpression)
	checkSpan(t, "binary", bin.Span(), 1, 13, 1, 26)
	checkSpan(t, "left", bin.Left.Span(), 1, 13, 1, 18)
	checkSpan(t, "right", bin.Right.Span(), 1, 21, 1, 26)
}
