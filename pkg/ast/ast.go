package ast

type NodeType string

const (
	NodeIdentifier             NodeType = "Identifier"
	NodeStringLiteral          NodeType = "StringLiteral"
	NodeIntegerLiteral         NodeType = "IntegerLiteral"
	NodeFloatLiteral           NodeType = "FloatLiteral"
	NodeBooleanLiteral         NodeType = "BooleanLiteral"
	NodeNilLiteral             NodeType = "NilLiteral"
	NodeTableEntry             NodeType = "TableEntry"
	NodeTableLiteral           NodeType = "TableLiteral"
	NodeUnaryExpression        NodeType = "UnaryExpression"
	NodeBinaryExpression       NodeType = "BinaryExpression"
	NodeAssignmentExpression   NodeType = "AssignmentExpression"
	NodeFunctionCall           NodeType = "FunctionCall"
	NodeMemberAccessExpression NodeType = "MemberAccessExpression"
	NodeIndexExpression        NodeType = "IndexExpression"
	NodeLambdaExpression       NodeType = "LambdaExpression"
	NodeBlockStatement         NodeType = "BlockStatement"
	NodeVariableDeclaration    NodeType = "VariableDeclaration"
	NodeFunctionParameter      NodeType = "FunctionParameter"
	NodeFunctionDefinition     NodeType = "FunctionDefinition"
	NodeFieldDefinition        NodeType = "FieldDefinition"
	NodeEventHandler           NodeType = "EventHandler"
	NodeObjectDefinition       NodeType = "ObjectDefinition"
	NodeElifClause             NodeType = "ElifClause"
	NodeIfStatement            NodeType = "IfStatement"
	NodeWhileStatement         NodeType = "WhileStatement"
	NodeForStatement           NodeType = "ForStatement"
	NodeBreakStatement         NodeType = "BreakStatement"
	NodeContinueStatement      NodeType = "ContinueStatement"
	NodeReturnStatement        NodeType = "ReturnStatement"
	NodeProgram                NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type AssignmentTarget interface {
	Node
	assignmentTargetNode()
}

type assignmentTargetMarker struct{}

func (assignmentTargetMarker) assignmentTargetNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NilLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
}

func NewNilLiteral() *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral)}
}

// TableEntry is one element of a table literal. Key is nil for positional
// entries, which are keyed by their 0-based position at evaluation time.
type TableEntry struct {
	nodeImpl

	Key   Expression `json:"key,omitempty"`
	Value Expression `json:"value"`
}

func NewTableEntry(key, value Expression) *TableEntry {
	return &TableEntry{nodeImpl: newNodeImpl(NodeTableEntry), Key: key, Value: value}
}

type TableLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Entries []*TableEntry `json:"entries"`
}

func NewTableLiteral(entries []*TableEntry) *TableLiteral {
	return &TableLiteral{nodeImpl: newNodeImpl(NodeTableLiteral), Entries: entries}
}

// Expressions

type UnaryOperator string

const (
	UnaryOperatorNegate UnaryOperator = "-"
	UnaryOperatorNot    UnaryOperator = "not"
)

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// AssignmentExpression writes Right into the Left target. Compound forms
// (`x += y`) never reach the AST; the parser rewrites them into a plain
// assignment whose right side is the corresponding binary expression.
type AssignmentExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Left  AssignmentTarget `json:"left"`
	Right Expression       `json:"right"`
}

func NewAssignmentExpression(left AssignmentTarget, right Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Left: left, Right: right}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee Expression, args []Expression) *FunctionCall {
	if args == nil {
		args = make([]Expression, 0)
	}
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

type MemberAccessExpression struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker

	Object Expression  `json:"object"`
	Member *Identifier `json:"member"`
}

func NewMemberAccessExpression(object Expression, member *Identifier) *MemberAccessExpression {
	return &MemberAccessExpression{nodeImpl: newNodeImpl(NodeMemberAccessExpression), Object: object, Member: member}
}

type IndexExpression struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker

	Object Expression `json:"object"`
	Index  Expression `json:"index"`
}

func NewIndexExpression(object, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Object: object, Index: index}
}

// LambdaExpression is a function literal in expression position. Name is
// optional; when present it is bound inside the lambda's own closure so the
// literal can recurse, without creating a binding in the enclosing scope.
type LambdaExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name   *Identifier          `json:"name,omitempty"`
	Params []*FunctionParameter `json:"params"`
	Body   *BlockStatement      `json:"body"`
}

func NewLambdaExpression(name *Identifier, params []*FunctionParameter, body *BlockStatement) *LambdaExpression {
	return &LambdaExpression{nodeImpl: newNodeImpl(NodeLambdaExpression), Name: name, Params: params, Body: body}
}

// Statements

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Name        *Identifier `json:"name"`
	Initializer Expression  `json:"initializer,omitempty"`
}

func NewVariableDeclaration(name *Identifier, initializer Expression) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Name: name, Initializer: initializer}
}

// FunctionParameter carries an optional type annotation. Annotations are
// parsed for compatibility but not enforced.
type FunctionParameter struct {
	nodeImpl

	Name     *Identifier `json:"name"`
	TypeName *Identifier `json:"typeName,omitempty"`
}

func NewFunctionParameter(name *Identifier, typeName *Identifier) *FunctionParameter {
	return &FunctionParameter{nodeImpl: newNodeImpl(NodeFunctionParameter), Name: name, TypeName: typeName}
}

type FunctionDefinition struct {
	nodeImpl
	statementMarker

	ID     *Identifier          `json:"id"`
	Params []*FunctionParameter `json:"params"`
	Body   *BlockStatement      `json:"body"`
}

func NewFunctionDefinition(id *Identifier, params []*FunctionParameter, body *BlockStatement) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), ID: id, Params: params, Body: body}
}

type FieldDefinition struct {
	nodeImpl

	Name        *Identifier `json:"name"`
	Initializer Expression  `json:"initializer"`
}

func NewFieldDefinition(name *Identifier, initializer Expression) *FieldDefinition {
	return &FieldDefinition{nodeImpl: newNodeImpl(NodeFieldDefinition), Name: name, Initializer: initializer}
}

type EventHandler struct {
	nodeImpl

	ID     *Identifier          `json:"id"`
	Params []*FunctionParameter `json:"params"`
	Body   *BlockStatement      `json:"body"`
}

func NewEventHandler(id *Identifier, params []*FunctionParameter, body *BlockStatement) *EventHandler {
	return &EventHandler{nodeImpl: newNodeImpl(NodeEventHandler), ID: id, Params: params, Body: body}
}

type ObjectDefinition struct {
	nodeImpl
	statementMarker

	ID       *Identifier           `json:"id"`
	Fields   []*FieldDefinition    `json:"fields"`
	Methods  []*FunctionDefinition `json:"methods"`
	Handlers []*EventHandler       `json:"handlers,omitempty"`
}

func NewObjectDefinition(id *Identifier, fields []*FieldDefinition, methods []*FunctionDefinition, handlers []*EventHandler) *ObjectDefinition {
	return &ObjectDefinition{nodeImpl: newNodeImpl(NodeObjectDefinition), ID: id, Fields: fields, Methods: methods, Handlers: handlers}
}

// Control flow

type ElifClause struct {
	nodeImpl

	Condition Expression      `json:"condition"`
	Body      *BlockStatement `json:"body"`
}

func NewElifClause(condition Expression, body *BlockStatement) *ElifClause {
	return &ElifClause{nodeImpl: newNodeImpl(NodeElifClause), Condition: condition, Body: body}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition   Expression      `json:"condition"`
	Body        *BlockStatement `json:"body"`
	ElifClauses []*ElifClause   `json:"elifClauses,omitempty"`
	ElseBody    *BlockStatement `json:"elseBody,omitempty"`
}

func NewIfStatement(condition Expression, body *BlockStatement, elifClauses []*ElifClause, elseBody *BlockStatement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Body: body, ElifClauses: elifClauses, ElseBody: elseBody}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression      `json:"condition"`
	Body      *BlockStatement `json:"body"`
}

func NewWhileStatement(condition Expression, body *BlockStatement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

// ForStatement is the numeric loop `for v = start, end, step do ... end`.
// Step is nil when omitted.
type ForStatement struct {
	nodeImpl
	statementMarker

	Variable *Identifier     `json:"variable"`
	Start    Expression      `json:"start"`
	End      Expression      `json:"end"`
	Step     Expression      `json:"step,omitempty"`
	Body     *BlockStatement `json:"body"`
}

func NewForStatement(variable *Identifier, start, end, step Expression, body *BlockStatement) *ForStatement {
	return &ForStatement{nodeImpl: newNodeImpl(NodeForStatement), Variable: variable, Start: start, End: end, Step: step, Body: body}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement() *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement)}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

// Program

type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	if body == nil {
		body = make([]Statement, 0)
	}
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}
