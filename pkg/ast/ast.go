package ast

type NodeType string

const (
	NodeInstructions        NodeType = "Instructions"
	NodeBlock               NodeType = "Block"
	NodeIfStatement         NodeType = "If"
	NodeWhileLoop           NodeType = "While"
	NodeForLoop             NodeType = "For"
	NodeFlowKeyword         NodeType = "FlowKeyword"
	NodeReturnStatement     NodeType = "Return"
	NodePrintStatement      NodeType = "Print"
	NodeAssignment          NodeType = "Assignment"
	NodeVariable            NodeType = "Variable"
	NodeReference           NodeType = "Reference"
	NodeVectorLiteral       NodeType = "Vector"
	NodeMatrixLiteral       NodeType = "Matrix"
	NodeIntLiteral          NodeType = "IntNum"
	NodeFloatLiteral        NodeType = "FloatNum"
	NodeStringLiteral       NodeType = "String"
	NodeArithmeticOperation NodeType = "ArithmeticOperation"
	NodeComparison          NodeType = "Comparison"
	NodeUnaryExpression     NodeType = "UnaryExpr"
	NodeFunctionCall        NodeType = "FunctionCall"
	NodeRange               NodeType = "Range"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

// Position is a 1-based line/column pair.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Span marks the source region a node was parsed from.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	Type     NodeType `json:"type"`
	Location Span     `json:"span"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.Location }
func (nodeImpl) isNode()              {}

func (n *nodeImpl) setSpan(span Span) { n.Location = span }

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// Line returns the starting line of the node, or 0 when unknown.
func Line(node Node) int {
	if node == nil {
		return 0
	}
	return node.Span().Start.Line
}

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// AssignmentTarget is implemented by nodes that may appear on the left of an assignment.
type AssignmentTarget interface {
	Expression
	assignmentTargetNode()
}

type assignmentTargetMarker struct{}

func (assignmentTargetMarker) assignmentTargetNode() {}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

// Instructions is an ordered statement sequence; a parsed program is one.
type Instructions struct {
	nodeImpl
	statementMarker

	Nodes []Statement `json:"nodes"`
}

func NewInstructions(nodes []Statement) *Instructions {
	return &Instructions{nodeImpl: newNodeImpl(NodeInstructions), Nodes: nodes}
}

// Block introduces a scope around its content.
type Block struct {
	nodeImpl
	statementMarker

	Content *Instructions `json:"content"`
}

func NewBlock(content *Instructions) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Content: content}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
	ElseBody  Statement  `json:"elseBody,omitempty"`
}

func NewIfStatement(condition Expression, body Statement, elseBody Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Body: body, ElseBody: elseBody}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileLoop(condition Expression, body Statement) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

type ForLoop struct {
	nodeImpl
	statementMarker

	Iterator *Variable `json:"iterator"`
	Range    *Range    `json:"range"`
	Body     Statement `json:"body"`
}

func NewForLoop(iterator *Variable, rng *Range, body Statement) *ForLoop {
	return &ForLoop{nodeImpl: newNodeImpl(NodeForLoop), Iterator: iterator, Range: rng, Body: body}
}

type FlowKind string

const (
	FlowBreak    FlowKind = "break"
	FlowContinue FlowKind = "continue"
)

type FlowKeyword struct {
	nodeImpl
	statementMarker

	Keyword FlowKind `json:"keyword"`
}

func NewFlowKeyword(keyword FlowKind) *FlowKeyword {
	return &FlowKeyword{nodeImpl: newNodeImpl(NodeFlowKeyword), Keyword: keyword}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value,omitempty"`
}

func NewReturnStatement(value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Value: value}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Arguments []Expression `json:"arguments"`
}

func NewPrintStatement(args []Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Arguments: args}
}

type AssignmentOperator string

const (
	AssignmentAssign AssignmentOperator = "="
	AssignmentAdd    AssignmentOperator = "+="
	AssignmentSub    AssignmentOperator = "-="
	AssignmentMul    AssignmentOperator = "*="
	AssignmentDiv    AssignmentOperator = "/="
)

// BaseOperator returns the arithmetic operator behind a compound assignment.
func (op AssignmentOperator) BaseOperator() (string, bool) {
	switch op {
	case AssignmentAdd:
		return "+", true
	case AssignmentSub:
		return "-", true
	case AssignmentMul:
		return "*", true
	case AssignmentDiv:
		return "/", true
	default:
		return "", false
	}
}

type Assignment struct {
	nodeImpl
	statementMarker

	Operator AssignmentOperator `json:"operator"`
	Left     AssignmentTarget   `json:"left"`
	Right    Expression         `json:"right"`
}

func NewAssignment(operator AssignmentOperator, left AssignmentTarget, right Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Operator: operator, Left: left, Right: right}
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

type Variable struct {
	nodeImpl
	expressionMarker
	assignmentTargetMarker

	Name string `json:"name"`
}

func NewVariable(name string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

// Reference indexes a container: `x[i]`, `x[i, j]`, `x[i][j]`.
type Reference struct {
	nodeImpl
	expressionMarker
	assignmentTargetMarker

	Container AssignmentTarget `json:"container"`
	Coords    []Expression     `json:"coords"`
}

func NewReference(container AssignmentTarget, coords []Expression) *Reference {
	return &Reference{nodeImpl: newNodeImpl(NodeReference), Container: container, Coords: coords}
}

// Root returns the variable at the bottom of a (possibly nested) reference chain.
func (r *Reference) Root() *Variable {
	switch c := r.Container.(type) {
	case *Variable:
		return c
	case *Reference:
		return c.Root()
	default:
		return nil
	}
}

type VectorLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewVectorLiteral(elements []Expression) *VectorLiteral {
	return &VectorLiteral{nodeImpl: newNodeImpl(NodeVectorLiteral), Elements: elements}
}

type MatrixLiteral struct {
	nodeImpl
	expressionMarker

	Rows []*VectorLiteral `json:"rows"`
}

func NewMatrixLiteral(rows []*VectorLiteral) *MatrixLiteral {
	return &MatrixLiteral{nodeImpl: newNodeImpl(NodeMatrixLiteral), Rows: rows}
}

type IntLiteral struct {
	nodeImpl
	expressionMarker

	Value int64 `json:"value"`
}

func NewIntLiteral(value int64) *IntLiteral {
	return &IntLiteral{nodeImpl: newNodeImpl(NodeIntLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

// Arithmetic operators. The dotted forms apply elementwise.
const (
	OpAdd    = "+"
	OpSub    = "-"
	OpMul    = "*"
	OpDiv    = "/"
	OpDotAdd = ".+"
	OpDotSub = ".-"
	OpDotMul = ".*"
	OpDotDiv = "./"
)

// IsElementwise reports whether op is one of the dotted operators.
func IsElementwise(op string) bool {
	switch op {
	case OpDotAdd, OpDotSub, OpDotMul, OpDotDiv:
		return true
	default:
		return false
	}
}

type ArithmeticOperation struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewArithmeticOperation(operator string, left, right Expression) *ArithmeticOperation {
	return &ArithmeticOperation{nodeImpl: newNodeImpl(NodeArithmeticOperation), Operator: operator, Left: left, Right: right}
}

type Comparison struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewComparison(operator string, left, right Expression) *Comparison {
	return &Comparison{nodeImpl: newNodeImpl(NodeComparison), Operator: operator, Left: left, Right: right}
}

type UnaryOperator string

const (
	UnaryNegate    UnaryOperator = "NEGATE"
	UnaryTranspose UnaryOperator = "TRANSPOSE"
)

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

// Builtin matrix constructors.
const (
	BuiltinOnes  = "ones"
	BuiltinZeros = "zeros"
	BuiltinEye   = "eye"
)

type FunctionCall struct {
	nodeImpl
	expressionMarker

	Name      string       `json:"name"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(name string, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Name: name, Arguments: args}
}

type Range struct {
	nodeImpl
	expressionMarker

	Start Expression `json:"start"`
	End   Expression `json:"end"`
}

func NewRange(start, end Expression) *Range {
	return &Range{nodeImpl: newNodeImpl(NodeRange), Start: start, End: end}
}
