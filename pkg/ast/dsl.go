package ast

// Builder helpers used by tests and tooling to assemble trees without a parser.

func Prog(nodes ...Statement) *Instructions {
	return NewInstructions(nodes)
}

func Blk(nodes ...Statement) *Block {
	return NewBlock(NewInstructions(nodes))
}

func ID(name string) *Variable {
	return NewVariable(name)
}

func Int(value int64) *IntLiteral {
	return NewIntLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Vec(elements ...Expression) *VectorLiteral {
	return NewVectorLiteral(elements)
}

func Mat(rows ...*VectorLiteral) *MatrixLiteral {
	return NewMatrixLiteral(rows)
}

// IntMat builds a matrix literal from rows of integer constants.
func IntMat(rows ...[]int64) *MatrixLiteral {
	out := make([]*VectorLiteral, 0, len(rows))
	for _, row := range rows {
		elems := make([]Expression, 0, len(row))
		for _, v := range row {
			elems = append(elems, Int(v))
		}
		out = append(out, Vec(elems...))
	}
	return Mat(out...)
}

func Ref(container AssignmentTarget, coords ...Expression) *Reference {
	return NewReference(container, coords)
}

func Bin(op string, left, right Expression) *ArithmeticOperation {
	return NewArithmeticOperation(op, left, right)
}

func Cmp(op string, left, right Expression) *Comparison {
	return NewComparison(op, left, right)
}

func Neg(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryNegate, operand)
}

func Transpose(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryTranspose, operand)
}

func Call(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(name, args)
}

func Assign(left AssignmentTarget, right Expression) *Assignment {
	return NewAssignment(AssignmentAssign, left, right)
}

func AssignOp(op AssignmentOperator, left AssignmentTarget, right Expression) *Assignment {
	return NewAssignment(op, left, right)
}

func If(condition Expression, body Statement, elseBody Statement) *IfStatement {
	return NewIfStatement(condition, body, elseBody)
}

func While(condition Expression, body Statement) *WhileLoop {
	return NewWhileLoop(condition, body)
}

func For(name string, start, end Expression, body Statement) *ForLoop {
	return NewForLoop(ID(name), NewRange(start, end), body)
}

func Break() *FlowKeyword {
	return NewFlowKeyword(FlowBreak)
}

func Continue() *FlowKeyword {
	return NewFlowKeyword(FlowContinue)
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(value)
}

func Print(args ...Expression) *PrintStatement {
	return NewPrintStatement(args)
}

// At sets the starting line of node and returns it, for diagnostics tests.
func At[T Node](line int, node T) T {
	SetSpan(node, Span{Start: Position{Line: line, Column: 1}, End: Position{Line: line, Column: 1}})
	return node
}
