package typechecker

import (
	"fmt"

	"matlang/interpreter-go/pkg/ast"
)

type opKey struct {
	op    string
	left  TypeKind
	right TypeKind
}

// allowedOperations maps (operator, left kind, right kind) to the result
// kind. Unary operators use the operand kind on both sides.
var allowedOperations = map[opKey]TypeKind{}

func allow(op string, left, right, result TypeKind) {
	allowedOperations[opKey{op, left, right}] = result
}

func init() {
	for _, op := range []string{ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv} {
		allow(op, KindInt, KindInt, KindInt)
		allow(op, KindFloat, KindInt, KindFloat)
		allow(op, KindInt, KindFloat, KindFloat)
		allow(op, KindFloat, KindFloat, KindFloat)
	}
	allow(ast.OpAdd, KindVector, KindVector, KindVector)
	allow(ast.OpAdd, KindMatrix, KindMatrix, KindMatrix)
	allow(ast.OpAdd, KindString, KindString, KindString)
	allow(ast.OpMul, KindMatrix, KindMatrix, KindMatrix)

	for _, op := range []string{ast.OpDotAdd, ast.OpDotSub, ast.OpDotMul, ast.OpDotDiv} {
		allow(op, KindMatrix, KindMatrix, KindMatrix)
		allow(op, KindVector, KindVector, KindVector)
	}

	negate := string(ast.UnaryNegate)
	allow(negate, KindInt, KindInt, KindInt)
	allow(negate, KindFloat, KindFloat, KindFloat)
	allow(negate, KindMatrix, KindMatrix, KindMatrix)
	allow(string(ast.UnaryTranspose), KindMatrix, KindMatrix, KindMatrix)
}

var operationNames = map[string]string{
	ast.OpAdd:    "ADD",
	ast.OpSub:    "SUB",
	ast.OpMul:    "MUL",
	ast.OpDiv:    "DIV",
	ast.OpDotAdd: "DOTADD",
	ast.OpDotSub: "DOTSUB",
	ast.OpDotMul: "DOTMUL",
	ast.OpDotDiv: "DOTDIV",
}

func operationName(op string) string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return op
}

// operationError explains why a binary operation was rejected. tableMiss is
// set when the operand kinds have no entry at all.
type operationError struct {
	tableMiss bool
	message   string
}

func sizesAgree(a, b int) bool {
	return a == UnknownSize || b == UnknownSize || a == b
}

func addSizes(a, b int) int {
	if a == UnknownSize || b == UnknownSize {
		return UnknownSize
	}
	return a + b
}

// combine computes the descriptor of `left op right`.
func combine(op string, left, right Type) (Type, *operationError) {
	bothMatrix := left.Kind == KindMatrix && right.Kind == KindMatrix
	if bothMatrix && op == ast.OpMul {
		// Accepts either orientation; see the multiplication tests.
		if !sizesAgree(left.Shape[0], right.Shape[1]) && !sizesAgree(left.Shape[1], right.Shape[0]) {
			return Undefined(""), &operationError{message: fmt.Sprintf(
				"matrix dimensions not proper for multiplication: %s and %s",
				formatShape(left.Shape), formatShape(right.Shape))}
		}
	}

	kind, ok := allowedOperations[opKey{op, left.Kind, right.Kind}]
	if !ok {
		return Undefined(""), &operationError{tableMiss: true}
	}

	if ast.IsElementwise(op) && !sameShape(left.Shape, right.Shape) {
		return Undefined(""), &operationError{message: fmt.Sprintf(
			"operands of %s have different shapes: %s and %s",
			operationName(op), formatShape(left.Shape), formatShape(right.Shape))}
	}
	if bothMatrix && op == ast.OpAdd && !sizesAgree(left.Shape[1], right.Shape[1]) {
		return Undefined(""), &operationError{message: fmt.Sprintf(
			"matrix dimensions not proper for concatenation: %s and %s",
			formatShape(left.Shape), formatShape(right.Shape))}
	}

	return Type{Kind: kind, Shape: resultShape(op, left, right)}, nil
}

func resultShape(op string, left, right Type) []int {
	switch {
	case left.Kind == KindMatrix && right.Kind == KindMatrix && op == ast.OpMul:
		return []int{left.Shape[0], right.Shape[1]}
	case left.Kind == KindMatrix && right.Kind == KindMatrix && op == ast.OpAdd:
		return []int{addSizes(left.Shape[0], right.Shape[0]), left.Shape[1]}
	case left.Kind == KindVector && right.Kind == KindVector && op == ast.OpAdd:
		return []int{addSizes(left.Shape[0], right.Shape[0])}
	default:
		return copyShape(left.Shape)
	}
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sizesAgree(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (c *Checker) checkArithmeticOperation(expr *ast.ArithmeticOperation) ([]Diagnostic, Type) {
	leftDiags, left := c.checkExpression(expr.Left)
	rightDiags, right := c.checkExpression(expr.Right)
	diags := append(leftDiags, rightDiags...)

	if left.IsUndefined() || right.IsUndefined() {
		return diags, Undefined("")
	}

	result, opErr := combine(expr.Operator, left, right)
	if opErr == nil {
		return diags, result
	}
	if opErr.tableMiss {
		diags = append(diags, c.errorf(expr, "cannot %s %s and %s", operationName(expr.Operator), left.Kind, right.Kind))
	} else {
		diags = append(diags, c.errorf(expr, "%s", opErr.message))
	}
	return diags, Undefined("")
}

// checkComparison checks both operands; the truth value is typed as int.
func (c *Checker) checkComparison(expr *ast.Comparison) ([]Diagnostic, Type) {
	leftDiags, _ := c.checkExpression(expr.Left)
	rightDiags, _ := c.checkExpression(expr.Right)
	return append(leftDiags, rightDiags...), Int()
}

func (c *Checker) checkUnaryExpression(expr *ast.UnaryExpression) ([]Diagnostic, Type) {
	diags, operand := c.checkExpression(expr.Operand)
	if operand.IsUndefined() {
		diags = append(diags, c.errorf(expr, "undefined variable %s", operand.Name))
	}

	kind, ok := allowedOperations[opKey{string(expr.Operator), operand.Kind, operand.Kind}]
	if !ok {
		diags = append(diags, c.errorf(expr, "cannot perform %s on %s", expr.Operator, operand.Kind))
		return diags, Undefined("")
	}
	shape := copyShape(operand.Shape)
	if expr.Operator == ast.UnaryTranspose {
		for i, j := 0, len(shape)-1; i < j; i, j = i+1, j-1 {
			shape[i], shape[j] = shape[j], shape[i]
		}
	}
	return diags, Type{Kind: kind, Shape: shape}
}
