package typechecker

import (
	"matlang/interpreter-go/pkg/ast"
)

// checkFunctionCall types ones/zeros/eye calls. Literal arguments become the
// static bounds of the result; any other int argument leaves the axis unknown.
func (c *Checker) checkFunctionCall(call *ast.FunctionCall) ([]Diagnostic, Type) {
	var diags []Diagnostic
	switch call.Name {
	case ast.BuiltinOnes, ast.BuiltinZeros, ast.BuiltinEye:
	default:
		diags = append(diags, c.errorf(call, "unknown function %s", call.Name))
	}

	failed := len(diags) > 0
	for _, arg := range call.Arguments {
		argDiags, argType := c.checkExpression(arg)
		diags = append(diags, argDiags...)
		if argType.Kind != KindInt {
			diags = append(diags, c.errorf(call, "expected int as builtin argument, have %s", argType.Kind))
			failed = true
		}
	}
	if n := len(call.Arguments); n < 1 || n > 2 {
		diags = append(diags, c.errorf(call, "%s expects 1 or 2 arguments, got %d", call.Name, n))
		return diags, Undefined("")
	}
	if failed {
		return diags, Undefined("")
	}

	args := call.Arguments
	if len(args) == 1 {
		args = []ast.Expression{args[0], args[0]}
	}
	bounds := [2]int{UnknownSize, UnknownSize}
	for i, arg := range args {
		value, ok := constantInt(arg)
		if !ok {
			continue
		}
		if value < 0 {
			diags = append(diags, c.errorf(call, "%s dimension must be non-negative, have %d", call.Name, value))
			return diags, Undefined("")
		}
		bounds[i] = int(value)
	}
	return diags, Matrix(bounds[0], bounds[1])
}
