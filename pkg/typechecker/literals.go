package typechecker

import (
	"matlang/interpreter-go/pkg/ast"
)

func (c *Checker) checkExpression(expr ast.Expression) ([]Diagnostic, Type) {
	switch e := expr.(type) {
	case nil:
		return nil, Undefined("")
	case *ast.IntLiteral:
		return nil, Int()
	case *ast.FloatLiteral:
		return nil, Float()
	case *ast.StringLiteral:
		return nil, String()
	case *ast.VectorLiteral:
		return c.checkVectorLiteral(e)
	case *ast.MatrixLiteral:
		return c.checkMatrixLiteral(e)
	case *ast.Variable:
		return c.checkVariable(e, false)
	case *ast.Reference:
		return c.checkReference(e)
	case *ast.FunctionCall:
		return c.checkFunctionCall(e)
	case *ast.UnaryExpression:
		return c.checkUnaryExpression(e)
	case *ast.ArithmeticOperation:
		return c.checkArithmeticOperation(e)
	case *ast.Comparison:
		return c.checkComparison(e)
	default:
		return []Diagnostic{c.errorf(expr, "unsupported expression %s", expr.NodeType())}, Undefined("")
	}
}

// checkVectorLiteral sizes the vector by its element count. Elements must be
// scalars; nesting is spelled as a matrix literal.
func (c *Checker) checkVectorLiteral(vec *ast.VectorLiteral) ([]Diagnostic, Type) {
	var diags []Diagnostic
	failed := false
	for _, el := range vec.Elements {
		elDiags, elType := c.checkExpression(el)
		diags = append(diags, elDiags...)
		if elType.Kind == KindVector || elType.Kind == KindMatrix {
			diags = append(diags, c.errorf(el, "vector element must be INT, FLOAT or STRING, have %s", elType.Kind))
			failed = true
		}
	}
	if failed {
		return diags, Undefined("")
	}
	return diags, Vector(len(vec.Elements))
}

// checkMatrixLiteral reports ragged rows and sizes the matrix by its shortest row.
func (c *Checker) checkMatrixLiteral(mat *ast.MatrixLiteral) ([]Diagnostic, Type) {
	var diags []Diagnostic
	for _, row := range mat.Rows {
		rowDiags, _ := c.checkVectorLiteral(row)
		diags = append(diags, rowDiags...)
	}
	if len(mat.Rows) == 0 {
		return diags, Matrix(0, 0)
	}
	minLen := len(mat.Rows[0].Elements)
	ragged := false
	for _, row := range mat.Rows[1:] {
		n := len(row.Elements)
		if n != minLen {
			ragged = true
		}
		if n < minLen {
			minLen = n
		}
	}
	if ragged {
		diags = append(diags, c.errorf(mat, "vectors with different sizes in matrix initialization"))
	}
	return diags, Matrix(len(mat.Rows), minLen)
}

// checkVariable resolves a name. allowUndefined suppresses the diagnostic
// for names introduced by a plain `=`.
func (c *Checker) checkVariable(v *ast.Variable, allowUndefined bool) ([]Diagnostic, Type) {
	if typ, ok := c.scopes.Lookup(v.Name); ok {
		return nil, typ
	}
	if allowUndefined {
		return nil, Undefined(v.Name)
	}
	return []Diagnostic{c.errorf(v, "undefined variable %s", v.Name)}, Undefined(v.Name)
}

// constantInt returns the value of an integer literal, optionally negated.
func constantInt(expr ast.Expression) (int64, bool) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return e.Value, true
	case *ast.UnaryExpression:
		if e.Operator != ast.UnaryNegate {
			return 0, false
		}
		if v, ok := constantInt(e.Operand); ok {
			return -v, true
		}
	}
	return 0, false
}
