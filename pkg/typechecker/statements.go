package typechecker

import (
	"matlang/interpreter-go/pkg/ast"
)

func (c *Checker) checkInstructions(instructions *ast.Instructions) []Diagnostic {
	if instructions == nil {
		return nil
	}
	var diags []Diagnostic
	for _, stmt := range instructions.Nodes {
		diags = append(diags, c.checkStatement(stmt)...)
	}
	return diags
}

func (c *Checker) checkStatement(stmt ast.Statement) []Diagnostic {
	switch s := stmt.(type) {
	case nil:
		return nil
	case *ast.Instructions:
		return c.checkInstructions(s)
	case *ast.Block:
		return c.withScope(func() []Diagnostic {
			return c.checkInstructions(s.Content)
		})
	case *ast.IfStatement:
		diags, _ := c.checkExpression(s.Condition)
		diags = append(diags, c.checkStatement(s.Body)...)
		if s.ElseBody != nil {
			diags = append(diags, c.checkStatement(s.ElseBody)...)
		}
		return diags
	case *ast.WhileLoop:
		diags, _ := c.checkExpression(s.Condition)
		return append(diags, c.withLoop(func() []Diagnostic {
			return c.checkStatement(s.Body)
		})...)
	case *ast.ForLoop:
		return c.checkForLoop(s)
	case *ast.FlowKeyword:
		if !c.inLoopContext() {
			return []Diagnostic{c.errorf(s, "flow keyword %s outside loop", s.Keyword)}
		}
		return nil
	case *ast.ReturnStatement:
		if s.Value == nil {
			return nil
		}
		diags, _ := c.checkExpression(s.Value)
		return diags
	case *ast.PrintStatement:
		var diags []Diagnostic
		for _, arg := range s.Arguments {
			argDiags, _ := c.checkExpression(arg)
			diags = append(diags, argDiags...)
		}
		return diags
	case *ast.Assignment:
		return c.checkAssignment(s)
	default:
		return []Diagnostic{c.errorf(stmt, "unsupported statement %s", stmt.NodeType())}
	}
}

// checkForLoop checks the range in the enclosing scope, then the body in a
// child scope where the iterator is an int. Bounds may be int or float.
func (c *Checker) checkForLoop(loop *ast.ForLoop) []Diagnostic {
	var diags []Diagnostic
	for _, bound := range []ast.Expression{loop.Range.Start, loop.Range.End} {
		boundDiags, boundType := c.checkExpression(bound)
		diags = append(diags, boundDiags...)
		if !boundType.IsUndefined() && !boundType.IsNumeric() {
			diags = append(diags, c.errorf(loop.Range, "expected number as range bound, have %s", boundType.Kind))
		}
	}
	return append(diags, c.withScope(func() []Diagnostic {
		c.scopes.Define(loop.Iterator.Name, Int())
		return c.withLoop(func() []Diagnostic {
			return c.checkStatement(loop.Body)
		})
	})...)
}

func (c *Checker) checkAssignment(assign *ast.Assignment) []Diagnostic {
	overwrite := assign.Operator == ast.AssignmentAssign

	var (
		diags []Diagnostic
		left  Type
	)
	switch target := assign.Left.(type) {
	case *ast.Variable:
		diags, left = c.checkVariable(target, overwrite)
	case *ast.Reference:
		diags, left = c.checkReference(target)
	default:
		return []Diagnostic{c.errorf(assign, "cannot assign to %s", assign.Left.NodeType())}
	}
	rightDiags, right := c.checkExpression(assign.Right)
	diags = append(diags, rightDiags...)

	if right.IsUndefined() {
		return diags
	}
	if left.IsUndefined() && (!overwrite || isSlice(assign)) {
		return diags
	}

	if !overwrite {
		base, _ := assign.Operator.BaseOperator()
		combined, opErr := combine(base, left, right)
		if opErr != nil {
			if opErr.tableMiss {
				diags = append(diags, c.errorf(assign, "cannot %s %s to %s", operationName(base), right.Kind, left.Kind))
			} else {
				diags = append(diags, c.errorf(assign, "%s", opErr.message))
			}
			return diags
		}
		right = combined
	}

	if isSlice(assign) {
		return append(diags, c.checkSliceAssignment(assign, left, right)...)
	}

	name := assign.Left.(*ast.Variable).Name
	c.scopes.Define(name, right)
	return diags
}

// checkSliceAssignment validates a write through an indexed target. The
// container's descriptor is left unchanged.
func (c *Checker) checkSliceAssignment(assign *ast.Assignment, left, right Type) []Diagnostic {
	switch left.Kind {
	case KindVector:
		if right.Kind != KindVector {
			return []Diagnostic{c.errorf(assign, "cannot assign %s to a matrix slice, expected vector", right.Kind)}
		}
		if !sizesAgree(left.Shape[0], right.Shape[0]) {
			return []Diagnostic{c.errorf(assign, "vector sized %d does not match matrix dimensions %d", right.Shape[0], left.Shape[0])}
		}
	case KindFloat:
		if !right.IsNumeric() {
			return []Diagnostic{c.errorf(assign, "matrix element must be INT or FLOAT")}
		}
	}
	return nil
}

func isSlice(assign *ast.Assignment) bool {
	_, ok := assign.Left.(*ast.Reference)
	return ok
}
