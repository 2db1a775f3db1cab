package interpreter

import (
	"matlang/interpreter-go/pkg/ast"
	"matlang/interpreter-go/pkg/runtime"
)

// evalMode selects whether a variable or reference evaluates to its value or
// to the address of its slot.
type evalMode int

const (
	modeValue evalMode = iota
	modeAddress
)

func (i *Interpreter) evaluateExpression(expr ast.Expression) (runtime.Value, error) {
	return i.evaluate(expr, modeValue)
}

func (i *Interpreter) evaluate(expr ast.Expression, mode evalMode) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Variable:
		if mode == modeAddress {
			return runtime.ReferenceValue{Name: e.Name}, nil
		}
		val, err := i.memory.Get(e.Name)
		if err != nil {
			return nil, wrapRuntime(e, err)
		}
		return val, nil
	case *ast.Reference:
		ref, err := i.resolveReference(e)
		if err != nil {
			return nil, err
		}
		if mode == modeAddress {
			return ref, nil
		}
		val, err := i.memory.Load(ref)
		if err != nil {
			return nil, wrapRuntime(e, err)
		}
		return val, nil
	}

	if mode == modeAddress {
		return nil, runtimeErrorf(expr, "cannot assign to %s", expr.NodeType())
	}

	switch e := expr.(type) {
	case *ast.IntLiteral:
		return runtime.IntValue{Val: e.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: e.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: e.Value}, nil
	case *ast.VectorLiteral:
		return i.evaluateVectorLiteral(e)
	case *ast.MatrixLiteral:
		rows := make([]*runtime.VectorValue, 0, len(e.Rows))
		for _, row := range e.Rows {
			vec, err := i.evaluateVectorLiteral(row)
			if err != nil {
				return nil, err
			}
			rows = append(rows, vec)
		}
		return runtime.NewMatrix(rows), nil
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(e)
	case *ast.UnaryExpression:
		operand, err := i.evaluateExpression(e.Operand)
		if err != nil {
			return nil, err
		}
		val, err := applyUnary(e.Operator, operand)
		return val, wrapRuntime(e, err)
	case *ast.ArithmeticOperation:
		left, err := i.evaluateExpression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluateExpression(e.Right)
		if err != nil {
			return nil, err
		}
		val, err := applyArithmetic(e.Operator, left, right)
		return val, wrapRuntime(e, err)
	case *ast.Comparison:
		left, err := i.evaluateExpression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluateExpression(e.Right)
		if err != nil {
			return nil, err
		}
		result, err := compareValues(e.Operator, left, right)
		if err != nil {
			return nil, wrapRuntime(e, err)
		}
		return runtime.BoolValue{Val: result}, nil
	case nil:
		return runtime.NoneValue{}, nil
	default:
		return nil, runtimeErrorf(expr, "unsupported expression %s", expr.NodeType())
	}
}

func (i *Interpreter) evaluateVectorLiteral(vec *ast.VectorLiteral) (*runtime.VectorValue, error) {
	elems := make([]runtime.Value, 0, len(vec.Elements))
	for _, el := range vec.Elements {
		val, err := i.evaluateExpression(el)
		if err != nil {
			return nil, err
		}
		elems = append(elems, runtime.Clone(val))
	}
	return runtime.NewVector(elems), nil
}

// resolveReference flattens a chain such as `m[i][j]` into one reference
// with concrete coordinates, evaluated left to right.
func (i *Interpreter) resolveReference(ref *ast.Reference) (runtime.ReferenceValue, error) {
	var base runtime.ReferenceValue
	switch c := ref.Container.(type) {
	case *ast.Variable:
		base = runtime.ReferenceValue{Name: c.Name}
	case *ast.Reference:
		inner, err := i.resolveReference(c)
		if err != nil {
			return runtime.ReferenceValue{}, err
		}
		base = inner
	default:
		return runtime.ReferenceValue{}, runtimeErrorf(ref, "cannot index %s", ref.Container.NodeType())
	}

	coords := make([]int, 0, len(base.Coords)+len(ref.Coords))
	coords = append(coords, base.Coords...)
	for _, coordExpr := range ref.Coords {
		val, err := i.evaluateExpression(coordExpr)
		if err != nil {
			return runtime.ReferenceValue{}, err
		}
		idx, ok := val.(runtime.IntValue)
		if !ok {
			return runtime.ReferenceValue{}, runtimeErrorf(coordExpr, "expected int as array coordinate, have %s", val.Kind())
		}
		coords = append(coords, int(idx.Val))
	}
	return runtime.ReferenceValue{Name: base.Name, Coords: coords}, nil
}
