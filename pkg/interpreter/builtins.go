package interpreter

import (
	"fmt"

	"matlang/interpreter-go/pkg/ast"
	"matlang/interpreter-go/pkg/runtime"
)

type builtinFunc func(rows, cols int) *runtime.MatrixValue

var builtins = map[string]builtinFunc{
	ast.BuiltinZeros: func(rows, cols int) *runtime.MatrixValue {
		return runtime.NewFilledMatrix(rows, cols, func(int, int) runtime.Value {
			return runtime.IntValue{Val: 0}
		})
	},
	ast.BuiltinOnes: func(rows, cols int) *runtime.MatrixValue {
		return runtime.NewFilledMatrix(rows, cols, func(int, int) runtime.Value {
			return runtime.IntValue{Val: 1}
		})
	},
	// eye places ones on the main diagonal up to min(rows, cols).
	ast.BuiltinEye: func(rows, cols int) *runtime.MatrixValue {
		return runtime.NewFilledMatrix(rows, cols, func(i, j int) runtime.Value {
			if i == j {
				return runtime.IntValue{Val: 1}
			}
			return runtime.IntValue{Val: 0}
		})
	},
}

// evaluateFunctionCall builds a matrix; a single argument is used for both
// dimensions.
func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall) (runtime.Value, error) {
	fn, ok := builtins[call.Name]
	if !ok {
		return nil, runtimeErrorf(call, "unknown function %s", call.Name)
	}
	if n := len(call.Arguments); n < 1 || n > 2 {
		return nil, runtimeErrorf(call, "%s expects 1 or 2 arguments, got %d", call.Name, n)
	}
	dims := make([]int, 0, 2)
	for _, arg := range call.Arguments {
		val, err := i.evaluateExpression(arg)
		if err != nil {
			return nil, err
		}
		n, err := dimension(call.Name, val)
		if err != nil {
			return nil, wrapRuntime(call, err)
		}
		dims = append(dims, n)
	}
	if len(dims) == 1 {
		dims = append(dims, dims[0])
	}
	return fn(dims[0], dims[1]), nil
}

func dimension(name string, v runtime.Value) (int, error) {
	iv, ok := v.(runtime.IntValue)
	if !ok {
		return 0, fmt.Errorf("expected int as builtin argument, have %s", kindName(v))
	}
	if iv.Val < 0 {
		return 0, fmt.Errorf("%s dimension must be non-negative, have %d", name, iv.Val)
	}
	return int(iv.Val), nil
}
