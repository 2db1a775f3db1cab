package interpreter

import (
	"errors"
	"fmt"
	"math"

	"matlang/interpreter-go/pkg/ast"
	"matlang/interpreter-go/pkg/runtime"
)

var errDivisionByZero = errors.New("division by zero")

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

func operandError(op string, left, right runtime.Value) error {
	name, ok := operationNames[op]
	if !ok {
		name = op
	}
	return fmt.Errorf("cannot %s %s and %s", name, kindName(left), kindName(right))
}

func kindName(v runtime.Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind().String()
}

// applyArithmetic evaluates `left op right`. `+` concatenates sequences and
// strings, `*` multiplies matrices when both sides are sequences, and the
// dotted operators zip sequences down to scalars.
func applyArithmetic(op string, left, right runtime.Value) (runtime.Value, error) {
	if ast.IsElementwise(op) {
		return elementwise(op[1:], left, right)
	}
	switch op {
	case ast.OpAdd:
		switch l := left.(type) {
		case *runtime.VectorValue:
			if r, ok := right.(*runtime.VectorValue); ok {
				elems := make([]runtime.Value, 0, l.Len()+r.Len())
				elems = append(elems, runtime.Clone(l).(*runtime.VectorValue).Elements...)
				elems = append(elems, runtime.Clone(r).(*runtime.VectorValue).Elements...)
				return runtime.NewVector(elems), nil
			}
		case *runtime.MatrixValue:
			if r, ok := right.(*runtime.MatrixValue); ok {
				rows := make([]*runtime.VectorValue, 0, l.Len()+r.Len())
				rows = append(rows, runtime.Clone(l).(*runtime.MatrixValue).Rows...)
				rows = append(rows, runtime.Clone(r).(*runtime.MatrixValue).Rows...)
				return runtime.NewMatrix(rows), nil
			}
		case runtime.StringValue:
			if r, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: l.Val + r.Val}, nil
			}
		}
	case ast.OpMul:
		_, leftSeq := left.(runtime.Sequence)
		_, rightSeq := right.(runtime.Sequence)
		if leftSeq && rightSeq {
			return matrixMultiply(left, right)
		}
	}
	return scalarArithmetic(op, left, right)
}

// numeric extracts a scalar operand; booleans count as 0 and 1.
func numeric(v runtime.Value) (i int64, f float64, isFloat bool, ok bool) {
	switch val := v.(type) {
	case runtime.IntValue:
		return val.Val, float64(val.Val), false, true
	case runtime.FloatValue:
		return 0, val.Val, true, true
	case runtime.BoolValue:
		if val.Val {
			return 1, 1, false, true
		}
		return 0, 0, false, true
	default:
		return 0, 0, false, false
	}
}

func scalarArithmetic(op string, left, right runtime.Value) (runtime.Value, error) {
	li, lf, lFloat, lok := numeric(left)
	ri, rf, rFloat, rok := numeric(right)
	if !lok || !rok {
		return nil, operandError(op, left, right)
	}
	if !lFloat && !rFloat {
		switch op {
		case ast.OpAdd:
			return runtime.IntValue{Val: li + ri}, nil
		case ast.OpSub:
			return runtime.IntValue{Val: li - ri}, nil
		case ast.OpMul:
			return runtime.IntValue{Val: li * ri}, nil
		case ast.OpDiv:
			if ri == 0 {
				return nil, errDivisionByZero
			}
			return runtime.IntValue{Val: floorDiv(li, ri)}, nil
		}
		return nil, operandError(op, left, right)
	}
	switch op {
	case ast.OpAdd:
		return runtime.FloatValue{Val: lf + rf}, nil
	case ast.OpSub:
		return runtime.FloatValue{Val: lf - rf}, nil
	case ast.OpMul:
		return runtime.FloatValue{Val: lf * rf}, nil
	case ast.OpDiv:
		if rf == 0 {
			return nil, errDivisionByZero
		}
		return runtime.FloatValue{Val: math.Floor(lf / rf)}, nil
	}
	return nil, operandError(op, left, right)
}

// floorDiv rounds the quotient toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// elementwise applies the scalar operator op at every aligned leaf of two
// sequences. The result has the container kind of left.
func elementwise(op string, left, right runtime.Value) (runtime.Value, error) {
	ls, lSeq := left.(runtime.Sequence)
	rs, rSeq := right.(runtime.Sequence)
	if !lSeq && !rSeq {
		return scalarArithmetic(op, left, right)
	}
	if !lSeq || !rSeq {
		return nil, operandError("."+op, left, right)
	}
	n := ls.Len()
	if rs.Len() < n {
		n = rs.Len()
	}
	elems := make([]runtime.Value, n)
	for idx := 0; idx < n; idx++ {
		l, _ := ls.At(idx)
		r, _ := rs.At(idx)
		val, err := elementwise(op, l, r)
		if err != nil {
			return nil, err
		}
		elems[idx] = val
	}
	if _, ok := left.(*runtime.MatrixValue); ok {
		rows := make([]*runtime.VectorValue, n)
		for idx, el := range elems {
			row, ok := el.(*runtime.VectorValue)
			if !ok {
				return nil, operandError("."+op, left, right)
			}
			rows[idx] = row
		}
		return runtime.NewMatrix(rows), nil
	}
	return runtime.NewVector(elems), nil
}

// matrixMultiply returns a rows(left)×cols(right) matrix whose cells are the
// dot products of left's rows with right's columns.
func matrixMultiply(left, right runtime.Value) (runtime.Value, error) {
	l, lok := left.(*runtime.MatrixValue)
	r, rok := right.(*runtime.MatrixValue)
	if !lok || !rok {
		return nil, operandError(ast.OpMul, left, right)
	}
	cols := 0
	if r.Len() > 0 {
		cols = r.Rows[0].Len()
	}
	rt, err := transpose(r)
	if err != nil {
		return nil, err
	}
	result := make([]*runtime.VectorValue, l.Len())
	for i, row := range l.Rows {
		cells := make([]runtime.Value, cols)
		for j := 0; j < cols; j++ {
			var sum runtime.Value = runtime.IntValue{Val: 0}
			column := rt.Rows[j]
			n := row.Len()
			if column.Len() < n {
				n = column.Len()
			}
			for k := 0; k < n; k++ {
				product, err := scalarArithmetic(ast.OpMul, row.Elements[k], column.Elements[k])
				if err != nil {
					return nil, err
				}
				sum, err = scalarArithmetic(ast.OpAdd, sum, product)
				if err != nil {
					return nil, err
				}
			}
			cells[j] = sum
		}
		result[i] = runtime.NewVector(cells)
	}
	return runtime.NewMatrix(result), nil
}

// transpose reads source[row][col] into result[col][row]. Rows must share
// one length.
func transpose(m *runtime.MatrixValue) (*runtime.MatrixValue, error) {
	if m.Len() == 0 {
		return runtime.NewMatrix(nil), nil
	}
	cols := m.Rows[0].Len()
	for _, row := range m.Rows {
		if row.Len() != cols {
			return nil, fmt.Errorf("cannot perform %s on a matrix with rows of different lengths", ast.UnaryTranspose)
		}
	}
	return runtime.NewFilledMatrix(cols, m.Len(), func(i, j int) runtime.Value {
		return runtime.Clone(m.Rows[j].Elements[i])
	}), nil
}

func applyUnary(op ast.UnaryOperator, operand runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.UnaryNegate:
		return negate(operand)
	case ast.UnaryTranspose:
		m, ok := operand.(*runtime.MatrixValue)
		if !ok {
			return nil, fmt.Errorf("cannot perform %s on %s", op, kindName(operand))
		}
		return transpose(m)
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", op)
	}
}

// negate flips the sign of a scalar or of every leaf of a sequence.
func negate(v runtime.Value) (runtime.Value, error) {
	switch val := v.(type) {
	case *runtime.VectorValue:
		elems := make([]runtime.Value, val.Len())
		for i, el := range val.Elements {
			neg, err := negate(el)
			if err != nil {
				return nil, err
			}
			elems[i] = neg
		}
		return runtime.NewVector(elems), nil
	case *runtime.MatrixValue:
		rows := make([]*runtime.VectorValue, val.Len())
		for i, row := range val.Rows {
			neg, err := negate(row)
			if err != nil {
				return nil, err
			}
			rows[i] = neg.(*runtime.VectorValue)
		}
		return runtime.NewMatrix(rows), nil
	}
	i, f, isFloat, ok := numeric(v)
	if !ok {
		return nil, fmt.Errorf("cannot perform %s on %s", ast.UnaryNegate, kindName(v))
	}
	if isFloat {
		return runtime.FloatValue{Val: -f}, nil
	}
	return runtime.IntValue{Val: -i}, nil
}

// compareValues applies a relational operator. Numbers compare by value,
// strings lexically, and `==`/`!=` also compare sequences structurally.
func compareValues(op string, left, right runtime.Value) (bool, error) {
	li, lf, lFloat, lok := numeric(left)
	ri, rf, rFloat, rok := numeric(right)
	if lok && rok {
		if !lFloat && !rFloat {
			return orderResult(op, compareInts(li, ri))
		}
		if math.IsNaN(lf) || math.IsNaN(rf) {
			return op == "!=", nil
		}
		return orderResult(op, compareFloats(lf, rf))
	}
	if ls, ok := left.(runtime.StringValue); ok {
		if rs, ok := right.(runtime.StringValue); ok {
			return orderResult(op, compareStrings(ls.Val, rs.Val))
		}
	}
	switch op {
	case "==":
		return valuesEqual(left, right), nil
	case "!=":
		return !valuesEqual(left, right), nil
	}
	return false, fmt.Errorf("cannot compare %s and %s with %s", kindName(left), kindName(right), op)
}

func orderResult(op string, cmp int) (bool, error) {
	switch op {
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	case "==":
		return cmp == 0, nil
	case "!=":
		return cmp != 0, nil
	default:
		return false, fmt.Errorf("unsupported comparison operator %s", op)
	}
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func valuesEqual(left, right runtime.Value) bool {
	if _, lf, _, lok := numeric(left); lok {
		if _, rf, _, rok := numeric(right); rok {
			return lf == rf
		}
		return false
	}
	ls, lSeq := left.(runtime.Sequence)
	rs, rSeq := right.(runtime.Sequence)
	if lSeq && rSeq {
		if ls.Kind() != rs.Kind() || ls.Len() != rs.Len() {
			return false
		}
		for i := 0; i < ls.Len(); i++ {
			l, _ := ls.At(i)
			r, _ := rs.At(i)
			if !valuesEqual(l, r) {
				return false
			}
		}
		return true
	}
	switch l := left.(type) {
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		return ok && l.Val == r.Val
	case runtime.NoneValue:
		_, ok := right.(runtime.NoneValue)
		return ok
	default:
		return false
	}
}

// isTruthy decides conditions: booleans as-is, non-zero numbers, and
// non-empty strings and sequences are true.
func isTruthy(v runtime.Value) bool {
	switch val := v.(type) {
	case runtime.BoolValue:
		return val.Val
	case runtime.IntValue:
		return val.Val != 0
	case runtime.FloatValue:
		return val.Val != 0
	case runtime.StringValue:
		return val.Val != ""
	case runtime.Sequence:
		return val.Len() > 0
	default:
		return false
	}
}
