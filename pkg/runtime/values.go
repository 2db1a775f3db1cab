package runtime

import (
	"fmt"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindBool
	KindVector
	KindMatrix
	KindNone
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	case KindNone:
		return "none"
	case KindReference:
		return "reference"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntValue struct {
	Val int64
}

func (v IntValue) Kind() Kind { return KindInt }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// BoolValue is produced by comparisons.
type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// NoneValue marks an absent value: a bare `return` or an unpopulated slot.
type NoneValue struct{}

func (NoneValue) Kind() Kind { return KindNone }

//-----------------------------------------------------------------------------
// Sequences
//-----------------------------------------------------------------------------

// Sequence is implemented by the indexable containers.
type Sequence interface {
	Value
	Len() int
	At(i int) (Value, error)
	SetAt(i int, value Value) error
}

type VectorValue struct {
	Elements []Value
}

func NewVector(elements []Value) *VectorValue {
	return &VectorValue{Elements: elements}
}

func (v *VectorValue) Kind() Kind { return KindVector }
func (v *VectorValue) Len() int   { return len(v.Elements) }

func (v *VectorValue) At(i int) (Value, error) {
	if i < 0 || i >= len(v.Elements) {
		return nil, indexError(i, len(v.Elements))
	}
	return v.Elements[i], nil
}

func (v *VectorValue) SetAt(i int, value Value) error {
	if i < 0 || i >= len(v.Elements) {
		return indexError(i, len(v.Elements))
	}
	v.Elements[i] = value
	return nil
}

// MatrixValue is an ordered list of row vectors.
type MatrixValue struct {
	Rows []*VectorValue
}

func NewMatrix(rows []*VectorValue) *MatrixValue {
	return &MatrixValue{Rows: rows}
}

func (m *MatrixValue) Kind() Kind { return KindMatrix }
func (m *MatrixValue) Len() int   { return len(m.Rows) }

func (m *MatrixValue) At(i int) (Value, error) {
	if i < 0 || i >= len(m.Rows) {
		return nil, indexError(i, len(m.Rows))
	}
	return m.Rows[i], nil
}

func (m *MatrixValue) SetAt(i int, value Value) error {
	if i < 0 || i >= len(m.Rows) {
		return indexError(i, len(m.Rows))
	}
	row, ok := value.(*VectorValue)
	if !ok {
		return fmt.Errorf("cannot store %s as a matrix row", kindOf(value))
	}
	m.Rows[i] = row
	return nil
}

// Shape returns the row count and the length of the shortest row.
func (m *MatrixValue) Shape() (rows, cols int) {
	if len(m.Rows) == 0 {
		return 0, 0
	}
	cols = m.Rows[0].Len()
	for _, row := range m.Rows[1:] {
		if row.Len() < cols {
			cols = row.Len()
		}
	}
	return len(m.Rows), cols
}

// NewFilledMatrix builds a rows×cols matrix whose cells come from fill.
func NewFilledMatrix(rows, cols int, fill func(i, j int) Value) *MatrixValue {
	out := make([]*VectorValue, rows)
	for i := 0; i < rows; i++ {
		elems := make([]Value, cols)
		for j := 0; j < cols; j++ {
			elems[j] = fill(i, j)
		}
		out[i] = NewVector(elems)
	}
	return NewMatrix(out)
}

//-----------------------------------------------------------------------------
// References
//-----------------------------------------------------------------------------

// ReferenceValue addresses a binding, optionally a slot inside it. It only
// exists while an assignment target or loop iterator is being resolved.
type ReferenceValue struct {
	Name   string
	Coords []int
}

func (ReferenceValue) Kind() Kind { return KindReference }

// IsPlain reports whether the reference names a whole binding.
func (r ReferenceValue) IsPlain() bool { return len(r.Coords) == 0 }

func (r ReferenceValue) String() string {
	if r.IsPlain() {
		return r.Name
	}
	return fmt.Sprintf("%s%v", r.Name, r.Coords)
}

//-----------------------------------------------------------------------------
// Helpers
//-----------------------------------------------------------------------------

// Clone deep-copies sequences so bindings never share mutable storage.
func Clone(v Value) Value {
	switch val := v.(type) {
	case *VectorValue:
		return cloneVector(val)
	case *MatrixValue:
		rows := make([]*VectorValue, len(val.Rows))
		for i, row := range val.Rows {
			rows[i] = cloneVector(row)
		}
		return NewMatrix(rows)
	default:
		return v
	}
}

func cloneVector(v *VectorValue) *VectorValue {
	if v == nil {
		return nil
	}
	elems := make([]Value, len(v.Elements))
	for i, el := range v.Elements {
		elems[i] = Clone(el)
	}
	return NewVector(elems)
}

// IsNumeric reports whether v can take part in scalar arithmetic.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case IntValue, FloatValue, BoolValue:
		return true
	default:
		return false
	}
}

func kindOf(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind().String()
}
