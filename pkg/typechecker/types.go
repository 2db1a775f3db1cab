package typechecker

import (
	"strconv"
	"strings"
)

// TypeKind is the tag of a static type descriptor.
type TypeKind string

const (
	KindInt       TypeKind = "int"
	KindFloat     TypeKind = "float"
	KindString    TypeKind = "string"
	KindVector    TypeKind = "vector"
	KindMatrix    TypeKind = "matrix"
	KindUndefined TypeKind = "undefined"
)

// UnknownSize marks an axis whose size is not a compile-time constant.
// Bound and dimension checks skip such axes.
const UnknownSize = -1

// Type describes a value statically: its kind, the per-axis sizes for
// vectors and matrices, and the name it is bound to, if any.
type Type struct {
	Kind  TypeKind
	Shape []int
	Name  string
}

func Int() Type    { return Type{Kind: KindInt} }
func Float() Type  { return Type{Kind: KindFloat} }
func String() Type { return Type{Kind: KindString} }

func Vector(size int) Type {
	return Type{Kind: KindVector, Shape: []int{size}}
}

func Matrix(rows, cols int) Type {
	return Type{Kind: KindMatrix, Shape: []int{rows, cols}}
}

// Undefined is the failure placeholder; name records the unresolved binding.
func Undefined(name string) Type {
	return Type{Kind: KindUndefined, Name: name}
}

func (t Type) IsUndefined() bool { return t.Kind == KindUndefined }

// Rank is the number of axes.
func (t Type) Rank() int { return len(t.Shape) }

func (t Type) IsNumeric() bool { return t.Kind == KindInt || t.Kind == KindFloat }

// Named returns a copy of t bound to name.
func (t Type) Named(name string) Type {
	return Type{Kind: t.Kind, Shape: copyShape(t.Shape), Name: name}
}

func (t Type) String() string {
	if len(t.Shape) == 0 {
		return string(t.Kind)
	}
	return string(t.Kind) + formatShape(t.Shape)
}

func copyShape(shape []int) []int {
	if shape == nil {
		return nil
	}
	out := make([]int, len(shape))
	copy(out, shape)
	return out
}

func formatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, size := range shape {
		if size == UnknownSize {
			parts[i] = "?"
		} else {
			parts[i] = strconv.Itoa(size)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
