package typechecker

import (
	"matlang/interpreter-go/pkg/ast"
)

// checkReference validates `container[c1, ..., ck]`. A full index yields a
// float element; a partial one yields a vector sized by the container's last
// axis. Any failure yields undefined.
func (c *Checker) checkReference(ref *ast.Reference) ([]Diagnostic, Type) {
	var (
		diags     []Diagnostic
		container Type
	)
	switch target := ref.Container.(type) {
	case *ast.Variable:
		diags, container = c.checkVariable(target, false)
	case *ast.Reference:
		diags, container = c.checkReference(target)
	default:
		diags, container = c.checkExpression(ref.Container)
	}
	if container.IsUndefined() {
		return diags, Undefined(container.Name)
	}

	if len(ref.Coords) > container.Rank() {
		diags = append(diags, c.errorf(ref, "too many dimensions in vector reference"))
		return diags, Undefined(container.Name)
	}

	failed := false
	for _, coord := range ref.Coords {
		coordDiags, coordType := c.checkExpression(coord)
		diags = append(diags, coordDiags...)
		if coordType.Kind != KindInt {
			diags = append(diags, c.errorf(ref, "expected int as array coordinate, have %s", coordType.Kind))
			failed = true
		}
	}
	if failed {
		return diags, Undefined(container.Name)
	}

	for axis, coord := range ref.Coords {
		value, ok := constantInt(coord)
		size := container.Shape[axis]
		if !ok || size == UnknownSize {
			continue
		}
		if value < 0 || value >= int64(size) {
			diags = append(diags, c.errorf(ref, "reference %d out of bounds for size %d", value, size))
			failed = true
		}
	}
	if failed {
		return diags, Undefined(container.Name)
	}

	if len(ref.Coords) == container.Rank() {
		return diags, Float()
	}
	return diags, Vector(container.Shape[container.Rank()-1])
}
