package interpreter

import (
	"math"
	"strconv"
	"strings"

	"matlang/interpreter-go/pkg/runtime"
)

// ValueToString renders a value the way nested sequence elements and
// returned values print: sequences as `[a, b]`, floats with a fraction.
func ValueToString(v runtime.Value) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case runtime.IntValue:
		return strconv.FormatInt(val.Val, 10)
	case runtime.FloatValue:
		return formatFloat(val.Val)
	case runtime.StringValue:
		return val.Val
	case runtime.BoolValue:
		if val.Val {
			return "True"
		}
		return "False"
	case runtime.NoneValue:
		return "None"
	case runtime.ReferenceValue:
		return val.String()
	case runtime.Sequence:
		return "[" + strings.Join(elementStrings(val), ", ") + "]"
	default:
		return "<" + v.Kind().String() + ">"
	}
}

// printArgument renders one print argument. A sequence prints its elements
// one per line inside brackets.
func printArgument(v runtime.Value) string {
	if seq, ok := v.(runtime.Sequence); ok {
		return "[" + strings.Join(elementStrings(seq), "\n ") + "]"
	}
	return ValueToString(v)
}

func elementStrings(seq runtime.Sequence) []string {
	out := make([]string, seq.Len())
	for i := range out {
		el, _ := seq.At(i)
		out[i] = ValueToString(el)
	}
	return out
}

// formatFloat prints the shortest round-tripping digits, in positional form
// with at least one fractional digit for magnitudes in [1e-4, 1e16) and in
// exponent form outside it.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
