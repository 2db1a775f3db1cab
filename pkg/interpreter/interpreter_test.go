package interpreter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"matlang/interpreter-go/pkg/ast"
	"matlang/interpreter-go/pkg/parser"
	"matlang/interpreter-go/pkg/runtime"
)

func mustParse(t *testing.T, source string) *ast.Instructions {
	t.Helper()
	program, err := parser.ParseProgram([]byte(source))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return program
}

// runSource executes source without checking it and returns what it printed.
func runSource(t *testing.T, source string) (string, ProgramResult) {
	t.Helper()
	var out bytes.Buffer
	interp := NewWithOptions(Options{Stdout: &out})
	result, err := interp.ExecuteProgram(mustParse(t, source))
	if err != nil {
		t.Fatalf("ExecuteProgram: %v", err)
	}
	return out.String(), result
}

func expectOutput(t *testing.T, source, want string) {
	t.Helper()
	got, _ := runSource(t, source)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func runError(t *testing.T, source string) *RuntimeError {
	t.Helper()
	interp := NewWithOptions(Options{Stdout: &bytes.Buffer{}})
	_, err := interp.ExecuteProgram(mustParse(t, source))
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	return rtErr
}

func TestInterpreterCompoundAssignment(t *testing.T) {
	expectOutput(t, "a = 5; a += 3; print a;", "8\n")
	expectOutput(t, "a = 7; a -= 2; a *= 3; a /= 4; print a;", "3\n")
	expectOutput(t, "a = 7.0; a /= 2; print a;", "3.0\n")
}

func TestInterpreterIntegerDivisionFloors(t *testing.T) {
	expectOutput(t, "print 7 / 2, -7 / 2, 7 / -2;", "3 -4 -4\n")
}

func TestInterpreterPrintsSequences(t *testing.T) {
	expectOutput(t, "m = [[1,2];[3,4]]; print m';", "[[1, 3]\n [2, 4]]\n")
	expectOutput(t, "v = [1, 2.5, \"s\"]; print v, 3;", "[1\n 2.5\n s] 3\n")
	expectOutput(t, "print [];", "[]\n")
}

func TestInterpreterPrintsFloatsWithFraction(t *testing.T) {
	expectOutput(t, "print 2.0, 0.5, 1e3, -3.;", "2.0 0.5 1000.0 -3.0\n")
	expectOutput(t, "print 1000000.0, 1234567.5, 0.0001;", "1000000.0 1234567.5 0.0001\n")
	expectOutput(t, "print 0.00001, 1e16, 2.5e20;", "1e-05 1e+16 2.5e+20\n")
}

func TestInterpreterDoubleTransposeIsIdentity(t *testing.T) {
	expectOutput(t, "m = [1, 2, 3; 4, 5, 6]; print m'' == m;", "True\n")
}

func TestInterpreterBuiltins(t *testing.T) {
	expectOutput(t, "print eye(2);", "[[1, 0]\n [0, 1]]\n")
	expectOutput(t, "print zeros(2, 3);", "[[0, 0, 0]\n [0, 0, 0]]\n")
	expectOutput(t, "print ones(1);", "[[1]]\n")
	expectOutput(t, "print eye(2, 3);", "[[1, 0, 0]\n [0, 1, 0]]\n")
}

func TestInterpreterMatrixMultiplication(t *testing.T) {
	expectOutput(t, "a = [1, 2; 3, 4]; b = [5, 6; 7, 8]; print a * b;", "[[19, 22]\n [43, 50]]\n")
	expectOutput(t, "a = ones(2, 3); b = ones(3, 4); print a * b;",
		"[[3, 3, 3, 3]\n [3, 3, 3, 3]]\n")
}

func TestInterpreterElementwiseOperators(t *testing.T) {
	expectOutput(t, "print [1, 2, 3] .* [4, 5, 6];", "[4\n 10\n 18]\n")
	expectOutput(t, "print [1, 2; 3, 4] .+ [10, 20; 30, 40];", "[[11, 22]\n [33, 44]]\n")
	expectOutput(t, "print [6, 9] ./ [4, 2.0];", "[1\n 4.0]\n")
}

func TestInterpreterConcatenation(t *testing.T) {
	expectOutput(t, `print [1, 2] + [3], "ab" + "cd";`, "[1\n 2\n 3] abcd\n")
	expectOutput(t, "print [1, 2; 3, 4] + [5, 6; 7, 8];", "[[1, 2]\n [3, 4]\n [5, 6]\n [7, 8]]\n")
}

func TestInterpreterNegation(t *testing.T) {
	expectOutput(t, "m = [1, -2; 3, 4]; print -m;", "[[-1, 2]\n [-3, -4]]\n")
}

func TestInterpreterReferences(t *testing.T) {
	expectOutput(t, "m = zeros(2, 3); m[1, 2] = 7; m[0] = [1, 2, 3]; print m, m[1][2];",
		"[[1, 2, 3]\n [0, 0, 7]] 7\n")
	expectOutput(t, "v = [1, 2, 3]; v[0] += 10; print v[0];", "11\n")
}

func TestInterpreterAssignmentCopiesValues(t *testing.T) {
	expectOutput(t, "a = [1, 2]; b = a; b[0] = 9; print a[0], b[0];", "1 9\n")
}

func TestInterpreterBlockAssignmentShadows(t *testing.T) {
	expectOutput(t, "x = 1; { x = 2; print x; } print x;", "2\n1\n")
}

func TestInterpreterReferenceWriteReachesOuterFrame(t *testing.T) {
	expectOutput(t, "v = [1, 2]; { v[1] = 5; } print v[1];", "5\n")
}

func TestInterpreterForLoopIncrementIgnoresBodyShadow(t *testing.T) {
	// The body block shadows i; the increment still advances the loop's own binding.
	expectOutput(t, "for i = 0:3 { i = 10; print i; }", "10\n10\n10\n")
}

func TestInterpreterForLoopUsesRangeEvaluatedOnce(t *testing.T) {
	expectOutput(t, "n = 3; for i = 0:n { n = 0; print i; }", "0\n1\n2\n")
}

func TestInterpreterForLoopVariableDoesNotEscape(t *testing.T) {
	interp := NewWithOptions(Options{Stdout: &bytes.Buffer{}})
	if _, err := interp.ExecuteProgram(mustParse(t, "for i = 0:2 print i;")); err != nil {
		t.Fatalf("ExecuteProgram: %v", err)
	}
	if _, err := interp.Memory().Get("i"); !errors.Is(err, runtime.ErrUndefinedVariable) {
		t.Fatalf("expected i to be gone, got %v", err)
	}
}

func TestInterpreterBreakAndContinueAffectInnermostLoop(t *testing.T) {
	source := `
for i = 0:3 {
    for j = 0:10 {
        if (j == 1) continue;
        if (j > 2) break;
        print i, j;
    }
}
`
	expectOutput(t, source, "0 0\n0 2\n1 0\n1 2\n2 0\n2 2\n")
}

func TestInterpreterCompoundAssignmentInBlockShadows(t *testing.T) {
	expectOutput(t, "a = 1; { a += 1; print a; } print a;", "2\n1\n")
}

func TestInterpreterWhileLoop(t *testing.T) {
	expectOutput(t, "a = 1; while (a < 20) a *= 3; print a;", "27\n")
}

func TestInterpreterIfElse(t *testing.T) {
	expectOutput(t, `x = 3; if (x >= 3) print "big"; else print "small";`, "big\n")
	expectOutput(t, `if (0) print "a"; else if (1) print "b"; else print "c";`, "b\n")
}

func TestInterpreterComparisonsProduceBooleans(t *testing.T) {
	expectOutput(t, `print 1 < 2, 2.5 <= 2, "a" != "b", [1, 2] == [1, 2];`, "True False True True\n")
}

func TestInterpreterReturnStopsProgram(t *testing.T) {
	out, result := runSource(t, "print 1; return 2 * 3; print 2;")
	if out != "1\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if !result.Returned {
		t.Fatalf("expected program to return")
	}
	if diff := cmp.Diff(runtime.IntValue{Val: 6}, result.Value); diff != "" {
		t.Fatalf("returned value mismatch (-want +got):\n%s", diff)
	}

	_, bare := runSource(t, "while (1) { return; }")
	if !bare.Returned || bare.Value.Kind() != runtime.KindNone {
		t.Fatalf("expected bare return of none, got %#v", bare)
	}
}

func TestInterpreterProgramWithoutReturn(t *testing.T) {
	_, result := runSource(t, "x = 1;")
	if result.Returned {
		t.Fatalf("expected no return, got %#v", result)
	}
}

func TestInterpreterDivisionByZero(t *testing.T) {
	rtErr := runError(t, "a = 1;\nb = a / 0;")
	if !errors.Is(rtErr, errDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", rtErr)
	}
	if rtErr.Error() != "Runtime error in line 2: division by zero" {
		t.Fatalf("unexpected message %q", rtErr.Error())
	}
}

func TestInterpreterIndexOutOfRange(t *testing.T) {
	rtErr := runError(t, "v = [1, 2];\ni = 5;\nprint v[i];")
	if !errors.Is(rtErr, runtime.ErrIndexOutOfRange) {
		t.Fatalf("expected index error, got %v", rtErr)
	}
	if rtErr.Line() != 3 {
		t.Fatalf("expected line 3, got %d", rtErr.Line())
	}
}

func TestInterpreterUndefinedVariableAtRuntime(t *testing.T) {
	rtErr := runError(t, "print missing;")
	if !errors.Is(rtErr, runtime.ErrUndefinedVariable) {
		t.Fatalf("expected undefined variable, got %v", rtErr)
	}
}

func TestInterpreterFlowKeywordOutsideLoop(t *testing.T) {
	rtErr := runError(t, "break;")
	if rtErr.Message != "break outside loop" {
		t.Fatalf("unexpected message %q", rtErr.Message)
	}
}

func TestInterpreterMemoryPersistsAcrossPrograms(t *testing.T) {
	var out bytes.Buffer
	interp := NewWithOptions(Options{Stdout: &out})
	for _, source := range []string{"a = [1, 2];", "a[1] = 4;", "print a;"} {
		if _, err := interp.ExecuteProgram(mustParse(t, source)); err != nil {
			t.Fatalf("ExecuteProgram(%q): %v", source, err)
		}
	}
	if out.String() != "[1\n 4]\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if depth := interp.Memory().Depth(); depth != 1 {
		t.Fatalf("expected memory depth 1, got %d", depth)
	}
	interp.Reset()
	if keys := interp.Memory().Keys(); len(keys) != 0 {
		t.Fatalf("expected empty memory after reset, got %v", keys)
	}
}

func TestInterpreterErrorRestoresMemoryDepth(t *testing.T) {
	interp := NewWithOptions(Options{Stdout: &bytes.Buffer{}})
	_, err := interp.ExecuteProgram(mustParse(t, "for i = 0:3 { { x = 1 / 0; } }"))
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	if depth := interp.Memory().Depth(); depth != 1 {
		t.Fatalf("expected memory depth 1, got %d", depth)
	}
}

func TestValueToString(t *testing.T) {
	cases := []struct {
		value runtime.Value
		want  string
	}{
		{runtime.IntValue{Val: -4}, "-4"},
		{runtime.FloatValue{Val: 1.25}, "1.25"},
		{runtime.FloatValue{Val: 3}, "3.0"},
		{runtime.StringValue{Val: "hi"}, "hi"},
		{runtime.FloatValue{Val: 1e6}, "1000000.0"},
		{runtime.FloatValue{Val: -0.25e-6}, "-2.5e-07"},
		{runtime.BoolValue{Val: true}, "True"},
		{runtime.BoolValue{Val: false}, "False"},
		{runtime.NoneValue{}, "None"},
		{runtime.NewVector([]runtime.Value{runtime.IntValue{Val: 1}, runtime.FloatValue{Val: 2}}), "[1, 2.0]"},
	}
	for _, tc := range cases {
		if got := ValueToString(tc.value); got != tc.want {
			t.Fatalf("ValueToString(%#v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
