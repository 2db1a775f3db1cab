package parser_test

import (
	"errors"
	"testing"

	"matlang/interpreter-go/pkg/ast"
	"matlang/interpreter-go/pkg/parser"
)

func mustParse(t *testing.T, source string) *ast.Instructions {
	t.Helper()
	program, err := parser.ParseProgram([]byte(source))
	if err != nil {
		t.Fatalf("ParseProgram(%q): %v", source, err)
	}
	return program
}

func assertSameTree(t *testing.T, source string, want ast.Node) {
	t.Helper()
	got := ast.TreeString(mustParse(t, source))
	expected := ast.TreeString(want)
	if got != expected {
		t.Fatalf("tree mismatch for %q\n--- got ---\n%s--- want ---\n%s", source, got, expected)
	}
}

func TestParseAssignmentsAndPrint(t *testing.T) {
	assertSameTree(t, `a = 5; a += 3; print a, "x";`, ast.Prog(
		ast.Assign(ast.ID("a"), ast.Int(5)),
		ast.AssignOp(ast.AssignmentAdd, ast.ID("a"), ast.Int(3)),
		ast.Print(ast.ID("a"), ast.Str("x")),
	))
}

func TestParsePrecedence(t *testing.T) {
	// comparison < + - < .+ .- < * / < .* ./ < unary minus < transpose
	assertSameTree(t, `x = a + b .+ c * d .* -e';`, ast.Prog(
		ast.Assign(ast.ID("x"),
			ast.Bin(ast.OpAdd, ast.ID("a"),
				ast.Bin(ast.OpDotAdd, ast.ID("b"),
					ast.Bin(ast.OpMul, ast.ID("c"),
						ast.Bin(ast.OpDotMul, ast.ID("d"),
							ast.Neg(ast.Transpose(ast.ID("e")))))))),
	))
	assertSameTree(t, `x = a - b - c;`, ast.Prog(
		ast.Assign(ast.ID("x"), ast.Bin(ast.OpSub, ast.Bin(ast.OpSub, ast.ID("a"), ast.ID("b")), ast.ID("c"))),
	))
	assertSameTree(t, `if (a + 1 <= b * 2) print 1;`, ast.Prog(
		ast.If(ast.Cmp("<=", ast.Bin(ast.OpAdd, ast.ID("a"), ast.Int(1)), ast.Bin(ast.OpMul, ast.ID("b"), ast.Int(2))),
			ast.Print(ast.Int(1)), nil),
	))
}

func TestParseMatrixForms(t *testing.T) {
	want := ast.Prog(ast.Assign(ast.ID("m"), ast.IntMat([]int64{1, 2}, []int64{3, 4})))
	assertSameTree(t, `m = [[1,2];[3,4]];`, want)
	assertSameTree(t, `m = [1,2;3,4];`, want)
	assertSameTree(t, `v = [1, 2, 3];`, ast.Prog(ast.Assign(ast.ID("v"), ast.Vec(ast.Int(1), ast.Int(2), ast.Int(3)))))
	assertSameTree(t, `v = [];`, ast.Prog(ast.Assign(ast.ID("v"), ast.Vec())))
}

func TestParseReferencesAndBuiltins(t *testing.T) {
	assertSameTree(t, `a[1, 2] = m[0][1] + eye(3);`, ast.Prog(
		ast.Assign(
			ast.Ref(ast.ID("a"), ast.Int(1), ast.Int(2)),
			ast.Bin(ast.OpAdd,
				ast.Ref(ast.Ref(ast.ID("m"), ast.Int(0)), ast.Int(1)),
				ast.Call("eye", ast.Int(3)))),
	))
}

func TestParseControlFlow(t *testing.T) {
	source := `
for i = 1:n {
    while (i < 10) {
        i += 1;
        if (i == 5) break; else continue;
    }
}
return;
`
	assertSameTree(t, source, ast.Prog(
		ast.For("i", ast.Int(1), ast.ID("n"), ast.Blk(
			ast.While(ast.Cmp("<", ast.ID("i"), ast.Int(10)), ast.Blk(
				ast.AssignOp(ast.AssignmentAdd, ast.ID("i"), ast.Int(1)),
				ast.If(ast.Cmp("==", ast.ID("i"), ast.Int(5)), ast.Break(), ast.Continue()),
			)),
		)),
		ast.Ret(nil),
	))
}

func TestParseDanglingElse(t *testing.T) {
	assertSameTree(t, `if (a) if (b) print 1; else print 2;`, ast.Prog(
		ast.If(ast.ID("a"), ast.If(ast.ID("b"), ast.Print(ast.Int(1)), ast.Print(ast.Int(2))), nil),
	))
}

func TestParseRecordsLines(t *testing.T) {
	program := mustParse(t, "a = 1;\n\nprint a;\n")
	if len(program.Nodes) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Nodes))
	}
	if line := ast.Line(program.Nodes[0]); line != 1 {
		t.Fatalf("expected assignment on line 1, got %d", line)
	}
	if line := ast.Line(program.Nodes[1]); line != 3 {
		t.Fatalf("expected print on line 3, got %d", line)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	cases := map[string]struct {
		source string
		line   int
	}{
		"missing semicolon": {source: "a = 1\nb = 2;", line: 2},
		"chained compare":   {source: "if (a < b < c) print 1;", line: 1},
		"bad assignment":    {source: "5 = a;", line: 1},
		"unclosed block":    {source: "{ a = 1;", line: 1},
		"illegal char":      {source: "a = @;", line: 1},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parser.ParseProgram([]byte(tc.source))
			if err == nil {
				t.Fatalf("expected syntax error")
			}
			var syntaxErr *parser.SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}
			if syntaxErr.Line != tc.line {
				t.Fatalf("expected error on line %d, got %d (%v)", tc.line, syntaxErr.Line, err)
			}
		})
	}
}

func TestIsIncomplete(t *testing.T) {
	for source, want := range map[string]bool{
		"for i = 0:3 {":  true,
		"print 1":        true,
		"x = [1, 2":      true,
		"a = ;":          false,
		"x = \"open;":    false,
		"print 1; b = 2": true,
	} {
		_, err := parser.ParseProgram([]byte(source))
		if err == nil {
			t.Fatalf("expected syntax error for %q", source)
		}
		if got := parser.IsIncomplete(err); got != want {
			t.Fatalf("IsIncomplete(%q) = %v, want %v (%v)", source, got, want, err)
		}
	}
}
