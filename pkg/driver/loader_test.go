package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"matlang/interpreter-go/pkg/parser"
)

func TestLoadProgramFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.m")
	if err := os.WriteFile(path, []byte("a = 1;\nprint a;\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	program, err := LoadProgram(path, nil)
	if err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	if len(program.Nodes) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Nodes))
	}
}

func TestLoadProgramFromStdin(t *testing.T) {
	src, err := ReadSource(StdinPath, strings.NewReader("print 1;"))
	if err != nil {
		t.Fatalf("ReadSource: %v", err)
	}
	if src.Path != "<stdin>" {
		t.Fatalf("Path = %q", src.Path)
	}
	if _, err := src.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestLoadProgramSyntaxError(t *testing.T) {
	_, err := LoadProgram(StdinPath, strings.NewReader("a = ;"))
	var syntaxErr *parser.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if syntaxErr.Line != 1 {
		t.Fatalf("Line = %d, want 1", syntaxErr.Line)
	}
	if !strings.HasPrefix(err.Error(), "<stdin>: ") {
		t.Fatalf("expected path prefix, got %q", err.Error())
	}
}

func TestLoadProgramMissingFile(t *testing.T) {
	_, err := LoadProgram(filepath.Join(t.TempDir(), "missing.m"), nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}
