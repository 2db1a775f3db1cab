package driver

import (
	"fmt"
	"io"
	"os"

	"matlang/interpreter-go/pkg/ast"
	"matlang/interpreter-go/pkg/parser"
)

// StdinPath selects standard input as the program source.
const StdinPath = "-"

// Source is a program read from disk or standard input.
type Source struct {
	Path string
	Text []byte
}

// ReadSource reads path, or stdin when path is StdinPath.
func ReadSource(path string, stdin io.Reader) (*Source, error) {
	if path == StdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return &Source{Path: "<stdin>", Text: data}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Source{Path: path, Text: data}, nil
}

// Parse parses the source into a program tree. Syntax errors keep their
// *parser.SyntaxError type for errors.As.
func (s *Source) Parse() (*ast.Instructions, error) {
	program, err := parser.ParseProgram(s.Text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return program, nil
}

// LoadProgram reads and parses path in one step.
func LoadProgram(path string, stdin io.Reader) (*ast.Instructions, error) {
	src, err := ReadSource(path, stdin)
	if err != nil {
		return nil, err
	}
	return src.Parse()
}
