package typechecker

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"matlang/interpreter-go/pkg/ast"
)

// Checker traverses matlang syntax trees and records diagnostics.
type Checker struct {
	scopes     *ScopeTable
	loopDepth  int
	checkpoint map[string]Type
	logger     *slog.Logger
}

// Diagnostic represents a static semantic error.
type Diagnostic struct {
	Message string
	Node    ast.Node
}

// Line returns the source line of the offending node.
func (d Diagnostic) Line() int {
	return ast.Line(d.Node)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("Error in line %d: %s", d.Line(), d.Message)
}

// FormatDiagnostics renders diagnostics one per line.
func FormatDiagnostics(diags []Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger routes debug output to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a checker instance with an empty root scope.
func New(opts ...Option) *Checker {
	c := &Checker{
		scopes: NewScopeTable(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckProgram walks the whole program and returns every diagnostic in the
// order it was found. Top-level bindings persist into later calls.
func (c *Checker) CheckProgram(program *ast.Instructions) ([]Diagnostic, error) {
	if program == nil {
		return nil, fmt.Errorf("typechecker: program is nil")
	}
	c.checkpoint = c.scopes.snapshotRoot()
	c.loopDepth = 0

	diagnostics := c.checkInstructions(program)
	c.logger.Debug("typecheck finished", "statements", len(program.Nodes), "diagnostics", len(diagnostics))
	return diagnostics, nil
}

// Rollback restores the top-level bindings recorded at the start of the last
// CheckProgram call.
func (c *Checker) Rollback() {
	if c.checkpoint == nil {
		return
	}
	c.scopes.restoreRoot(c.checkpoint)
	c.checkpoint = nil
}

// Lookup reports the top-level type bound to name.
func (c *Checker) Lookup(name string) (Type, bool) {
	return c.scopes.Lookup(name)
}

// Names lists the top-level bindings.
func (c *Checker) Names() []string {
	return c.scopes.Names()
}

func (c *Checker) errorf(node ast.Node, format string, args ...any) Diagnostic {
	return Diagnostic{Message: fmt.Sprintf(format, args...), Node: node}
}
