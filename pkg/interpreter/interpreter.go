package interpreter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"matlang/interpreter-go/pkg/ast"
	"matlang/interpreter-go/pkg/runtime"
	"matlang/interpreter-go/pkg/typechecker"
)

// Interpreter executes checked matlang programs against a memory stack that
// persists between ExecuteProgram calls.
type Interpreter struct {
	memory  *runtime.MemoryStack
	checker *typechecker.Checker
	stdout  io.Writer
	logger  *slog.Logger
}

// Options configures an Interpreter. Zero values select os.Stdout and a
// discarding logger.
type Options struct {
	Stdout io.Writer
	Logger *slog.Logger
}

// New returns an interpreter with one empty root frame.
func New() *Interpreter {
	return NewWithOptions(Options{})
}

// NewWithOptions returns an interpreter writing print output to opts.Stdout.
func NewWithOptions(opts Options) *Interpreter {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Interpreter{
		memory:  runtime.NewMemoryStack(),
		checker: typechecker.New(typechecker.WithLogger(logger)),
		stdout:  stdout,
		logger:  logger,
	}
}

// Memory exposes the interpreter's memory stack.
func (i *Interpreter) Memory() *runtime.MemoryStack {
	return i.memory
}

// Checker exposes the checker used by EvaluateProgram.
func (i *Interpreter) Checker() *typechecker.Checker {
	return i.checker
}

// Reset discards all bindings, static and dynamic.
func (i *Interpreter) Reset() {
	i.memory = runtime.NewMemoryStack()
	i.checker = typechecker.New(typechecker.WithLogger(i.logger))
}

// ProgramResult reports how a program finished. Returned is set when a
// top-level return unwound execution.
type ProgramResult struct {
	Returned bool
	Value    runtime.Value
}

// ExecuteProgram runs program without checking it.
func (i *Interpreter) ExecuteProgram(program *ast.Instructions) (ProgramResult, error) {
	if program == nil {
		return ProgramResult{}, fmt.Errorf("interpreter: program is nil")
	}
	depth := i.memory.Depth()
	defer i.memory.Truncate(depth)

	i.logger.Debug("executing program", "statements", len(program.Nodes))
	err := i.executeInstructions(program)
	if err == nil {
		return ProgramResult{}, nil
	}
	switch sig := err.(type) {
	case returnSignal:
		i.logger.Debug("program returned", "value", ValueToString(sig.value))
		return ProgramResult{Returned: true, Value: sig.value}, nil
	case breakSignal, continueSignal:
		return ProgramResult{}, &RuntimeError{Message: fmt.Sprintf("%s outside loop", sig.Error())}
	}
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		i.logger.Debug("runtime error", "line", rtErr.Line(), "message", rtErr.Message)
	}
	return ProgramResult{}, err
}

// RuntimeError is a failure raised while executing a program.
type RuntimeError struct {
	Message string
	Node    ast.Node
	Err     error
}

// Line returns the source line of the failing node, or 0 when unknown.
func (e *RuntimeError) Line() int {
	return ast.Line(e.Node)
}

func (e *RuntimeError) Error() string {
	if line := e.Line(); line > 0 {
		return fmt.Sprintf("Runtime error in line %d: %s", line, e.Message)
	}
	return "Runtime error: " + e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func runtimeErrorf(node ast.Node, format string, args ...any) error {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Node: node}
}

// wrapRuntime attaches node to err unless it already is a runtime error.
func wrapRuntime(node ast.Node, err error) error {
	if err == nil || isSignal(err) {
		return err
	}
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		if rtErr.Node == nil {
			rtErr.Node = node
		}
		return rtErr
	}
	return &RuntimeError{Message: err.Error(), Node: node, Err: err}
}
