package interpreter

import (
	"fmt"

	"matlang/interpreter-go/pkg/ast"
	"matlang/interpreter-go/pkg/typechecker"
)

// ProgramEvaluationOptions configures EvaluateProgram behaviour.
type ProgramEvaluationOptions struct {
	// SkipTypecheck bypasses the checker and executes the program directly.
	SkipTypecheck bool
}

// EvaluateProgram checks program and, when no diagnostics were recorded,
// executes it. Diagnostics are returned without executing anything. Top-level
// bindings of a checked program that failed to check or to run are rolled back.
func (i *Interpreter) EvaluateProgram(program *ast.Instructions, opts ProgramEvaluationOptions) (ProgramResult, []typechecker.Diagnostic, error) {
	if program == nil {
		return ProgramResult{}, nil, fmt.Errorf("interpreter: program is nil")
	}
	if !opts.SkipTypecheck {
		diags, err := i.checker.CheckProgram(program)
		if err != nil {
			return ProgramResult{}, nil, err
		}
		if len(diags) > 0 {
			i.checker.Rollback()
			return ProgramResult{}, diags, nil
		}
	}
	result, err := i.ExecuteProgram(program)
	if err != nil && !opts.SkipTypecheck {
		i.checker.Rollback()
	}
	return result, nil, err
}
