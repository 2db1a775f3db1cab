package interpreter

import (
	"fmt"
	"strings"

	"matlang/interpreter-go/pkg/ast"
	"matlang/interpreter-go/pkg/runtime"
)

func (i *Interpreter) executeInstructions(instructions *ast.Instructions) error {
	if instructions == nil {
		return nil
	}
	for _, stmt := range instructions.Nodes {
		if err := i.executeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case nil:
		return nil
	case *ast.Instructions:
		return i.executeInstructions(s)
	case *ast.Block:
		return i.executeBlock(s)
	case *ast.IfStatement:
		return i.executeIf(s)
	case *ast.WhileLoop:
		return i.executeWhileLoop(s)
	case *ast.ForLoop:
		return i.executeForLoop(s)
	case *ast.FlowKeyword:
		if s.Keyword == ast.FlowContinue {
			return continueSignal{}
		}
		return breakSignal{}
	case *ast.ReturnStatement:
		return i.executeReturn(s)
	case *ast.PrintStatement:
		return i.executePrint(s)
	case *ast.Assignment:
		return i.executeAssignment(s)
	default:
		return runtimeErrorf(stmt, "unsupported statement %s", stmt.NodeType())
	}
}

func (i *Interpreter) executeBlock(block *ast.Block) error {
	i.memory.Push()
	defer i.memory.Pop()
	return i.executeInstructions(block.Content)
}

func (i *Interpreter) executeIf(stmt *ast.IfStatement) error {
	cond, err := i.evaluateExpression(stmt.Condition)
	if err != nil {
		return err
	}
	if isTruthy(cond) {
		return i.executeStatement(stmt.Body)
	}
	if stmt.ElseBody != nil {
		return i.executeStatement(stmt.ElseBody)
	}
	return nil
}

// runLoopBody executes one iteration. done is set when the loop must stop,
// either by break or by a signal or error that belongs to an outer construct.
func (i *Interpreter) runLoopBody(body ast.Statement) (done bool, err error) {
	err = i.executeStatement(body)
	switch err.(type) {
	case nil, continueSignal:
		return false, nil
	case breakSignal:
		return true, nil
	default:
		return true, err
	}
}

func (i *Interpreter) executeWhileLoop(loop *ast.WhileLoop) error {
	for {
		cond, err := i.evaluateExpression(loop.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if done, err := i.runLoopBody(loop.Body); done {
			return err
		}
	}
}

// executeForLoop binds the iterator in a fresh frame and, after every
// iteration, increments it in whichever frame currently holds it.
func (i *Interpreter) executeForLoop(loop *ast.ForLoop) error {
	i.memory.Push()
	defer i.memory.Pop()

	target, err := i.evaluate(loop.Iterator, modeAddress)
	if err != nil {
		return err
	}
	iterator := target.(runtime.ReferenceValue)

	start, err := i.evaluateExpression(loop.Range.Start)
	if err != nil {
		return err
	}
	end, err := i.evaluateExpression(loop.Range.End)
	if err != nil {
		return err
	}
	if err := i.memory.Store(iterator, start); err != nil {
		return wrapRuntime(loop, err)
	}

	for {
		current, err := i.memory.Load(iterator)
		if err != nil {
			return wrapRuntime(loop, err)
		}
		more, err := compareValues("<", current, end)
		if err != nil {
			return wrapRuntime(loop.Range, err)
		}
		if !more {
			return nil
		}
		if done, err := i.runLoopBody(loop.Body); done {
			return err
		}
		current, err = i.memory.Load(iterator)
		if err != nil {
			return wrapRuntime(loop, err)
		}
		next, err := applyArithmetic(ast.OpAdd, current, runtime.IntValue{Val: 1})
		if err != nil {
			return wrapRuntime(loop, err)
		}
		if err := i.memory.Update(iterator, next); err != nil {
			return wrapRuntime(loop, err)
		}
	}
}

func (i *Interpreter) executeReturn(stmt *ast.ReturnStatement) error {
	var value runtime.Value = runtime.NoneValue{}
	if stmt.Value != nil {
		val, err := i.evaluateExpression(stmt.Value)
		if err != nil {
			return err
		}
		value = val
	}
	return returnSignal{value: value}
}

func (i *Interpreter) executePrint(stmt *ast.PrintStatement) error {
	parts := make([]string, 0, len(stmt.Arguments))
	for _, arg := range stmt.Arguments {
		val, err := i.evaluateExpression(arg)
		if err != nil {
			return err
		}
		parts = append(parts, printArgument(val))
	}
	if _, err := fmt.Fprintln(i.stdout, strings.Join(parts, " ")); err != nil {
		return wrapRuntime(stmt, err)
	}
	return nil
}

// executeAssignment writes a plain name into the innermost frame; an indexed
// target updates its container where the container lives.
func (i *Interpreter) executeAssignment(assign *ast.Assignment) error {
	target, err := i.evaluate(assign.Left, modeAddress)
	if err != nil {
		return err
	}
	ref := target.(runtime.ReferenceValue)

	var value runtime.Value
	if base, compound := assign.Operator.BaseOperator(); compound {
		right, err := i.evaluateExpression(assign.Right)
		if err != nil {
			return err
		}
		left, err := i.evaluateExpression(assign.Left)
		if err != nil {
			return err
		}
		value, err = applyArithmetic(base, left, right)
		if err != nil {
			return wrapRuntime(assign, err)
		}
	} else {
		value, err = i.evaluateExpression(assign.Right)
		if err != nil {
			return err
		}
	}

	if err := i.memory.Store(ref, runtime.Clone(value)); err != nil {
		return wrapRuntime(assign, err)
	}
	return nil
}
