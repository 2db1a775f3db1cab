package interpreter

import "matlang/interpreter-go/pkg/runtime"

type breakSignal struct{}

func (breakSignal) Error() string { return "break" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue" }

type returnSignal struct {
	value runtime.Value
}

func (returnSignal) Error() string { return "return" }

// isSignal reports whether err is control flow rather than a failure.
func isSignal(err error) bool {
	switch err.(type) {
	case breakSignal, continueSignal, returnSignal:
		return true
	default:
		return false
	}
}
