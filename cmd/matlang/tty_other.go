//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package main

// isTerminal always reports false; the REPL is started explicitly with
// `matlang repl` on these platforms.
func isTerminal(fd uintptr) bool {
	return false
}
