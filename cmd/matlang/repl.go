package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"matlang/interpreter-go/pkg/interpreter"
	"matlang/interpreter-go/pkg/parser"
	"matlang/interpreter-go/pkg/typechecker"
)

const (
	banner      = "matlang REPL. Type :quit to exit, :reset to clear bindings, :vars to list them."
	promptMain  = ">>> "
	promptCont  = "... "
	historyFile = "history"
)

// replSession holds checker and memory state shared by every input.
type replSession struct {
	interp *interpreter.Interpreter
	out    io.Writer
}

func newReplSession(out io.Writer, logger *slog.Logger) *replSession {
	return &replSession{
		interp: interpreter.NewWithOptions(interpreter.Options{Stdout: out, Logger: logger}),
		out:    out,
	}
}

// handle evaluates one complete input and reports whether the session ends.
func (s *replSession) handle(code string) (exit bool) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, ":") {
		return s.command(strings.ToLower(trimmed))
	}

	program, err := parser.ParseProgram([]byte(code))
	if err != nil {
		fmt.Fprintln(s.out, err.Error())
		return false
	}
	result, diags, err := s.interp.EvaluateProgram(program, interpreter.ProgramEvaluationOptions{})
	switch {
	case len(diags) > 0:
		fmt.Fprint(s.out, typechecker.FormatDiagnostics(diags))
	case err != nil:
		fmt.Fprintln(s.out, err.Error())
	case result.Returned:
		fmt.Fprintf(s.out, "RETURNED %s\n", interpreter.ValueToString(result.Value))
	}
	return false
}

func (s *replSession) command(cmd string) (exit bool) {
	switch cmd {
	case ":quit", ":q":
		return true
	case ":reset":
		s.interp.Reset()
		fmt.Fprintln(s.out, "bindings cleared")
	case ":vars":
		names := s.interp.Checker().Names()
		sort.Strings(names)
		for _, name := range names {
			typ, _ := s.interp.Checker().Lookup(name)
			value := "<unset>"
			if v, err := s.interp.Memory().Get(name); err == nil {
				value = interpreter.ValueToString(v)
			}
			fmt.Fprintf(s.out, "%s: %s = %s\n", name, typ, value)
		}
	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :quit to exit.\n", cmd)
	}
	return false
}

func runRepl(args []string) (ret int) {
	fs := newFlagSet("repl")
	logLevel := addLogLevelFlag(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	fmt.Fprintln(os.Stdout, banner)

	histPath := ""
	if home, err := resolveMatlangHome(); err == nil {
		if mkErr := os.MkdirAll(home, 0o755); mkErr == nil {
			histPath = filepath.Join(home, historyFile)
		}
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	session := newReplSession(os.Stdout, newLogger(logLevel.level()))
	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(os.Stdout)
			return 0
		}
		if strings.TrimSpace(code) != "" {
			ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		}
		if session.handle(code) {
			return 0
		}
	}
}

// readByParseProbe keeps prompting while the accumulated input fails to parse
// only because it ended too early.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := parser.ParseProgram([]byte(src)); perr != nil && parser.IsIncomplete(perr) && strings.TrimSpace(line) != "" {
			continue
		}
		return src, true
	}
}
