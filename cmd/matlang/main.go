package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/xyproto/env/v2"

	"matlang/interpreter-go/pkg/ast"
	"matlang/interpreter-go/pkg/driver"
	"matlang/interpreter-go/pkg/interpreter"
	"matlang/interpreter-go/pkg/parser"
	"matlang/interpreter-go/pkg/typechecker"
)

const cliToolVersion = "matlang 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		return runDefault()
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runFile(args[1:])
	case "check":
		return runCheck(args[1:])
	case "tree":
		return runTree(args[1:])
	case "repl":
		return runRepl(args[1:])
	case "conform":
		return runConform(args[1:])
	default:
		if strings.HasPrefix(args[0], "-") && args[0] != driver.StdinPath {
			fmt.Fprintf(os.Stderr, "unknown flag %s\n", args[0])
			printUsage()
			return 1
		}
		return runFile(args)
	}
}

// runDefault runs the manifest's main program when a matlang.yml is found,
// otherwise starts a REPL on a terminal or runs standard input.
func runDefault() int {
	manifestPath, err := driver.FindManifest(".")
	switch {
	case err == nil:
		manifest, loadErr := driver.LoadManifest(manifestPath)
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", loadErr)
			return 1
		}
		level := resolveLogLevel(manifest.LogLevel)
		return executeEntry(manifest.MainPath(), manifest.PrintTree, newLogger(level))
	case errors.Is(err, driver.ErrManifestNotFound):
		if isTerminal(os.Stdin.Fd()) {
			return runRepl(nil)
		}
		return executeEntry(driver.StdinPath, false, newLogger(resolveLogLevel("")))
	default:
		fmt.Fprintf(os.Stderr, "failed to locate manifest: %v\n", err)
		return 1
	}
}

func runFile(args []string) int {
	fs := newFlagSet("run")
	printTree := fs.Bool("tree", false, "print the syntax tree before running")
	logLevel := addLogLevelFlag(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "matlang run requires exactly one source file (or - for stdin)")
		return 1
	}
	return executeEntry(fs.Arg(0), *printTree, newLogger(logLevel.level()))
}

// executeEntry parses, checks and runs one program. Diagnostics, runtime
// errors and program output go to stdout; CLI failures go to stderr.
func executeEntry(path string, printTree bool, logger *slog.Logger) int {
	src, err := driver.ReadSource(path, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return 1
	}
	program, err := src.Parse()
	if err != nil {
		var syntaxErr *parser.SyntaxError
		if errors.As(err, &syntaxErr) {
			fmt.Fprintln(os.Stdout, syntaxErr.Error())
			return 1
		}
		fmt.Fprintf(os.Stderr, "failed to parse program: %v\n", err)
		return 1
	}
	logger.Debug("parsed program", "path", src.Path, "statements", len(program.Nodes))

	if printTree {
		if err := ast.PrintTree(os.Stdout, program); err != nil {
			fmt.Fprintf(os.Stderr, "failed to print tree: %v\n", err)
			return 1
		}
	}

	interp := interpreter.NewWithOptions(interpreter.Options{Stdout: os.Stdout, Logger: logger})
	result, diags, err := interp.EvaluateProgram(program, interpreter.ProgramEvaluationOptions{})
	if len(diags) > 0 {
		fmt.Fprint(os.Stdout, typechecker.FormatDiagnostics(diags))
		return 1
	}
	if err != nil {
		fmt.Fprintln(os.Stdout, err.Error())
		return 1
	}
	if result.Returned {
		fmt.Fprintf(os.Stdout, "RETURNED %s\n", interpreter.ValueToString(result.Value))
	}
	return 0
}

func runTree(args []string) int {
	fs := newFlagSet("tree")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "matlang tree requires exactly one source file (or - for stdin)")
		return 1
	}
	program, err := driver.LoadProgram(fs.Arg(0), os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	if err := ast.PrintTree(os.Stdout, program); err != nil {
		fmt.Fprintf(os.Stderr, "failed to print tree: %v\n", err)
		return 1
	}
	return 0
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("matlang "+name, pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// resolveMatlangHome returns $MATLANG_HOME, defaulting to ~/.matlang.
func resolveMatlangHome() (string, error) {
	if home := strings.TrimSpace(env.Str("MATLANG_HOME")); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve MATLANG_HOME %q: %w", home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".matlang"), nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  matlang                      run matlang.yml main, else REPL or stdin")
	fmt.Fprintln(os.Stderr, "  matlang run [--tree] <file>  check and run a program (- for stdin)")
	fmt.Fprintln(os.Stderr, "  matlang <file>")
	fmt.Fprintln(os.Stderr, "  matlang check <file>...      check programs without running them")
	fmt.Fprintln(os.Stderr, "  matlang tree <file>          print the syntax tree")
	fmt.Fprintln(os.Stderr, "  matlang repl                 interactive session")
	fmt.Fprintln(os.Stderr, "  matlang conform <dir>        run YAML conformance suites")
	fmt.Fprintln(os.Stderr, "  matlang version")
}
