package conformance

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"matlang/interpreter-go/pkg/interpreter"
	"matlang/interpreter-go/pkg/parser"
	"matlang/interpreter-go/pkg/typechecker"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// SummaryStats counts results by outcome
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// Runner executes conformance tests. Every case runs on a fresh interpreter.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a runner; a nil logger discards everything.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{logger: logger}
}

// outcome is everything one run of a case can produce.
type outcome struct {
	stdout      string
	diagnostics []string
	result      interpreter.ProgramResult
	syntaxErr   error
	runtimeErr  error
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{Test: test, Skipped: true, SkipReason: reason}
	}

	var out bytes.Buffer
	interp := interpreter.NewWithOptions(interpreter.Options{Stdout: &out, Logger: r.logger})

	if test.Suite.Setup != "" {
		if err := runSetup(interp, test.Suite.Setup); err != nil {
			return TestResult{Test: test, Error: fmt.Errorf("suite setup failed: %w", err)}
		}
		out.Reset()
	}

	got := outcome{}
	program, err := parser.ParseProgram([]byte(test.Test.Source))
	if err != nil {
		got.syntaxErr = err
	} else {
		opts := interpreter.ProgramEvaluationOptions{SkipTypecheck: test.Test.SkipTypecheck}
		result, diags, runErr := interp.EvaluateProgram(program, opts)
		got.result = result
		got.runtimeErr = runErr
		for _, d := range diags {
			got.diagnostics = append(got.diagnostics, d.String())
		}
	}
	got.stdout = out.String()

	if err := checkExpectation(test.Test.Expect, got); err != nil {
		r.logger.Debug("conformance case failed", "file", test.File, "test", test.Test.Name, "error", err)
		return TestResult{Test: test, Error: err}
	}
	return TestResult{Test: test, Passed: true}
}

// RunAll executes all loaded tests
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, 0, len(tests))
	for _, test := range tests {
		results = append(results, r.Run(test))
	}
	return results
}

// ComputeStats tallies results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

func runSetup(interp *interpreter.Interpreter, source string) error {
	program, err := parser.ParseProgram([]byte(source))
	if err != nil {
		return err
	}
	_, diags, err := interp.EvaluateProgram(program, interpreter.ProgramEvaluationOptions{})
	if len(diags) > 0 {
		return errors.New(strings.TrimSpace(typechecker.FormatDiagnostics(diags)))
	}
	return err
}

// checkExpectation compares an outcome against the expected one
func checkExpectation(expect Expectation, got outcome) error {
	if expect.SyntaxError != "" {
		if got.syntaxErr == nil {
			return fmt.Errorf("expected syntax error containing %q, program parsed", expect.SyntaxError)
		}
		if !strings.Contains(got.syntaxErr.Error(), expect.SyntaxError) {
			return fmt.Errorf("expected syntax error containing %q, got %q", expect.SyntaxError, got.syntaxErr.Error())
		}
		return nil
	}
	if got.syntaxErr != nil {
		return fmt.Errorf("parse error: %w", got.syntaxErr)
	}

	if diff := cmp.Diff(expect.Diagnostics, got.diagnostics, cmpopts.EquateEmpty()); diff != "" {
		return fmt.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}

	switch {
	case expect.RuntimeError != "" && got.runtimeErr == nil:
		return fmt.Errorf("expected runtime error containing %q, program succeeded", expect.RuntimeError)
	case expect.RuntimeError != "" && !strings.Contains(got.runtimeErr.Error(), expect.RuntimeError):
		return fmt.Errorf("expected runtime error containing %q, got %q", expect.RuntimeError, got.runtimeErr.Error())
	case expect.RuntimeError == "" && got.runtimeErr != nil:
		return fmt.Errorf("unexpected runtime error: %w", got.runtimeErr)
	}

	if expect.Stdout != nil {
		if diff := cmp.Diff(*expect.Stdout, got.stdout); diff != "" {
			return fmt.Errorf("stdout mismatch (-want +got):\n%s", diff)
		}
	}

	if expect.Returned != nil {
		if !got.result.Returned {
			return fmt.Errorf("expected return of %s, program did not return", *expect.Returned)
		}
		if rendered := interpreter.ValueToString(got.result.Value); rendered != *expect.Returned {
			return fmt.Errorf("expected return of %s, got %s", *expect.Returned, rendered)
		}
	}
	return nil
}
