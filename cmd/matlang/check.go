package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	goruntime "runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"matlang/interpreter-go/pkg/driver"
	"matlang/interpreter-go/pkg/typechecker"
)

// checkReport is the outcome of checking one file.
type checkReport struct {
	path  string
	lines []string
	ok    bool
}

// runCheck checks every file concurrently, each with its own checker, and
// reports in argument order.
func runCheck(args []string) int {
	fs := newFlagSet("check")
	logLevel := addLogLevelFlag(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "matlang check requires at least one source file")
		return 1
	}
	logger := newLogger(logLevel.level())

	reports := checkFiles(fs.Args(), os.Stdin, logger)
	status := 0
	for _, report := range reports {
		if report.ok {
			fmt.Fprintf(os.Stdout, "%s: ok\n", report.path)
			continue
		}
		status = 1
		for _, line := range report.lines {
			fmt.Fprintf(os.Stdout, "%s: %s\n", report.path, line)
		}
	}
	return status
}

// checkFiles reads stdin at most once, however often "-" is named, and
// shares that source between its checks.
func checkFiles(paths []string, stdin io.Reader, logger *slog.Logger) []checkReport {
	var (
		stdinSrc *driver.Source
		stdinErr error
	)
	if slices.Contains(paths, driver.StdinPath) {
		stdinSrc, stdinErr = driver.ReadSource(driver.StdinPath, stdin)
	}

	reports := make([]checkReport, len(paths))
	var g errgroup.Group
	g.SetLimit(goruntime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			src, err := stdinSrc, stdinErr
			if path != driver.StdinPath {
				src, err = driver.ReadSource(path, nil)
			}
			reports[i] = checkSource(path, src, err, logger)
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

func checkSource(path string, src *driver.Source, readErr error, logger *slog.Logger) checkReport {
	report := checkReport{path: path}
	if readErr != nil {
		report.lines = []string{readErr.Error()}
		return report
	}
	program, err := src.Parse()
	if err != nil {
		report.lines = []string{err.Error()}
		return report
	}
	diags, err := typechecker.New(typechecker.WithLogger(logger.With("file", path))).CheckProgram(program)
	if err != nil {
		report.lines = []string{err.Error()}
		return report
	}
	if len(diags) > 0 {
		report.lines = strings.Split(strings.TrimRight(typechecker.FormatDiagnostics(diags), "\n"), "\n")
		return report
	}
	report.ok = true
	return report
}
