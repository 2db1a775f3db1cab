package main

import (
	"fmt"
	"os"

	"matlang/interpreter-go/pkg/conformance"
)

func runConform(args []string) int {
	fs := newFlagSet("conform")
	verbose := fs.BoolP("verbose", "v", false, "list passing and skipped cases too")
	logLevel := addLogLevelFlag(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "matlang conform requires a suite directory")
		return 1
	}

	tests, err := conformance.LoadAllTests(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	results := conformance.NewRunner(newLogger(logLevel.level())).RunAll(tests)
	for _, result := range results {
		name := result.Test.File + "/" + result.Test.Test.Name
		switch {
		case result.Skipped:
			if *verbose {
				fmt.Fprintf(os.Stdout, "SKIP %s: %s\n", name, result.SkipReason)
			}
		case result.Passed:
			if *verbose {
				fmt.Fprintf(os.Stdout, "PASS %s\n", name)
			}
		default:
			fmt.Fprintf(os.Stdout, "FAIL %s: %v\n", name, result.Error)
		}
	}

	stats := conformance.ComputeStats(results)
	fmt.Fprintln(os.Stdout, conformance.FormatStats(stats))
	if stats.Failed > 0 {
		return 1
	}
	return 0
}
