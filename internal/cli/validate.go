package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"chateval/internal/config"
	"chateval/internal/metric"
	"chateval/internal/testcase"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		testDir := flags.String("test-dir", "", "Directory with test-case files (default: TEST_DATA_DIR or ./test_data)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		dir := *testDir
		if dir == "" {
			dir = config.FromEnv().TestDir
		}

		registry := metric.NewRegistry()
		cases, skipped, err := testcase.LoadDir(dir, testcase.LoadOptions{KnownMetric: registry.Has})
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		for _, skip := range skipped {
			fmt.Fprintf(stderr, "%s: %v\n", skip.Path, skip.Err)
		}
		fmt.Fprintf(stdout, "%d valid test cases in %s\n", len(cases), dir)
		if len(skipped) > 0 {
			fmt.Fprintf(stderr, "%d invalid files\n", len(skipped))
			return ExitError
		}
		return ExitOK
	}
}
