package cli

import (
	"fmt"
	"io"

	"chateval/internal/metric"
	"chateval/internal/testcase"
)

// runMetrics builds the handler for the metrics command.
func runMetrics(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		if len(args) > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		registry := metric.NewRegistry()
		for _, name := range registry.Names() {
			built, err := registry.Build([]testcase.MetricSpec{{Name: name}}, "")
			if err != nil {
				// GEval needs criteria, so describe it without building.
				fmt.Fprintf(stdout, "%-21s (requires criteria param)\n", name)
				continue
			}
			fmt.Fprintf(stdout, "%-21s threshold %.2f, %s\n", name, built[0].Threshold, built[0].Direction)
		}
		return ExitOK
	}
}
