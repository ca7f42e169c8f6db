package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"chateval/internal/chatbot"
	"chateval/internal/config"
	"chateval/internal/metric"
	"chateval/internal/oracle"
	"chateval/internal/report"
	"chateval/internal/runner"
	"chateval/internal/ui/live"
)

// Seams for tests; production builds the real client and judge.
var (
	newClient = func(cfg config.Config) (chatbot.Client, error) {
		return chatbot.New(chatbot.Options{
			Endpoint: cfg.Endpoint,
			APIKey:   cfg.APIKey,
			Timeout:  cfg.Timeout,
		})
	}
	newScorer = func(cfg config.Config) (oracle.Oracle, error) {
		return oracle.NewJudge(oracle.JudgeConfig{
			APIKey:  cfg.JudgeAPIKey,
			BaseURL: cfg.JudgeBaseURL,
			Model:   cfg.JudgeModel,
		})
	}
)

func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		testDir := fs.String("test-dir", "", "Directory with test-case files (default: TEST_DATA_DIR or ./test_data)")
		endpoint := fs.String("endpoint", "", "Chatbot endpoint URL (default: CHATBOT_API_ENDPOINT)")
		model := fs.String("model", "", "Evaluation model (default: EVAL_MODEL)")
		sync := fs.Bool("sync", false, "Score metrics sequentially within each case")
		verbose := fs.Bool("verbose", false, "Log progress while running")
		noColor := fs.Bool("no-color", false, "Disable colored output")
		logPath := fs.String("log", "", "Also write the verbose stream to a file")
		htmlPath := fs.String("html", "", "Write an HTML report to a file")
		jsonPath := fs.String("json", "", "Write the raw results as JSON to a file")
		liveUI := fs.Bool("live", false, "Show a live progress table (requires a TTY)")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg := config.FromEnv()
		if *testDir != "" {
			cfg.TestDir = *testDir
		}
		if *endpoint != "" {
			cfg.Endpoint = *endpoint
		}
		if *model != "" {
			cfg.DefaultModel = *model
		}
		if *sync {
			cfg.Concurrent = false
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
			return ExitUsage
		}

		client, err := newClient(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to build chatbot client: %v\n", err)
			return ExitUsage
		}
		defer client.Close()
		scorer, err := newScorer(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to build scoring backend: %v\n", err)
			return ExitUsage
		}

		var logWriter io.Writer
		if *logPath != "" {
			logFile, err := os.Create(*logPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to open log file: %v\n", err)
				return ExitUsage
			}
			defer logFile.Close()
			logWriter = logFile
		}

		decision := resolveUIMode(*liveUI, *verbose, stdout)
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}
		var controller *live.Controller
		params := runner.Params{
			TestDir:          cfg.TestDir,
			DefaultModel:     cfg.DefaultModel,
			Concurrent:       cfg.Concurrent,
			Registry:         metric.NewRegistry(),
			Verbose:          *verbose,
			VerboseWriter:    stdout,
			VerboseLogWriter: logWriter,
			NoColor:          *noColor,
		}
		if decision.useLive {
			controller = live.Start(stdout, live.Options{NoColor: *noColor})
			params.Observer = controller
			params.Verbose = false
		}

		results, err := runner.Run(context.Background(), params, client, scorer)
		controller.Close()
		controller.Wait()
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitUsage
		}

		if err := report.WriteText(stdout, results, *noColor); err != nil {
			fmt.Fprintf(stderr, "Failed to print summary: %v\n", err)
			return ExitError
		}
		if *htmlPath != "" {
			if err := report.WriteHTMLFile(*htmlPath, results); err != nil {
				fmt.Fprintf(stderr, "Failed to write HTML report: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Report: %s\n", *htmlPath)
		}
		if *jsonPath != "" {
			if err := report.WriteJSONFile(*jsonPath, results); err != nil {
				fmt.Fprintf(stderr, "Failed to write results: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Results: %s\n", *jsonPath)
		}

		if results.Failed() {
			return ExitError
		}
		return ExitOK
	}
}
