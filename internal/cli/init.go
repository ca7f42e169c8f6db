package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"chateval/internal/config"
)

const sampleCase = `{
  "id": "capital_of_france",
  "input": "What is the capital of France?",
  "expected_output": "Paris",
  "metrics": [
    {"name": "AnswerRelevancy", "threshold": 0.7},
    {"name": "Faithfulness"}
  ]
}
`

const sampleConversation = `id: refund_follow_up
messages:
  - role: user
    content: I'd like to return my order.
  - role: assistant
    content: Sure, can you give me the order number?
  - role: user
    content: It's 1042.
metrics:
  - name: AnswerRelevancy
  - name: Toxicity
    threshold: 0.3
`

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		testDir := flags.String("test-dir", "", "Directory to scaffold (default: TEST_DATA_DIR or ./test_data)")
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
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		files := []struct {
			name    string
			content string
		}{
			{"capital_of_france.json", sampleCase},
			{"refund_follow_up.yaml", sampleConversation},
		}
		for _, file := range files {
			path := filepath.Join(dir, file.name)
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(stdout, "Skipping existing %s\n", path)
				continue
			}
			if err := os.WriteFile(path, []byte(file.content), 0o644); err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Created %s\n", path)
		}
		fmt.Fprintf(stdout, "Run \"chateval run --test-dir %s\" after setting CHATBOT_API_ENDPOINT.\n", dir)
		return ExitOK
	}
}
