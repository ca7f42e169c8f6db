package cli

import (
	"io"
	"os"

	"golang.org/x/term"
)

// uiModeDecision captures whether to use the live UI.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode determines whether to enable the live UI. Verbose
// logging and the live table share stdout, so verbose wins.
func resolveUIMode(requested, verbose bool, stdout io.Writer) uiModeDecision {
	if !requested || verbose {
		return uiModeDecision{useLive: false}
	}
	if isTerminal(stdout) {
		return uiModeDecision{useLive: true}
	}
	return uiModeDecision{
		useLive: false,
		warning: "Live UI requested but stdout is not a TTY; falling back to plain output.",
	}
}

// defaultIsTerminal inspects stdout for TTY support.
func defaultIsTerminal(stdout io.Writer) bool {
	if stdout == nil {
		return false
	}
	if file, ok := stdout.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stdout.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
