package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"

	"github.com/ThatCatDev/llamalaunch/internal/runner"
)

// report writes a human-readable account of err to w. Combined errors are
// reported one per line.
func report(w io.Writer, err error) {
	for _, e := range multierr.Errors(err) {
		reportOne(w, e)
	}
}

func reportOne(w io.Writer, err error) {
	var (
		status     *runner.ExitStatusError
		child      *runner.ChildProcessError
		notFound   *runner.ExecutableNotFoundError
		unexpected *runner.UnexpectedError
		usage      *usageError
	)

	switch {
	case errors.As(err, &status):
		// The child wrote its own diagnostics to the inherited streams.
	case errors.As(err, &child):
		fmt.Fprintf(w, "Error: %s\n", child)
		fmt.Fprintf(w, "\n--- stderr ---\n%s\n", strings.TrimSpace(child.Stderr))
		fmt.Fprintf(w, "\n--- stdout ---\n%s\n", strings.TrimSpace(child.Stdout))
	case errors.As(err, &notFound):
		fmt.Fprintf(w, "Error: %s\n", notFound)
		if notFound.Hint != "" {
			fmt.Fprintln(w, notFound.Hint)
		}
	case errors.As(err, &unexpected):
		fmt.Fprintf(w, "An unexpected error occurred: %v\n", unexpected)
	case errors.As(err, &usage):
		fmt.Fprintf(w, "Error: %v\nRun with --help for usage.\n", usage.err)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}
