// Package cli holds what the command-line programs share: running a cobra
// command tree and turning its outcome into an exit status.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Anaswar-ash/AWS-S3-and-Lambda-Data-Fetching-Pipeline/errors"
)

// ErrNoCommand is returned when a program is run without one of its commands.
var ErrNoCommand = stderrors.New("a command is required")

// RequireCommand is the RunE of a root command that only dispatches to its
// subcommands.
func RequireCommand(*cobra.Command, []string) error {
	return ErrNoCommand
}

// reportedError marks an error whose message has already been shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// Reported wraps err so that Execute does not print it again. The exit
// status still follows the wrapped error's code.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// Execute runs cmd and returns the process exit status. Errors that were not
// reported by a command come from argument parsing; they are printed to
// stderr together with a usage hint and end with ExitUsage.
func Execute(ctx context.Context, cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return errors.ExitOK
	}

	var reported *reportedError
	if stderrors.As(err, &reported) {
		return errors.ExitCode(err)
	}

	fmt.Fprintf(stderr, "Error: %v\nRun '%s --help' for usage.\n", err, cmd.CommandPath())
	return errors.ExitUsage
}
