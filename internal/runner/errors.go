package runner

import (
	"errors"
	"fmt"
)

// ExecutableNotFoundError reports an external program that is not on the
// search path, or not inside the configured bin directory.
type ExecutableNotFoundError struct {
	Name string
	Path string // set when the lookup was inside a bin directory
	Hint string
	Err  error
}

func (e *ExecutableNotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("'%s' not found at %s", e.Name, e.Path)
	}
	return fmt.Sprintf("'%s' command not found.", e.Name)
}

func (e *ExecutableNotFoundError) Unwrap() error {
	return e.Err
}

// ChildProcessError reports a non-zero exit from a capture-mode child,
// carrying everything it wrote.
type ChildProcessError struct {
	Code   int
	Stdout string
	Stderr string
}

func (e *ChildProcessError) Error() string {
	return fmt.Sprintf("Command failed with exit code %d", e.Code)
}

// ExitStatusError carries a non-zero exit status from a stream-mode child.
// The child already wrote its own diagnostics to the inherited streams.
type ExitStatusError struct {
	Code int
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("exited with code %d", e.Code)
}

// UnexpectedError wraps any other failure while starting or waiting on the
// child.
type UnexpectedError struct {
	Op  string
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// ExitCode maps a launcher error to the process exit status: the child's
// own code when it failed, 0 for nil, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var child *ChildProcessError
	if errors.As(err, &child) {
		return child.Code
	}
	var status *ExitStatusError
	if errors.As(err, &status) {
		return status.Code
	}
	return 1
}
