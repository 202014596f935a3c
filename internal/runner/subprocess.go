package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ThatCatDev/llamalaunch/internal/config"
)

// Streams are the caller's standard streams handed to the child.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's own stdin, stdout and stderr.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Result is the outcome of a child that exited.
type Result struct {
	ExitCode int
	// Stdout is the trimmed captured output. Empty in stream mode.
	Stdout string
}

// Runner validates, resolves and executes invocations one at a time.
type Runner struct {
	logger   *zap.Logger
	streams  Streams
	lookPath func(string) (string, error)
}

// New creates a Runner that hands streams to its children.
func New(logger *zap.Logger, streams Streams) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		logger:   logger,
		streams:  streams,
		lookPath: exec.LookPath,
	}
}

// Run validates inv's required files, resolves its executable, spawns it and
// blocks until it exits.
//
// In stream mode a non-zero exit returns the Result together with an
// *ExitStatusError. In capture mode it returns a *ChildProcessError holding
// the captured output.
func (r *Runner) Run(inv Invocation) (Result, error) {
	if err := ValidateFiles(inv.Files); err != nil {
		return Result{}, err
	}

	binPath, err := resolveBinary(inv.Executable, inv.BinDir, r.lookPath)
	if err != nil {
		return Result{}, withHint(err, inv.Hint)
	}
	for _, dep := range inv.Requires {
		if _, err := resolveBinary(dep, "", r.lookPath); err != nil {
			return Result{}, withHint(err, inv.Hint)
		}
	}
	log := r.logger.With(zap.String("label", inv.Label))
	log.Debug("resolved executable", zap.String("path", binPath))

	cmd := exec.Command(binPath, inv.Args...)
	if inv.BinDir != "" {
		cmd.Env = append(os.Environ(), "LD_LIBRARY_PATH="+inv.BinDir)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdin = r.streams.In
	if inv.Mode == Capture {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	} else {
		cmd.Stdout = r.streams.Out
		cmd.Stderr = r.streams.Err
	}

	log.Info("starting", zap.String("mode", inv.Mode.String()), zap.Strings("args", inv.Args))

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return Result{}, &ExecutableNotFoundError{Name: inv.Executable, Hint: inv.Hint, Err: err}
		}
		return Result{}, &UnexpectedError{Op: "start " + inv.Label, Err: err}
	}

	stop := relaySignals(cmd.Process, notifySignals(), log)
	waitErr := cmd.Wait()
	stop()

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return Result{}, &UnexpectedError{Op: "wait for " + inv.Label, Err: waitErr}
	}

	code := exitCode(cmd.ProcessState)
	log.Info("exited", zap.Int("code", code))

	if inv.Mode == Capture {
		if code != 0 {
			return Result{ExitCode: code}, &ChildProcessError{
				Code:   code,
				Stdout: stdout.String(),
				Stderr: stderr.String(),
			}
		}
		return Result{Stdout: strings.TrimSpace(stdout.String())}, nil
	}

	res := Result{ExitCode: code}
	if code != 0 {
		return res, &ExitStatusError{Code: code}
	}
	return res, nil
}

// ValidateFiles checks that every required file exists and is a regular
// file. All failures are returned together as *config.Error values.
func ValidateFiles(files []RequiredFile) error {
	var errs error
	for _, f := range files {
		info, err := os.Stat(f.Path)
		if err == nil && !info.Mode().IsRegular() {
			err = fmt.Errorf("%s is not a regular file", f.Path)
		}
		if err != nil {
			errs = multierr.Append(errs, &config.Error{Option: f.Option, Path: f.Path, Err: err})
		}
	}
	return errs
}

// resolveBinary returns the full path of name. With a binDir the binary must
// sit inside it; otherwise the search path is used. Names containing a path
// separator are taken as given.
func resolveBinary(name, binDir string, lookPath func(string) (string, error)) (string, error) {
	if binDir != "" && filepath.Base(name) == name {
		binName := name
		if runtime.GOOS == "windows" && filepath.Ext(binName) == "" {
			binName += ".exe"
		}
		binPath := filepath.Join(binDir, binName)
		if _, err := os.Stat(binPath); err != nil {
			return "", &ExecutableNotFoundError{Name: name, Path: binPath, Err: err}
		}
		return binPath, nil
	}

	path, err := lookPath(name)
	if err != nil {
		return "", &ExecutableNotFoundError{Name: name, Err: err}
	}
	return path, nil
}

func withHint(err error, hint string) error {
	var notFound *ExecutableNotFoundError
	if errors.As(err, &notFound) && notFound.Hint == "" {
		notFound.Hint = hint
	}
	return err
}

// exitCode returns the child's exit status. A child killed by a signal maps
// to 128+signo, the shell convention.
func exitCode(state *os.ProcessState) int {
	if state == nil {
		return -1
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}
