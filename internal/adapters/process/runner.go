package process

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/zerr"
)

// Command describes a process to run.
type Command struct {
	Args   []string
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// Runner starts child processes and tracks them in a Set for their whole lifetime.
type Runner struct {
	set *Set
}

// NewRunner creates a Runner registering processes in set.
func NewRunner(set *Set) *Runner {
	return &Runner{set: set}
}

// Run starts the command, registers it before any output is consumed, and waits for it.
func (r *Runner) Run(ctx context.Context, c *Command) error {
	if len(c.Args) == 0 {
		return zerr.Wrap(domain.ErrEmptyCommand, "no arguments given")
	}

	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...) //nolint:gosec // commands come from the build plan
	cmd.Dir = c.Dir
	if c.Env != nil {
		cmd.Env = c.Env
	}

	stdout, stderr := c.Stdout, c.Stderr
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return zerr.Wrap(err, "failed to create stdout pipe")
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return zerr.Wrap(err, "failed to create stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start process"), "command", c.Args[0])
	}
	if err := r.set.Add(cmd.Process); err != nil {
		_ = cmd.Wait()
		return err
	}
	defer r.set.Remove(cmd.Process)

	copyDone := make(chan struct{}, 2)
	go func() { _, _ = io.Copy(stdout, outPipe); copyDone <- struct{}{} }()
	go func() { _, _ = io.Copy(stderr, errPipe); copyDone <- struct{}{} }()
	<-copyDone
	<-copyDone

	if err := cmd.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode), "command", c.Args[0])
	}
	return nil
}

// Output runs args and returns its trimmed standard output.
func (r *Runner) Output(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	err := r.Run(ctx, &Command{Args: args, Stdout: &stdout, Stderr: &stderr})
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", zerr.With(err, "stderr", msg)
		}
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}
