// Package shell provides the executor that runs build plan commands.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/pax/internal/adapters/process"
	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor on top of the process runner.
type Executor struct {
	logger ports.Logger
	runner *process.Runner
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger, runner *process.Runner) *Executor {
	return &Executor{
		logger: logger,
		runner: runner,
	}
}

// Execute runs the task's command.
// The environment is os.Environ() overridden by task.Environment. Output is streamed to
// stdout/stderr and mirrored line by line to the debug log.
func (e *Executor) Execute(ctx context.Context, task *domain.Task, stdout, stderr io.Writer) error {
	if len(task.Command) == 0 {
		return nil
	}

	name := task.Command[0]
	cmdEnv := resolveEnvironment(os.Environ(), task.Environment)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := process.LookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	outLog := &logWriter{logger: e.logger}
	errLog := &logWriter{logger: e.logger}
	defer outLog.Flush()
	defer errLog.Flush()

	args := append([]string{executable}, task.Command[1:]...)
	err := e.runner.Run(ctx, &process.Command{
		Args:   args,
		Dir:    task.WorkingDir.String(),
		Env:    cmdEnv,
		Stdout: io.MultiWriter(stdout, outLog),
		Stderr: io.MultiWriter(stderr, errLog),
	})
	if err != nil {
		return zerr.With(err, "task", task.Name.String())
	}
	return nil
}

// logWriter forwards complete lines to the debug log, buffering partial writes.
type logWriter struct {
	logger ports.Logger
	mu     sync.Mutex
	buf    bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line: keep it for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.logger.Debug(strings.TrimSuffix(line, "\n"))
	}
	return len(p), nil
}

// Flush logs any trailing partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.logger.Debug(w.buf.String())
		w.buf.Reset()
	}
}

// resolveEnvironment merges the system environment with task overrides.
// The result is sorted for reproducible command lines.
func resolveEnvironment(sysEnv []string, taskEnv map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(taskEnv))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	for k, v := range taskEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}
