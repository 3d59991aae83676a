package mux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/timvw/tmux-sessionizer/internal/model"
)

// Output is the captured result of one external command.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the command exited with status 0.
func (o Output) Success() bool {
	return o.ExitCode == 0
}

// Executor runs an external program and captures its output.
// A non-zero exit status is not an error: callers inspect Output.ExitCode.
// An error means the program could not be run at all.
type Executor interface {
	Execute(ctx context.Context, program string, args []string, verbose bool) (Output, error)
}

// ExecExecutor runs programs with os/exec.
type ExecExecutor struct {
	Logger *zap.Logger
	// Stdin is connected to the child; nil means /dev/null.
	Stdin io.Reader
}

// NewExecExecutor returns an executor that inherits the terminal on stdin,
// so interactive tmux commands (attach, non-detached new-session) work.
func NewExecExecutor(logger *zap.Logger) *ExecExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecExecutor{Logger: logger, Stdin: os.Stdin}
}

// Execute runs program with args and waits for it to exit.
func (e *ExecExecutor) Execute(ctx context.Context, program string, args []string, verbose bool) (Output, error) {
	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	line := program + " " + strings.Join(args, " ")
	if verbose {
		logger.Info("executing command", zap.String("cmd", line))
	} else {
		logger.Debug("executing command", zap.String("cmd", line))
	}

	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdin = e.Stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			logger.Debug("command exited non-zero",
				zap.String("cmd", line),
				zap.Int("exit_code", out.ExitCode),
				zap.ByteString("stderr", out.Stderr))
			return out, nil
		}
		return out, fmt.Errorf("%w: running %q: %w", model.ErrProcess, line, err)
	}
	return out, nil
}
