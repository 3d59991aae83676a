package mux

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/timvw/tmux-sessionizer/internal/model"
	telem "github.com/timvw/tmux-sessionizer/internal/otel"
)

// Tmux implements the Multiplexer interface for tmux.
type Tmux struct {
	exec    Executor
	verbose bool
	logger  *zap.Logger
	metrics *telem.Metrics
}

// NewTmux creates a tmux multiplexer that runs commands through exec.
func NewTmux(exec Executor, verbose bool, logger *zap.Logger) *Tmux {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tmux{exec: exec, verbose: verbose, logger: logger}
}

// WithMetrics attaches metric instruments; nil disables recording.
func (t *Tmux) WithMetrics(m *telem.Metrics) *Tmux {
	t.metrics = m
	return t
}

// Name returns "tmux".
func (t *Tmux) Name() string {
	return "tmux"
}

// IsRunning reports whether a tmux server process exists, using pgrep.
func (t *Tmux) IsRunning(ctx context.Context) (bool, error) {
	out, err := t.exec.Execute(ctx, "pgrep", []string{"tmux"}, false)
	if err != nil {
		return false, fmt.Errorf("checking for tmux server: %w", err)
	}
	return out.Success(), nil
}

// ListSessions returns the live sessions. When no server is running tmux
// exits non-zero with empty stdout, which yields an empty listing.
func (t *Tmux) ListSessions(ctx context.Context) (model.Sessions, error) {
	out, err := t.run(ctx, "list-sessions")
	if err != nil {
		return nil, fmt.Errorf("tmux list-sessions: %w", err)
	}
	sessions, err := ParseSessions(string(out.Stdout))
	if err != nil {
		return nil, fmt.Errorf("tmux list-sessions: %w", err)
	}
	t.logger.Debug("listed sessions", zap.Int("count", len(sessions)))
	return sessions, nil
}

// HasSession reports whether the named session exists. The exit status is
// the only signal.
func (t *Tmux) HasSession(ctx context.Context, name string) (bool, error) {
	out, err := t.run(ctx, "has-session", "-t", exactTarget(name))
	if err != nil {
		return false, fmt.Errorf("tmux has-session -t %s: %w", name, err)
	}
	return out.Success(), nil
}

// NewSession creates a session. A non-detached session takes over the
// terminal until the user detaches or the session ends.
func (t *Tmux) NewSession(ctx context.Context, name string, workdir model.WorkDir, detached bool) (Output, error) {
	if detached {
		return t.mutate(ctx, "new-session", "-ds", name, "-c", workdir.String())
	}
	return t.mutate(ctx, "new-session", "-s", name, "-c", workdir.String())
}

// NewGroupedSession creates a detached session in the same group as target.
// tmux picks the new session's name.
func (t *Tmux) NewGroupedSession(ctx context.Context, target string) (Output, error) {
	return t.mutate(ctx, "new-session", "-d", "-t", exactTarget(target))
}

// Attach attaches the terminal to the named session.
func (t *Tmux) Attach(ctx context.Context, name string) (Output, error) {
	return t.mutate(ctx, "attach-session", "-t", exactTarget(name))
}

// SwitchClient switches the current client to the named session.
func (t *Tmux) SwitchClient(ctx context.Context, name string) (Output, error) {
	return t.mutate(ctx, "switch-client", "-t", exactTarget(name))
}

// KillSession destroys the named session.
func (t *Tmux) KillSession(ctx context.Context, name string) (Output, error) {
	return t.mutate(ctx, "kill-session", "-t", exactTarget(name))
}

// CurrentSession returns the session the calling client is attached to.
func (t *Tmux) CurrentSession(ctx context.Context) (string, error) {
	out, err := t.mutate(ctx, "display-message", "-p", "#S")
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(string(out.Stdout))
	if name == "" {
		return "", fmt.Errorf("%w: tmux display-message returned no session name", model.ErrProcess)
	}
	return name, nil
}

// run executes a tmux subcommand. Only a failure to start tmux is an error.
func (t *Tmux) run(ctx context.Context, args ...string) (Output, error) {
	out, err := t.exec.Execute(ctx, "tmux", args, t.verbose)
	t.metrics.RecordCommand(ctx, args[0], err == nil && out.Success())
	return out, err
}

// mutate executes a tmux subcommand that must succeed; a non-zero exit is
// reported as a process error carrying tmux's stderr.
func (t *Tmux) mutate(ctx context.Context, args ...string) (Output, error) {
	out, err := t.run(ctx, args...)
	if err != nil {
		return out, fmt.Errorf("tmux %s: %w", args[0], err)
	}
	if !out.Success() {
		return out, fmt.Errorf("%w: tmux %s exited with status %d: %s",
			model.ErrProcess, strings.Join(args, " "), out.ExitCode, strings.TrimSpace(string(out.Stderr)))
	}
	return out, nil
}

// exactTarget prefixes a session name with '=' so tmux matches it exactly
// instead of treating it as a prefix or pattern.
func exactTarget(name string) string {
	return "=" + name
}
