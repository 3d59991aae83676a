package sessionizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/timvw/tmux-sessionizer/internal/model"
	"github.com/timvw/tmux-sessionizer/internal/mux"
)

// OpenOptions is the caller context Controller.Open acts on.
type OpenOptions struct {
	// Grouped also creates a session grouped with the chosen one.
	Grouped bool
	// InsideSession is true when the caller runs inside a tmux client.
	InsideSession bool
}

// Step is one tmux operation issued by the controller.
type Step struct {
	Action string // e.g. "new-session", "attach-session"
	Target string
	Output mux.Output
}

// Transcript records the operations issued by Open, in order, including a
// failed last step.
type Transcript struct {
	Steps []Step
}

func (t *Transcript) add(action, target string, out mux.Output) {
	t.Steps = append(t.Steps, Step{Action: action, Target: target, Output: out})
}

// Actions returns the issued actions, for diagnostics and tests.
func (t *Transcript) Actions() []string {
	actions := make([]string, len(t.Steps))
	for i, s := range t.Steps {
		actions[i] = s.Action
	}
	return actions
}

// Controller decides which tmux operations bring the caller to a candidate.
type Controller struct {
	Mux    mux.Multiplexer
	Logger *zap.Logger
}

// NewController returns a controller driving m.
func NewController(m mux.Multiplexer, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{Mux: m, Logger: logger}
}

// Open issues the minimal sequence of operations to attach or switch the
// caller to item:
//
//   - no server and not inside tmux: create the session in the foreground, done
//   - session missing: create it detached
//   - grouped: create a session grouped with it
//   - not inside tmux: attach, otherwise switch the client
//
// The first failing step aborts the sequence; earlier steps are not undone.
// The transcript is returned even on error.
func (c *Controller) Open(ctx context.Context, item model.PromptItem, opts OpenOptions) (*Transcript, error) {
	t := &Transcript{}
	log := c.Logger.With(zap.String("multiplexer", c.Mux.Name()), zap.String("session", item.Name))

	running, err := c.Mux.IsRunning(ctx)
	if err != nil {
		return t, processErr(err)
	}
	log.Debug("observed state", zap.Bool("server_running", running), zap.Bool("inside_session", opts.InsideSession))

	if !running && !opts.InsideSession {
		log.Info("creating session in foreground", zap.String("workdir", item.WorkDir.String()))
		out, err := c.Mux.NewSession(ctx, item.Name, item.WorkDir, false)
		t.add("new-session", item.Name, out)
		return t, processErr(err)
	}

	exists, err := c.Mux.HasSession(ctx, item.Name)
	if err != nil {
		return t, processErr(err)
	}
	if !exists {
		log.Info("creating detached session", zap.String("workdir", item.WorkDir.String()))
		out, err := c.Mux.NewSession(ctx, item.Name, item.WorkDir, true)
		t.add("new-session", item.Name, out)
		if err != nil {
			return t, processErr(err)
		}
	}

	if opts.Grouped {
		log.Info("creating grouped session")
		out, err := c.Mux.NewGroupedSession(ctx, item.Name)
		t.add("new-grouped-session", item.Name, out)
		if err != nil {
			return t, processErr(err)
		}
	}

	if !opts.InsideSession {
		log.Info("attaching")
		out, err := c.Mux.Attach(ctx, item.Name)
		t.add("attach-session", item.Name, out)
		return t, processErr(err)
	}
	log.Info("switching client")
	out, err := c.Mux.SwitchClient(ctx, item.Name)
	t.add("switch-client", item.Name, out)
	return t, processErr(err)
}

// Plan describes what Open would do without mutating anything. It still
// probes the server and the session to decide.
func (c *Controller) Plan(ctx context.Context, item model.PromptItem, opts OpenOptions) (string, error) {
	running, err := c.Mux.IsRunning(ctx)
	if err != nil {
		return "", processErr(err)
	}
	if !running && !opts.InsideSession {
		return fmt.Sprintf("would create %s in %s", item.Name, item.WorkDir), nil
	}

	var lines []string
	exists, err := c.Mux.HasSession(ctx, item.Name)
	if err != nil {
		return "", processErr(err)
	}
	if !exists {
		lines = append(lines, fmt.Sprintf("would create %s in %s", item.Name, item.WorkDir))
	}
	if opts.Grouped {
		lines = append(lines, fmt.Sprintf("would create a session grouped with %s", item.Name))
	}
	if opts.InsideSession {
		lines = append(lines, "would switch to "+item.Name)
	} else {
		lines = append(lines, "would attach to "+item.Name)
	}
	return strings.Join(lines, "\n"), nil
}

// Kill destroys the named session.
func (c *Controller) Kill(ctx context.Context, name string) (*Transcript, error) {
	t := &Transcript{}
	c.Logger.Info("killing session", zap.String("session", name))
	out, err := c.Mux.KillSession(ctx, name)
	t.add("kill-session", name, out)
	return t, processErr(err)
}

// CurrentSession returns the session the caller is attached to.
func (c *Controller) CurrentSession(ctx context.Context) (string, error) {
	name, err := c.Mux.CurrentSession(ctx)
	if err != nil {
		return "", processErr(err)
	}
	return name, nil
}

// processErr makes sure a multiplexer failure is classified as ErrProcess.
func processErr(err error) error {
	if err == nil || errors.Is(err, model.ErrProcess) {
		return err
	}
	return fmt.Errorf("%w: %w", model.ErrProcess, err)
}
