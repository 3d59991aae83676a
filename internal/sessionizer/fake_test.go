package sessionizer

import (
	"context"
	"fmt"

	"github.com/timvw/tmux-sessionizer/internal/model"
	"github.com/timvw/tmux-sessionizer/internal/mux"
)

// fakeMux is an in-memory Multiplexer that records every call.
type fakeMux struct {
	running  bool
	sessions model.Sessions
	current  string

	calls  []string
	failOn string // call name that returns an error
}

func newFakeMux(running bool, sessions model.Sessions) *fakeMux {
	if sessions == nil {
		sessions = model.Sessions{}
	}
	return &fakeMux{running: running, sessions: sessions}
}

func (f *fakeMux) record(call string) error {
	f.calls = append(f.calls, call)
	name := call
	for i, r := range call {
		if r == ' ' {
			name = call[:i]
			break
		}
	}
	if f.failOn == name {
		return fmt.Errorf("%s failed", name)
	}
	return nil
}

func (f *fakeMux) Name() string { return "fake" }

func (f *fakeMux) IsRunning(context.Context) (bool, error) {
	if err := f.record("is-running"); err != nil {
		return false, err
	}
	return f.running, nil
}

func (f *fakeMux) ListSessions(context.Context) (model.Sessions, error) {
	if err := f.record("list-sessions"); err != nil {
		return nil, err
	}
	out := make(model.Sessions, len(f.sessions))
	for k, v := range f.sessions {
		out[k] = v
	}
	return out, nil
}

func (f *fakeMux) HasSession(_ context.Context, name string) (bool, error) {
	if err := f.record("has-session " + name); err != nil {
		return false, err
	}
	_, ok := f.sessions[name]
	return ok, nil
}

func (f *fakeMux) NewSession(_ context.Context, name string, workdir model.WorkDir, detached bool) (mux.Output, error) {
	call := fmt.Sprintf("new-session %s %s detached=%t", name, workdir, detached)
	if err := f.record(call); err != nil {
		return mux.Output{ExitCode: 1, Stderr: []byte("boom")}, err
	}
	f.sessions[name] = model.SessionStats{WindowCount: 1, Attached: !detached}
	return mux.Output{}, nil
}

func (f *fakeMux) NewGroupedSession(_ context.Context, target string) (mux.Output, error) {
	if err := f.record("new-grouped-session " + target); err != nil {
		return mux.Output{ExitCode: 1}, err
	}
	return mux.Output{}, nil
}

func (f *fakeMux) Attach(_ context.Context, name string) (mux.Output, error) {
	if err := f.record("attach-session " + name); err != nil {
		return mux.Output{ExitCode: 1}, err
	}
	return mux.Output{}, nil
}

func (f *fakeMux) SwitchClient(_ context.Context, name string) (mux.Output, error) {
	if err := f.record("switch-client " + name); err != nil {
		return mux.Output{ExitCode: 1}, err
	}
	return mux.Output{}, nil
}

func (f *fakeMux) KillSession(_ context.Context, name string) (mux.Output, error) {
	if err := f.record("kill-session " + name); err != nil {
		return mux.Output{ExitCode: 1}, err
	}
	delete(f.sessions, name)
	return mux.Output{}, nil
}

func (f *fakeMux) CurrentSession(context.Context) (string, error) {
	if err := f.record("current-session"); err != nil {
		return "", err
	}
	return f.current, nil
}
