// Package mux provides an abstraction over the terminal multiplexer (tmux).
//
// This package is pure transport: it runs tmux subcommands through an
// Executor and parses what tmux reports. Deciding which commands to run for
// a chosen candidate is the session controller's job.
package mux

import (
	"context"

	"github.com/timvw/tmux-sessionizer/internal/model"
)

// Multiplexer abstracts the terminal multiplexer operations the sessionizer needs.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "tmux").
	Name() string

	// IsRunning reports whether a multiplexer server process exists.
	IsRunning(ctx context.Context) (bool, error)

	// ListSessions returns the live sessions keyed by name.
	ListSessions(ctx context.Context) (model.Sessions, error)

	// HasSession reports whether a session with the exact name exists.
	HasSession(ctx context.Context, name string) (bool, error)

	// NewSession creates a session named name starting in workdir. When
	// detached is false the call blocks while the user works in the session.
	NewSession(ctx context.Context, name string, workdir model.WorkDir, detached bool) (Output, error)

	// NewGroupedSession creates a detached session sharing windows with target.
	NewGroupedSession(ctx context.Context, target string) (Output, error)

	// Attach attaches the current terminal to the named session.
	Attach(ctx context.Context, name string) (Output, error)

	// SwitchClient moves the current client to the named session.
	SwitchClient(ctx context.Context, name string) (Output, error)

	// KillSession destroys the named session.
	KillSession(ctx context.Context, name string) (Output, error)

	// CurrentSession returns the name of the session the caller runs in.
	CurrentSession(ctx context.Context) (string, error)
}
