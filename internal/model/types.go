package model

import (
	"fmt"
)

// SessionStats is what tmux reports about a live session.
type SessionStats struct {
	// WindowCount is the number of windows in the session.
	WindowCount uint8 `json:"window_count"`
	// Attached is true when a client is currently connected to the session.
	Attached bool `json:"attached"`
}

// Sessions maps a live session name to its stats.
type Sessions map[string]SessionStats

// PreviewCommands holds the preview templates for a candidate.
// Templates may contain {{name}} and {{workdir}} placeholders.
// An empty string means the template is absent.
type PreviewCommands struct {
	// Running is used when the candidate has a live session.
	Running string `json:"running,omitempty" toml:"running,omitempty" yaml:"running,omitempty"`
	// NotRunning is used when the candidate has no live session.
	NotRunning string `json:"not_running,omitempty" toml:"not_running,omitempty" yaml:"not_running,omitempty"`
}

// IsEmpty reports whether neither template is set.
func (p *PreviewCommands) IsEmpty() bool {
	return p == nil || (p.Running == "" && p.NotRunning == "")
}

// PromptItem is one selectable candidate.
type PromptItem struct {
	// Name is the selection key and the tmux session name.
	Name string `json:"name"`
	// WorkDir is where a new session for this candidate is started.
	WorkDir WorkDir `json:"workdir"`
	// Stats is set when a live session with this name exists.
	Stats *SessionStats `json:"stats,omitempty"`
	// Preview holds the resolved preview templates, or nil for no preview.
	Preview *PreviewCommands `json:"preview,omitempty"`
}

// NewPromptItem returns a candidate with no live stats and no preview.
func NewPromptItem(name string, workdir WorkDir) PromptItem {
	return PromptItem{Name: name, WorkDir: workdir}
}

// Running reports whether the candidate has a live session.
func (p PromptItem) Running() bool {
	return p.Stats != nil
}

// Attached reports whether a client is attached to the candidate's session.
func (p PromptItem) Attached() bool {
	return p.Stats != nil && p.Stats.Attached
}

// String renders the candidate for verbose output.
func (p PromptItem) String() string {
	if p.Stats == nil {
		return fmt.Sprintf("%s (%s)", p.Name, p.WorkDir)
	}
	return fmt.Sprintf("%s (%s, %d window(s), attached=%t)", p.Name, p.WorkDir, p.Stats.WindowCount, p.Stats.Attached)
}

// Entry is a declarative configuration entry. It is either a DirEntry or a
// PlainEntry.
type Entry interface {
	// EntryLabel returns the configured label.
	EntryLabel() string
	isEntry()
}

// DirEntry expands to one candidate per immediate subdirectory of Root.
type DirEntry struct {
	Label    string
	Root     WorkDir
	Excludes []string
	Preview  *PreviewCommands
}

// PlainEntry expands to exactly one candidate.
type PlainEntry struct {
	Label   string
	WorkDir WorkDir
	Preview *PreviewCommands
}

func (e DirEntry) EntryLabel() string   { return e.Label }
func (e PlainEntry) EntryLabel() string { return e.Label }

func (DirEntry) isEntry()   {}
func (PlainEntry) isEntry() {}

// Excluded reports whether a child directory name is listed in Excludes.
func (e DirEntry) Excluded(name string) bool {
	for _, x := range e.Excludes {
		if x == name {
			return true
		}
	}
	return false
}
