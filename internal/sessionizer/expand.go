// Package sessionizer turns configuration entries and live tmux sessions into
// a ranked list of candidates, and drives tmux to open the chosen one.
package sessionizer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/timvw/tmux-sessionizer/internal/model"
)

// tmux rewrites these characters to '_' in session names.
var sessionNameReplacer = strings.NewReplacer(".", "_", ":", "_")

// SessionName returns the name tmux would give a session created as s, so
// configured candidates match the live sessions they create.
func SessionName(s string) string {
	return sessionNameReplacer.Replace(s)
}

// Expand turns configuration entries into candidates in entry order. Preview
// commands carry the entry-level override only; see ResolvePreview.
// The first failing entry aborts the whole expansion.
func Expand(entries []model.Entry) ([]model.PromptItem, error) {
	var items []model.PromptItem
	for _, entry := range entries {
		switch e := entry.(type) {
		case model.PlainEntry:
			item := model.NewPromptItem(SessionName(e.Label), e.WorkDir)
			item.Preview = e.Preview
			items = append(items, item)
		case model.DirEntry:
			children, err := expandDir(e)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", entry.EntryLabel(), err)
			}
			items = append(items, children...)
		default:
			return nil, fmt.Errorf("%w: entry %q: unsupported entry type %T", model.ErrConfig, entry.EntryLabel(), entry)
		}
	}
	return items, nil
}

// expandDir emits one candidate per immediate subdirectory of e.Root.
func expandDir(e model.DirEntry) ([]model.PromptItem, error) {
	root := e.Root.String()
	dirents, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %w", model.ErrIO, root, err)
	}

	items := make([]model.PromptItem, 0, len(dirents))
	for _, d := range dirents {
		child := d.Name()
		if e.Excluded(child) {
			continue
		}
		path := filepath.Join(root, child)
		if !isDir(d, path) {
			continue
		}
		if !utf8.ValidString(path) {
			return nil, fmt.Errorf("%w: %q is not valid UTF-8", model.ErrPath, path)
		}
		wd, err := model.NewWorkDir(path)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Label, err)
		}
		item := model.NewPromptItem(SessionName(e.Label+" - "+child), wd)
		item.Preview = e.Preview
		items = append(items, item)
	}
	return items, nil
}

// isDir reports whether d is a directory, following symlinks. Dangling links
// are not directories.
func isDir(d fs.DirEntry, path string) bool {
	if d.IsDir() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
