package sessionizer

import (
	"sort"

	"github.com/timvw/tmux-sessionizer/internal/model"
)

// Reconcile merges expanded candidates with the live sessions.
//
// Candidates whose name matches a live session get its stats, and the
// session is removed from sessions. Every session left over becomes an
// orphan candidate started in defaultDir, with no preview, appended in name
// order. Names are matched exactly. If two candidates share a name only the
// first is kept.
func Reconcile(items []model.PromptItem, sessions model.Sessions, defaultDir model.WorkDir) []model.PromptItem {
	out := make([]model.PromptItem, 0, len(items)+len(sessions))
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		if _, dup := seen[item.Name]; dup {
			continue
		}
		seen[item.Name] = struct{}{}

		if stats, ok := sessions[item.Name]; ok {
			s := stats
			item.Stats = &s
			delete(sessions, item.Name)
		}
		out = append(out, item)
	}

	orphans := make([]string, 0, len(sessions))
	for name := range sessions {
		orphans = append(orphans, name)
	}
	sort.Strings(orphans)

	for _, name := range orphans {
		s := sessions[name]
		out = append(out, model.PromptItem{
			Name:    name,
			WorkDir: defaultDir,
			Stats:   &s,
		})
	}
	return out
}
