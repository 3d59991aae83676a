package sessionizer

import (
	"strings"

	"github.com/timvw/tmux-sessionizer/internal/model"
)

// ResolvePreview merges the three preview levels field by field: for each of
// Running and NotRunning the override wins, then the entry, then the global
// value. Any level may be nil. Returns nil when neither field is set.
func ResolvePreview(global, entry, override *model.PreviewCommands) *model.PreviewCommands {
	levels := []*model.PreviewCommands{override, entry, global}
	resolved := &model.PreviewCommands{
		Running:    firstSet(levels, func(p *model.PreviewCommands) string { return p.Running }),
		NotRunning: firstSet(levels, func(p *model.PreviewCommands) string { return p.NotRunning }),
	}
	if resolved.IsEmpty() {
		return nil
	}
	return resolved
}

func firstSet(levels []*model.PreviewCommands, field func(*model.PreviewCommands) string) string {
	for _, p := range levels {
		if p == nil {
			continue
		}
		if v := field(p); v != "" {
			return v
		}
	}
	return ""
}

// ApplyPreviews replaces each item's entry-level preview with the resolved
// one. Call it on expanded candidates before reconciling.
func ApplyPreviews(items []model.PromptItem, global, override *model.PreviewCommands) {
	for i := range items {
		items[i].Preview = ResolvePreview(global, items[i].Preview, override)
	}
}

// RenderPreview returns the shell command that previews item: the Running
// template when the item has a live session, NotRunning otherwise, with
// {{name}} and {{workdir}} substituted. An absent template renders as "".
func RenderPreview(item model.PromptItem) string {
	if item.Preview == nil {
		return ""
	}
	tmpl := item.Preview.NotRunning
	if item.Running() {
		tmpl = item.Preview.Running
	}
	if tmpl == "" {
		return ""
	}
	return strings.NewReplacer(
		"{{name}}", item.Name,
		"{{workdir}}", item.WorkDir.String(),
	).Replace(tmpl)
}
