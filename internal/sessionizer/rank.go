package sessionizer

import (
	"sort"
	"strings"

	"github.com/timvw/tmux-sessionizer/internal/model"
)

// Rank sorts items in place: the attached session first, then candidates
// with a live session by window count (most first), then the rest. Ties are
// broken by case-insensitive name.
func Rank(items []model.PromptItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}

func less(a, b model.PromptItem) bool {
	if a.Attached() != b.Attached() {
		return a.Attached()
	}
	if a.Running() != b.Running() {
		return a.Running()
	}
	if a.Running() && a.Stats.WindowCount != b.Stats.WindowCount {
		return a.Stats.WindowCount > b.Stats.WindowCount
	}
	la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if la != lb {
		return la < lb
	}
	return a.Name < b.Name
}
