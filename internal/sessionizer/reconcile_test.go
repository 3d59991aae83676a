package sessionizer

import (
	"testing"

	"github.com/timvw/tmux-sessionizer/internal/model"
)

func TestReconcile_AttachesStatsAndSynthesizesOrphans(t *testing.T) {
	items := []model.PromptItem{
		model.NewPromptItem("proj", "/tmp/proj"),
		model.NewPromptItem("docs", "/tmp/docs"),
	}
	sessions := model.Sessions{
		"proj":  {WindowCount: 3, Attached: true},
		"zeta":  {WindowCount: 1},
		"alpha": {WindowCount: 2},
	}

	got := Reconcile(items, sessions, "/home/me")

	if len(got) != 4 {
		t.Fatalf("got %d candidates, want 4: %v", len(got), names(got))
	}
	wantNames := []string{"proj", "docs", "alpha", "zeta"}
	for i, n := range wantNames {
		if got[i].Name != n {
			t.Fatalf("order = %v, want %v", names(got), wantNames)
		}
	}

	if got[0].Stats == nil || got[0].Stats.WindowCount != 3 || !got[0].Stats.Attached {
		t.Errorf("proj stats = %+v", got[0].Stats)
	}
	if got[1].Stats != nil {
		t.Errorf("docs should have no stats, got %+v", got[1].Stats)
	}
	for _, orphan := range got[2:] {
		if orphan.WorkDir != "/home/me" {
			t.Errorf("%s: WorkDir = %q, want default dir", orphan.Name, orphan.WorkDir)
		}
		if orphan.Stats == nil {
			t.Errorf("%s: orphan has no stats", orphan.Name)
		}
		if orphan.Preview != nil {
			t.Errorf("%s: orphan has a preview", orphan.Name)
		}
	}

	if _, ok := sessions["proj"]; ok {
		t.Error("matched session should be removed from the live map")
	}
	if len(sessions) != 2 {
		t.Errorf("live map should hold only orphans, got %v", sessions)
	}
}

func TestReconcile_EveryLiveSessionExactlyOnce(t *testing.T) {
	tests := []struct {
		name     string
		items    []string
		sessions []string
	}{
		{"no config", nil, []string{"a", "b"}},
		{"no sessions", []string{"a", "b"}, nil},
		{"all matched", []string{"a", "b"}, []string{"b", "a"}},
		{"partial overlap", []string{"a", "b", "c"}, []string{"c", "d"}},
		{"case differs", []string{"Proj"}, []string{"proj"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var items []model.PromptItem
			for _, n := range tt.items {
				items = append(items, model.NewPromptItem(n, "/cfg"))
			}
			sessions := model.Sessions{}
			for _, n := range tt.sessions {
				sessions[n] = model.SessionStats{WindowCount: 1}
			}

			got := Reconcile(items, sessions, "/default")

			count := map[string]int{}
			for _, it := range got {
				count[it.Name]++
			}
			for n, c := range count {
				if c != 1 {
					t.Errorf("%q appears %d times", n, c)
				}
			}
			for _, n := range tt.sessions {
				if count[n] != 1 {
					t.Errorf("live session %q appears %d times", n, count[n])
				}
			}
			for _, it := range got {
				isLive := false
				for _, n := range tt.sessions {
					isLive = isLive || n == it.Name
				}
				if isLive != (it.Stats != nil) {
					t.Errorf("%q: live=%v but stats=%+v", it.Name, isLive, it.Stats)
				}
			}
		})
	}
}

func TestReconcile_DropsDuplicateNames(t *testing.T) {
	items := []model.PromptItem{
		model.NewPromptItem("dup", "/first"),
		model.NewPromptItem("dup", "/second"),
	}
	got := Reconcile(items, model.Sessions{"dup": {WindowCount: 2}}, "/d")
	if len(got) != 1 {
		t.Fatalf("got %v, want a single candidate", names(got))
	}
	if got[0].WorkDir != "/first" || got[0].Stats == nil {
		t.Errorf("got %+v, want first occurrence with stats", got[0])
	}
}

func TestReconcile_StatsAreCopies(t *testing.T) {
	sessions := model.Sessions{"a": {WindowCount: 1}}
	got := Reconcile([]model.PromptItem{model.NewPromptItem("a", "/")}, sessions, "/")
	got[0].Stats.WindowCount = 9
	if s, ok := sessions["a"]; ok && s.WindowCount != 1 {
		t.Error("candidate stats alias the live map")
	}
}
