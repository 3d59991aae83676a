package cmd

import (
	"testing"

	"github.com/timvw/tmux-sessionizer/internal/config"
	"github.com/timvw/tmux-sessionizer/internal/logging"
	"github.com/timvw/tmux-sessionizer/internal/model"
)

func newTestApp(entries ...config.FileEntry) *app {
	cfg := config.Defaults()
	cfg.DefaultDir = "/default"
	cfg.Entries = entries
	return &app{cfg: cfg, logs: logging.NewNop()}
}

func TestResolve(t *testing.T) {
	a := newTestApp(
		config.FileEntry{Kind: config.KindPlain, Label: "my.proj", WorkDir: "/work/proj"},
		config.FileEntry{Kind: config.KindPlain, Label: "api", WorkDir: "/work/api"},
	)

	tests := []struct {
		arg         string
		wantName    string
		wantWorkDir model.WorkDir
	}{
		{"api", "api", "/work/api"},
		{"my.proj", "my_proj", "/work/proj"},
		{"my_proj", "my_proj", "/work/proj"},
		{"scratch", "scratch", "/default"},
		{"host:8080", "host_8080", "/default"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := a.resolve(tt.arg)
			if err != nil {
				t.Fatalf("resolve(%q) error = %v", tt.arg, err)
			}
			if got.Name != tt.wantName || got.WorkDir != tt.wantWorkDir {
				t.Errorf("resolve(%q) = name %q workdir %q, want %q in %q",
					tt.arg, got.Name, got.WorkDir, tt.wantName, tt.wantWorkDir)
			}
		})
	}
}
