package cmd

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/timvw/tmux-sessionizer/internal/config"
)

func parseGlobal(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	bindGlobalFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return fs
}

func TestApplyFlags_OnlyChangedFlagsOverride(t *testing.T) {
	cfg := config.Defaults()
	cfg.Sort = true
	cfg.Verbose = true

	applyFlags(cfg, parseGlobal(t))
	if !cfg.Sort || !cfg.Verbose || cfg.HideBanner {
		t.Errorf("unset flags changed config: %+v", cfg)
	}

	applyFlags(cfg, parseGlobal(t, "--sort=false", "-v=false", "--no-banner"))
	if cfg.Sort || cfg.Verbose || !cfg.HideBanner {
		t.Errorf("explicit flags not applied: %+v", cfg)
	}
}

func TestPreviewOverride(t *testing.T) {
	parseGlobal(t)
	if p := previewOverride(); p != nil {
		t.Errorf("previewOverride() = %+v, want nil", p)
	}

	parseGlobal(t, "--preview", "tmux capture-pane -p -t '{{name}}'")
	p := previewOverride()
	if p == nil || p.Running != "tmux capture-pane -p -t '{{name}}'" || p.NotRunning != "" {
		t.Errorf("previewOverride() = %+v", p)
	}
}

func TestKillRequiresATarget(t *testing.T) {
	if err := killCmd.ValidateFlagGroups(); err == nil {
		t.Error("expected error when neither --current nor --name is set")
	}
}
