package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewManager_WritesJSONToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "test.log")

	mgr, err := NewManager(Config{FilePath: logFile, Level: "debug"})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	mgr.For("mux").Debug("executing command")
	if err := mgr.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `"logger":"mux"`) {
		t.Errorf("log file missing scope: %s", content)
	}
	if !strings.Contains(content, `"msg":"executing command"`) {
		t.Errorf("log file missing message: %s", content)
	}
}

func TestNewManager_RequiresPath(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Fatal("expected error for empty FilePath")
	}
}

func TestNewManager_LevelFallback(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			mgr, err := NewManager(Config{FilePath: filepath.Join(t.TempDir(), "x.log"), Level: tt.level})
			if err != nil {
				t.Fatalf("NewManager() error = %v", err)
			}
			defer func() { _ = mgr.Close() }()
			if mgr.Level() != tt.want {
				t.Errorf("Level() = %v, want %v", mgr.Level(), tt.want)
			}
		})
	}
}

func TestNewManager_ConsoleTee(t *testing.T) {
	var console bytes.Buffer
	mgr, err := NewManager(Config{
		FilePath: filepath.Join(t.TempDir(), "x.log"),
		Level:    "info",
		Console:  &console,
	})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	mgr.For("controller").Info("switching client")
	mgr.For("controller").Debug("hidden at info level")
	_ = mgr.Close()

	out := console.String()
	if !strings.Contains(out, "switching client") {
		t.Errorf("console output missing info record: %q", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Errorf("console output contains debug record at info level: %q", out)
	}
}

func TestNewNop(t *testing.T) {
	mgr := NewNop()
	mgr.For("anything").Info("discarded")
	if err := mgr.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultPath(); got != "/state/tmux-sessionizer/sessionizer.log" {
		t.Errorf("DefaultPath() = %q", got)
	}

	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/home/tester")
	if got := DefaultPath(); got != "/home/tester/.local/state/tmux-sessionizer/sessionizer.log" {
		t.Errorf("DefaultPath() = %q", got)
	}
}
