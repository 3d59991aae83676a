// Package logging builds the zap loggers used across tmux-sessionizer.
//
// Log records go to a rotating JSON file. In verbose mode a human-readable
// console core on stderr is teed in so tmux invocations are visible while
// the command runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds configuration for the Manager.
type Config struct {
	FilePath   string // Path to log file
	MaxSizeMB  int    // Max size in MB before rotation
	MaxBackups int    // Max number of old log files to keep
	MaxAgeDays int    // Max days to keep old log files
	Level      string // Minimum log level (debug, info, warn, error)

	// Console, when non-nil, receives console-encoded records as well.
	Console io.Writer
}

// Manager owns the base logger and the rotating file behind it.
type Manager struct {
	base       *zap.Logger
	fileWriter *lumberjack.Logger
	level      zapcore.Level
}

// NewManager creates a log manager with the given configuration.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("log file path is required")
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 5
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays == 0 {
		cfg.MaxAgeDays = 14
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(fileWriter), level),
	}
	if cfg.Console != nil {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.TimeKey = ""
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.AddSync(cfg.Console),
			level,
		))
	}

	return &Manager{
		base:       zap.New(zapcore.NewTee(cores...)),
		fileWriter: fileWriter,
		level:      level,
	}, nil
}

// NewNop returns a manager whose loggers discard everything.
func NewNop() *Manager {
	return &Manager{base: zap.NewNop(), level: zapcore.InfoLevel}
}

// For returns a logger named after the given scope (e.g. "mux", "controller").
func (m *Manager) For(scope string) *zap.Logger {
	return m.base.Named(scope)
}

// Level returns the minimum enabled level.
func (m *Manager) Level() zapcore.Level {
	return m.level
}

// Close flushes buffered records and closes the log file.
func (m *Manager) Close() error {
	_ = m.base.Sync()
	if m.fileWriter == nil {
		return nil
	}
	return m.fileWriter.Close()
}

// DefaultPath returns the default log file location:
// $XDG_STATE_HOME/tmux-sessionizer/sessionizer.log, falling back to
// ~/.local/state and finally the temp dir.
func DefaultPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "tmux-sessionizer", "sessionizer.log")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), fmt.Sprintf("tmux-sessionizer-%d", os.Getuid()), "sessionizer.log")
	}
	return filepath.Join(home, ".local", "state", "tmux-sessionizer", "sessionizer.log")
}
