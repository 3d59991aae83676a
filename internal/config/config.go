// Package config loads tmux-sessionizer configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Command-line flags (applied by the cmd package)
//  2. Environment variables (SESSIONIZER_*)
//  3. Config file (TOML, or YAML when the extension is .yaml/.yml)
//  4. Built-in defaults
//
// Config file search order:
//  1. $SESSIONIZER_CONFIG
//  2. $XDG_CONFIG_HOME/tmux/sessionizer.toml
//  3. ~/.config/tmux/sessionizer.toml
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/timvw/tmux-sessionizer/internal/model"
)

// EntryKind selects how a configured entry expands into candidates.
type EntryKind string

const (
	// KindDirectory expands to one candidate per subdirectory.
	KindDirectory EntryKind = "Directory"
	// KindPlain expands to a single candidate.
	KindPlain EntryKind = "Plain"
)

// Config holds all tmux-sessionizer configuration.
type Config struct {
	// Directory for sessions that have no configuration entry.
	DefaultDir string `toml:"default_dir" yaml:"default_dir"`

	// Picker settings
	HideBanner   bool   `toml:"hide_banner" yaml:"hide_banner"`
	Sort         bool   `toml:"sort" yaml:"sort"`
	PreviewWidth int    `toml:"preview_width" yaml:"preview_width"` // percent of the terminal width
	Theme        string `toml:"theme" yaml:"theme"`                 // catppuccin flavour

	// Diagnostics
	Verbose bool   `toml:"verbose" yaml:"verbose"`
	LogFile string `toml:"log_file,omitempty" yaml:"log_file,omitempty"`

	// OTEL
	OTELEndpoint string `toml:"otel_endpoint,omitempty" yaml:"otel_endpoint,omitempty"`
	OTELHeaders  string `toml:"otel_headers,omitempty" yaml:"otel_headers,omitempty"` // Comma-separated key=value pairs

	// GlobalPreview applies to every configured entry unless overridden.
	GlobalPreview *model.PreviewCommands `toml:"global_preview,omitempty" yaml:"global_preview,omitempty"`

	Entries []FileEntry `toml:"entry" yaml:"entry"`

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `toml:"-" yaml:"-"`
}

// FileEntry is one [[entry]] table as written in the config file.
type FileEntry struct {
	Kind     EntryKind              `toml:"kind" yaml:"kind"`
	Label    string                 `toml:"label" yaml:"label"`
	Name     string                 `toml:"name,omitempty" yaml:"name,omitempty"` // older spelling of label
	WorkDir  string                 `toml:"workdir" yaml:"workdir"`
	Excludes []string               `toml:"excludes,omitempty" yaml:"excludes,omitempty"`
	Preview  *model.PreviewCommands `toml:"preview,omitempty" yaml:"preview,omitempty"`
}

// DefaultPreview is the built-in global preview used when the config file
// declares none.
var DefaultPreview = model.PreviewCommands{
	Running:    "tmux capture-pane -ep -t '={{name}}'",
	NotRunning: "ls -la '{{workdir}}'",
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		DefaultDir:   "~",
		PreviewWidth: 30,
		Theme:        "mocha",
	}
}

// DefaultPath returns the config file path used when none is given.
func DefaultPath() string {
	if p := os.Getenv("SESSIONIZER_CONFIG"); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tmux", "sessionizer.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "tmux", "sessionizer.toml")
}

// Load reads configuration from path and the environment. An empty path
// means DefaultPath(); a missing default file is not an error, but a missing
// explicitly given file is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(path, data, cfg); err != nil {
				return nil, err
			}
			cfg.ConfigFile = path
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// No config file: defaults plus live sessions only.
		default:
			return nil, fmt.Errorf("%w: reading config file %s: %w", model.ErrIO, path, err)
		}
	}

	if err := mergeEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode unmarshals data over cfg, choosing the format by file extension.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: parsing config file %s: %w", model.ErrConfig, path, err)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("%w: parsing config file %s: %w", model.ErrConfig, path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return fmt.Errorf("%w: config file %s: unknown keys: %s", model.ErrConfig, path, strings.Join(keys, ", "))
		}
	}
	return nil
}

// mergeEnv applies environment variables onto cfg. Env always wins over the file.
func mergeEnv(cfg *Config) error {
	if v := os.Getenv("SESSIONIZER_DEFAULT_DIR"); v != "" {
		cfg.DefaultDir = v
	}
	if v := os.Getenv("SESSIONIZER_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("SESSIONIZER_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("SESSIONIZER_PREVIEW_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: SESSIONIZER_PREVIEW_WIDTH=%q: %w", model.ErrConfig, v, err)
		}
		cfg.PreviewWidth = n
	}
	for key, dst := range map[string]*bool{
		"SESSIONIZER_SORT":        &cfg.Sort,
		"SESSIONIZER_VERBOSE":     &cfg.Verbose,
		"SESSIONIZER_HIDE_BANNER": &cfg.HideBanner,
	} {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %s=%q: %w", model.ErrConfig, key, v, err)
			}
			*dst = b
		}
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
	return nil
}

// Validate checks the settings and every entry's shape. It does not touch
// the environment or the filesystem.
func (c *Config) Validate() error {
	if c.PreviewWidth < 1 || c.PreviewWidth > 100 {
		return fmt.Errorf("%w: preview_width must be between 1 and 100, got %d", model.ErrConfig, c.PreviewWidth)
	}
	for i, e := range c.Entries {
		if err := e.validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return nil
}

func (e FileEntry) label() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Name
}

func (e FileEntry) kind() (EntryKind, error) {
	switch e.Kind {
	case KindDirectory, "Dir":
		return KindDirectory, nil
	case KindPlain:
		return KindPlain, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q (supported: Directory, Plain)", model.ErrConfig, e.Kind)
	}
}

func (e FileEntry) validate() error {
	kind, err := e.kind()
	if err != nil {
		return err
	}
	if e.label() == "" {
		return fmt.Errorf("%w: label is required", model.ErrConfig)
	}
	if e.WorkDir == "" {
		return fmt.Errorf("%w: %q: workdir is required", model.ErrConfig, e.label())
	}
	if kind == KindPlain && len(e.Excludes) > 0 {
		return fmt.Errorf("%w: %q: excludes is only valid on Directory entries", model.ErrConfig, e.label())
	}
	return nil
}

// ModelEntries converts the file entries into model entries, substituting
// environment tokens in every working directory.
func (c *Config) ModelEntries() ([]model.Entry, error) {
	entries := make([]model.Entry, 0, len(c.Entries))
	for i, e := range c.Entries {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		wd, err := model.NewWorkDir(e.WorkDir)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i+1, e.label(), err)
		}
		kind, _ := e.kind()
		switch kind {
		case KindDirectory:
			entries = append(entries, model.DirEntry{
				Label:    e.label(),
				Root:     wd,
				Excludes: e.Excludes,
				Preview:  e.Preview,
			})
		case KindPlain:
			entries = append(entries, model.PlainEntry{
				Label:   e.label(),
				WorkDir: wd,
				Preview: e.Preview,
			})
		}
	}
	return entries, nil
}

// DefaultWorkDir returns the substituted default_dir.
func (c *Config) DefaultWorkDir() (model.WorkDir, error) {
	wd, err := model.NewWorkDir(c.DefaultDir)
	if err != nil {
		return "", fmt.Errorf("default_dir: %w", err)
	}
	return wd, nil
}

// GlobalPreviewOrDefault returns the configured global preview, falling back
// to DefaultPreview when the file declares none.
func (c *Config) GlobalPreviewOrDefault() *model.PreviewCommands {
	if c.GlobalPreview != nil {
		return c.GlobalPreview
	}
	p := DefaultPreview
	return &p
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// Example returns an example config file with placeholder values.
func Example() (string, error) {
	cfg := &Config{
		DefaultDir:   "~",
		Sort:         true,
		PreviewWidth: 30,
		Theme:        "mocha",
		GlobalPreview: &model.PreviewCommands{
			Running:    DefaultPreview.Running,
			NotRunning: DefaultPreview.NotRunning,
		},
		Entries: []FileEntry{
			{Kind: KindPlain, Label: "My session", WorkDir: "/"},
			{
				Kind:     KindDirectory,
				Label:    "My Projects Dir",
				WorkDir:  "~/src",
				Excludes: []string{"node_modules", ".git"},
				Preview:  &model.PreviewCommands{NotRunning: "git -C '{{workdir}}' log --oneline -n 20"},
			},
		},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		return "", err
	}
	return buf.String(), nil
}
