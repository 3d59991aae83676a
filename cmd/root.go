package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/timvw/tmux-sessionizer/internal/config"
	"github.com/timvw/tmux-sessionizer/internal/logging"
	"github.com/timvw/tmux-sessionizer/internal/model"
	"github.com/timvw/tmux-sessionizer/internal/mux"
	telem "github.com/timvw/tmux-sessionizer/internal/otel"
	"github.com/timvw/tmux-sessionizer/internal/sessionizer"
)

var (
	// Global flags.
	flagConfig           string
	flagNoBanner         bool
	flagDryRun           bool
	flagVerbose          bool
	flagSort             bool
	flagPreview          string
	flagPreviewNoSession string
)

var rootCmd = &cobra.Command{
	Use:   "tmux-sessionizer",
	Short: "Pick or create a tmux session with a fuzzy finder",
	Long: `tmux-sessionizer lists the sessions declared in its config file together
with the sessions already running in tmux, lets you pick one with a fuzzy
finder, and attaches to it (creating it first if needed).

Configuration is read from $SESSIONIZER_CONFIG, else
$XDG_CONFIG_HOME/tmux/sessionizer.toml, else ~/.config/tmux/sessionizer.toml.
Run "tmux-sessionizer config --example" for a starting point.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, false)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	bindGlobalFlags(rootCmd.PersistentFlags())
}

// bindGlobalFlags registers the flags shared by every subcommand.
func bindGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&flagConfig, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/tmux/sessionizer.toml)")
	fs.BoolVar(&flagNoBanner, "no-banner", false, "hide the banner above the list")
	fs.BoolVarP(&flagDryRun, "dry-run", "d", false, "print what would be done instead of changing tmux")
	fs.BoolVarP(&flagVerbose, "verbose", "v", false, "log tmux invocations and decisions to stderr")
	fs.BoolVarP(&flagSort, "sort", "s", false, "rank live sessions first (overrides the config file)")
	fs.StringVar(&flagPreview, "preview", "", "preview command for running sessions ({{name}}, {{workdir}})")
	fs.StringVar(&flagPreviewNoSession, "preview-no-session", "", "preview command for candidates without a session")
}

// applyFlags applies explicitly set command-line flags on top of cfg.
func applyFlags(cfg *config.Config, fs *pflag.FlagSet) {
	if fs.Changed("sort") {
		cfg.Sort = flagSort
	}
	if fs.Changed("verbose") {
		cfg.Verbose = flagVerbose
	}
	if flagNoBanner {
		cfg.HideBanner = true
	}
}

// previewOverride returns the command-line preview level, or nil.
func previewOverride() *model.PreviewCommands {
	p := &model.PreviewCommands{Running: flagPreview, NotRunning: flagPreviewNoSession}
	if p.IsEmpty() {
		return nil
	}
	return p
}

// app wires configuration, logging, telemetry and tmux for one command run.
type app struct {
	cfg        *config.Config
	logs       *logging.Manager
	tel        *telem.Telemetry
	tmux       *mux.Tmux
	controller *sessionizer.Controller
}

// newApp loads configuration (defaults -> file -> env -> flags) and builds
// the collaborators. Callers must Close the result.
func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, cmd.Flags())

	logs, err := newLogManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		logs = logging.NewNop()
	}
	logger := logs.For("cmd")
	if cfg.ConfigFile != "" {
		logger.Debug("config loaded", zap.String("path", cfg.ConfigFile))
	}

	// Wire build version into OTEL service metadata
	telem.Version = Version

	// Initialize OTEL (no-op if no endpoint configured)
	tel, err := telem.Init(ctx, telem.OTELConfig{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: otel init failed: %v\n", err)
	}

	exec := mux.NewExecExecutor(logs.For("exec"))
	tm := mux.NewTmux(exec, cfg.Verbose, logs.For("mux")).WithMetrics(tel.MetricsOrNil())

	return &app{
		cfg:        cfg,
		logs:       logs,
		tel:        tel,
		tmux:       tm,
		controller: sessionizer.NewController(tm, logs.For("controller")),
	}, nil
}

func newLogManager(cfg *config.Config) (*logging.Manager, error) {
	path := cfg.LogFile
	if path == "" {
		path = logging.DefaultPath()
	}
	lc := logging.Config{FilePath: path, Level: "info"}
	if cfg.Verbose {
		lc.Level = "debug"
		lc.Console = os.Stderr
	}
	return logging.NewManager(lc)
}

// Close flushes telemetry and logs.
func (a *app) Close(ctx context.Context) {
	a.tel.Shutdown(ctx)
	_ = a.logs.Close()
}

// builder returns a candidate builder over the configured entries.
func (a *app) builder() (*sessionizer.Builder, error) {
	entries, err := a.cfg.ModelEntries()
	if err != nil {
		return nil, err
	}
	defaultDir, err := a.cfg.DefaultWorkDir()
	if err != nil {
		return nil, err
	}
	return &sessionizer.Builder{
		Mux:           a.tmux,
		Entries:       entries,
		DefaultDir:    defaultDir,
		GlobalPreview: a.cfg.GlobalPreviewOrDefault(),
		Override:      previewOverride(),
		Sort:          a.cfg.Sort,
		Metrics:       a.tel.MetricsOrNil(),
		Logger:        a.logs.For("sessionizer"),
	}, nil
}

// open brings the caller to item, or prints the plan in dry-run mode.
func (a *app) open(ctx context.Context, item model.PromptItem, grouped bool) error {
	ctx, span := a.tel.StartSpan(ctx, "open")
	defer span.End()

	opts := sessionizer.OpenOptions{Grouped: grouped, InsideSession: mux.InsideSession()}
	a.logs.For("cmd").Info("selected",
		zap.Stringer("item", item),
		zap.Bool("inside_session", opts.InsideSession),
		zap.Bool("grouped", grouped))

	if flagDryRun {
		plan, err := a.controller.Plan(ctx, item, opts)
		if err != nil {
			return err
		}
		fmt.Println(plan)
		return nil
	}

	transcript, err := a.controller.Open(ctx, item, opts)
	printTranscript(transcript)
	return err
}

// printTranscript surfaces what tmux printed for each step.
func printTranscript(t *sessionizer.Transcript) {
	if t == nil {
		return
	}
	for _, s := range t.Steps {
		if len(s.Output.Stdout) > 0 {
			fmt.Print(string(s.Output.Stdout))
		}
		if len(s.Output.Stderr) > 0 {
			fmt.Fprint(os.Stderr, string(s.Output.Stderr))
		}
	}
}
