package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/timvw/tmux-sessionizer/internal/mux"
	"github.com/timvw/tmux-sessionizer/internal/picker"
)

var flagGrouped bool

// Previews of live sessions change quickly; keep them only briefly.
const previewCacheTTL = 10 * time.Second

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Choose a session from config and running tmux sessions",
	Long: `List the configured candidates together with the running tmux sessions
and switch to the one you choose. This is the default command.

Running sessions are marked with their window count; the attached one with (*).
Press Enter to open the highlighted candidate, Esc to cancel.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, flagGrouped)
	},
}

func init() {
	listCmd.Flags().BoolVar(&flagGrouped, "grouped", false, "also create a session grouped with the chosen one")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, grouped bool) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	ctx, span := a.tel.StartSpan(ctx, "list")
	defer span.End()

	b, err := a.builder()
	if err != nil {
		return err
	}
	items, err := b.Build(ctx)
	if err != nil {
		return err
	}

	p := &picker.Picker{
		Items:        items,
		Theme:        picker.ThemeByName(a.cfg.Theme),
		HideBanner:   a.cfg.HideBanner,
		PreviewWidth: a.cfg.PreviewWidth,
		Preview:      picker.ShellPreview(&mux.ExecExecutor{Logger: a.logs.For("preview")}),
		Cache:        picker.NewPreviewCache(previewCacheTTL),
		Metrics:      a.tel.MetricsOrNil(),
		Logger:       a.logs.For("picker"),
	}
	chosen, err := p.Run(ctx)
	if err != nil {
		return err
	}
	if chosen == nil {
		return nil // cancelled
	}
	return a.open(ctx, *chosen, grouped)
}
