package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/timvw/tmux-sessionizer/internal/model"
	"github.com/timvw/tmux-sessionizer/internal/sessionizer"
)

var flagSwitchGrouped bool

var switchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Switch directly to a session, creating it if needed",
	Long: `Switch directly to the named session without showing the picker.

If a configured candidate has that name, its working directory is used when
the session has to be created; otherwise the session starts in default_dir.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cmd)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		item, err := a.resolve(args[0])
		if err != nil {
			return err
		}
		return a.open(ctx, item, flagSwitchGrouped)
	},
}

func init() {
	switchCmd.Flags().BoolVar(&flagSwitchGrouped, "grouped", false, "also create a session grouped with this one")
	rootCmd.AddCommand(switchCmd)
}

// resolve finds the configured candidate called name, falling back to a
// candidate in default_dir. name is sanitized the way tmux would store it.
func (a *app) resolve(arg string) (model.PromptItem, error) {
	name := sessionizer.SessionName(arg)
	defaultDir, err := a.cfg.DefaultWorkDir()
	if err != nil {
		return model.PromptItem{}, err
	}
	entries, err := a.cfg.ModelEntries()
	if err != nil {
		return model.PromptItem{}, err
	}
	items, err := sessionizer.Expand(entries)
	if err != nil {
		return model.PromptItem{}, err
	}
	if item, ok := sessionizer.Find(items, name); ok {
		return item, nil
	}
	a.logs.For("cmd").Debug("no configured candidate, using default_dir", zap.String("name", name))
	return model.NewPromptItem(name, defaultDir), nil
}
