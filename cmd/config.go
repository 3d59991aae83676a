package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/tmux-sessionizer/internal/config"
)

var flagExample bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the effective configuration (defaults, config file, environment and
flags merged) as TOML. With --example, print an example config file with
placeholder values instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagExample {
			text, err := config.Example()
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		}

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		applyFlags(cfg, cmd.Flags())
		if cfg.ConfigFile != "" {
			fmt.Fprintf(os.Stderr, "config: loaded %s\n", cfg.ConfigFile)
		}
		return config.Encode(os.Stdout, cfg)
	},
}

func init() {
	configCmd.Flags().BoolVar(&flagExample, "example", false, "print an example config file")
	rootCmd.AddCommand(configCmd)
}
