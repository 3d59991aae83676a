package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagKillCurrent bool
	flagKillName    string
)

var killCmd = &cobra.Command{
	Use:   "kill",
	Short: "Kill the current session or a named one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cmd)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		name := flagKillName
		if flagKillCurrent {
			name, err = a.controller.CurrentSession(ctx)
			if err != nil {
				return fmt.Errorf("resolving current session: %w", err)
			}
		}

		if flagDryRun {
			fmt.Printf("would kill %s\n", name)
			return nil
		}
		transcript, err := a.controller.Kill(ctx, name)
		printTranscript(transcript)
		return err
	},
}

func init() {
	killCmd.Flags().BoolVar(&flagKillCurrent, "current", false, "kill the session this command runs in")
	killCmd.Flags().StringVar(&flagKillName, "name", "", "kill the named session")
	killCmd.MarkFlagsMutuallyExclusive("current", "name")
	killCmd.MarkFlagsOneRequired("current", "name")
	rootCmd.AddCommand(killCmd)
}
