package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear learner stats for the current mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprintf(out, "This deletes every card score and progress record for mode %q.\n", e.cfg.Mode)
			fmt.Fprintln(out, "Run again with --yes to confirm.")
			return nil
		}

		ctx := cmd.Context()
		if err := e.store.ItemStats().Reset(ctx, e.cfg.Mode); err != nil {
			return fmt.Errorf("reset item stats: %w", err)
		}
		if err := e.store.Progress().Reset(ctx, e.cfg.Mode); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		e.log.WithField("mode", e.cfg.Mode).Info("learner data reset")
		fmt.Fprintf(out, "Stats for mode %q cleared.\n", e.cfg.Mode)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
