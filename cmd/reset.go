package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/phishcourse/internal/progress"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		if err := progress.NewStore(d.store.KV(), d.logger).Clear(ctx); err != nil {
			return fmt.Errorf("clear progress: %w", err)
		}
		d.logger.Info("progress reset")
		fmt.Fprintln(cmd.OutOrStdout(), "Progress cleared.")

		if events, _ := cmd.Flags().GetBool("events"); events {
			if err := d.store.EventRepo().DeleteEngagement(ctx); err != nil {
				return fmt.Errorf("delete events: %w", err)
			}
			d.logger.Info("engagement events deleted")
			fmt.Fprintln(cmd.OutOrStdout(), "Engagement history deleted.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("events", false, "Also delete recorded engagement events")
}
