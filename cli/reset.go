package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/smart-pos/config"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/utils"
)

func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:          "reset",
		Short:        "Replace the saved snapshot with the seed data",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset discards every order, product and user change; pass --yes to confirm")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			if err := store.Save(cmd.Context(), engine.SeedSnapshot()); err != nil {
				return fmt.Errorf("failed to save seed snapshot: %w", err)
			}
			utils.InfoLogger.Infof("Snapshot %q reset to seed data", cfg.SnapshotKey)
			fmt.Fprintln(cmd.OutOrStdout(), "Snapshot reset to seed data.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm discarding the saved snapshot")

	return cmd
}
