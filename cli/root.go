package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/smart-pos/config"
	"github.com/yeremiapane/smart-pos/database"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/utils"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the smart-pos command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "smart-pos",
		Short: "Smart POS café terminal",
		Long:  "Point of sale terminal for a café: cart, checkout, kitchen and serving stations, catalog and settings.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			utils.InitLogger()
			if opts.Verbose {
				utils.InfoLogger.SetLevel(logrus.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))

	return cmd
}

func newEngine(cfg config.Config) *engine.Engine {
	return engine.New(
		engine.WithStrictTransitions(cfg.StrictTransitions),
		engine.WithCheckoutStatus(cfg.CheckoutStatus),
	)
}

// openStore connects to the configured database and makes sure the
// snapshot table exists.
func openStore(cfg config.Config) (*database.GormSnapshotStore, error) {
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	store := database.NewGormSnapshotStore(db, cfg.SnapshotKey)
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}
