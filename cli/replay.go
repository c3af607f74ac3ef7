package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/smart-pos/config"
	"github.com/yeremiapane/smart-pos/database"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/models"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	FromStore bool
	Save      bool
	Format    string // "text" | "json"
}

// ReplayReport is the json output of the replay command.
type ReplayReport struct {
	Script     string              `json:"script"`
	Steps      []engine.StepResult `json:"steps"`
	Mismatches int                 `json:"mismatches"`
	Orders     int                 `json:"orders"`
	CartItems  int                 `json:"cart_items"`
	SignedIn   string              `json:"signed_in,omitempty"`
}

func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Apply a recorded intent script and report each step",
		Long: `Apply every intent of a YAML script in order, starting from the seed data
or, with --from-store, from the saved snapshot.

Steps may declare expect_applied; the command fails when any step does not
meet its expectation.

Examples:
  smart-pos replay rush.yaml
  smart-pos replay rush.yaml --from-store --save
  smart-pos replay rush.yaml --format json`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format != "text" && opts.Format != "json" {
				return fmt.Errorf("invalid format %q: must be text or json", opts.Format)
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read script: %w", err)
			}
			script, err := engine.DecodeScript(data)
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runReplay(cmd.Context(), cmd.OutOrStdout(), cfg, opts, script)
		},
	}

	cmd.Flags().BoolVar(&opts.FromStore, "from-store", false, "start from the saved snapshot instead of the seed data")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "save the resulting snapshot")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	return cmd
}

func runReplay(ctx context.Context, out io.Writer, cfg config.Config, opts *ReplayOptions, script *engine.Script) error {
	var store database.SnapshotStore
	if opts.FromStore || opts.Save {
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		store = s
	}

	start := engine.SeedSnapshot()
	if opts.FromStore {
		var err error
		if start, err = database.Boot(ctx, store); err != nil {
			return err
		}
	}

	final, results, err := newEngine(cfg).Replay(start, script)
	if err != nil {
		return err
	}
	report := newReplayReport(script, results, final)

	if opts.Save {
		if err := store.Save(ctx, final); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		writeReplayText(out, report)
	}

	if report.Mismatches > 0 {
		return fmt.Errorf("%d step(s) did not meet expect_applied", report.Mismatches)
	}
	return nil
}

func newReplayReport(script *engine.Script, results []engine.StepResult, final models.Snapshot) ReplayReport {
	r := ReplayReport{
		Script:    script.Name,
		Steps:     results,
		Orders:    len(final.Orders),
		CartItems: len(final.Cart),
	}
	for _, res := range results {
		if res.Mismatch {
			r.Mismatches++
		}
	}
	if final.CurrentUser != nil {
		r.SignedIn = final.CurrentUser.Username
	}
	return r
}

func writeReplayText(out io.Writer, r ReplayReport) {
	if r.Script != "" {
		fmt.Fprintf(out, "Script: %s\n", r.Script)
	}
	for _, res := range r.Steps {
		status := "applied"
		if !res.Applied {
			status = "no effect"
		}
		mark := ""
		if res.Mismatch {
			mark = "  <- unexpected"
		}
		fmt.Fprintf(out, "%3d  %-22s %s%s\n", res.Step, res.Kind, status, mark)
	}
	fmt.Fprintf(out, "\n%d step(s), %d mismatch(es), %d order(s), %d cart line(s)\n",
		len(r.Steps), r.Mismatches, r.Orders, r.CartItems)
	if r.SignedIn != "" {
		fmt.Fprintf(out, "Signed in: %s\n", r.SignedIn)
	}
}
