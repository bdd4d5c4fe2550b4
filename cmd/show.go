package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/match-sim/sim"
	"github.com/inference-sim/match-sim/sim/storage"
	"github.com/inference-sim/match-sim/sim/tournament"
)

type showOptions struct {
	Store     string
	StorePath string
	List      bool
	Events    bool
	Top       int
	Points    sim.Points
}

var showOpts showOptions

// showHistory restores a saved tournament and prints it the way `run` does.
// With no name it lists the saved histories instead.
func showHistory(ctx context.Context, o showOptions, name string, out io.Writer) error {
	store, err := openStore(o.Store, o.StorePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if o.List || name == "" {
		names, err := store.List(ctx)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		return nil
	}

	h, err := store.Load(ctx, name)
	if err != nil {
		return err
	}
	reg := sim.NewDefaultRegistry()
	provider, err := reg.GetProvider(h.Sport)
	if err != nil {
		return err
	}
	cfg := tournament.DefaultConfig()
	cfg.Points = o.Points
	t, err := storage.Restore(reg, cfg, h)
	if err != nil {
		return fmt.Errorf("restoring %q: %w", name, err)
	}
	return writeResults(out, t, provider.Graph().ScoreLabel, o.Events, o.Top)
}

// showCmd prints a saved tournament or lists the saved ones
var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a saved tournament, or list saved tournaments",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, err := loadEnv()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		opts := showOpts
		if !cmd.Flags().Changed("store") && e.Store != "" {
			opts.Store = e.Store
		}
		if !cmd.Flags().Changed("store-path") && e.StorePath != "" {
			opts.StorePath = e.StorePath
		}
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		if err := showHistory(cmd.Context(), opts, name, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Show failed: %v", err)
		}
	},
}

func init() {
	showCmd.Flags().StringVar(&showOpts.Store, "store", defaultStore, "History store (json, sqlite)")
	showCmd.Flags().StringVar(&showOpts.StorePath, "store-path", "", "History directory (json) or database file (sqlite)")
	showCmd.Flags().BoolVar(&showOpts.List, "list", false, "List saved tournaments")
	showCmd.Flags().BoolVar(&showOpts.Events, "events", false, "Print every game's play log")
	showCmd.Flags().IntVar(&showOpts.Top, "top", 5, "Top scorers to list (0 = none)")
	showCmd.Flags().IntVar(&showOpts.Points.Win, "win-points", sim.DefaultPoints.Win, "League points for a win")
	showCmd.Flags().IntVar(&showOpts.Points.Draw, "draw-points", sim.DefaultPoints.Draw, "League points for a draw")

	rootCmd.AddCommand(showCmd)
}
