package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/match-sim/sim"
	_ "github.com/inference-sim/match-sim/sim/basketball"
	"github.com/inference-sim/match-sim/sim/roster"
	_ "github.com/inference-sim/match-sim/sim/soccer"
	"github.com/inference-sim/match-sim/sim/storage"
	"github.com/inference-sim/match-sim/sim/tournament"
	"github.com/inference-sim/match-sim/sim/trace"
)

// runOptions is everything one `run` needs after flags, environment and the
// config file have been layered.
type runOptions struct {
	Sport            string
	Format           string
	Teams            []string
	TeamSize         int
	Seed             int64
	Start            string
	DaysBetweenGames int
	Points           sim.Points
	Parallelism      int
	MaxReplays       int
	Trace            string
	NamesFile        string
	Players          []string
	Faker            bool
	ConfigPath       string

	Store     string
	StorePath string
	Save      string
	XLSX      string
	Chart     string
	Events    bool
	Top       int
	Metrics   bool
}

var runOpts runOptions

// resolve layers the config file and environment under the command line:
// an explicit flag beats the environment, which beats the file, which beats
// the flag default.
func (o runOptions) resolve(changed func(string) bool, file *TournamentConfig, e envConfig) runOptions {
	if file != nil {
		if !changed("sport") && file.Sport != "" {
			o.Sport = file.Sport
		}
		if !changed("format") && file.Format != "" {
			o.Format = file.Format
		}
		if !changed("teams") && len(file.Teams) > 0 {
			o.Teams = append([]string(nil), file.Teams...)
		}
		if !changed("team-size") && file.TeamSize > 0 {
			o.TeamSize = file.TeamSize
		}
		if !changed("seed") && file.Seed != nil {
			o.Seed = *file.Seed
		}
		if !changed("start") && file.Start != "" {
			o.Start = file.Start
		}
		if !changed("days-between") && file.DaysBetweenGames > 0 {
			o.DaysBetweenGames = file.DaysBetweenGames
		}
		if file.Points != nil {
			if !changed("win-points") {
				o.Points.Win = file.Points.Win
			}
			if !changed("draw-points") {
				o.Points.Draw = file.Points.Draw
			}
		}
		if !changed("parallelism") && file.Parallelism > 0 {
			o.Parallelism = file.Parallelism
		}
		if !changed("max-replays") && file.MaxReplays != nil {
			o.MaxReplays = *file.MaxReplays
		}
		if !changed("trace") && file.Trace != "" {
			o.Trace = file.Trace
		}
		if len(file.Players) > 0 {
			o.Players = append([]string(nil), file.Players...)
		}
		if !changed("faker") && file.Faker {
			o.Faker = true
		}
	}
	if !changed("seed") && e.Seed != nil {
		o.Seed = *e.Seed
	}
	if !changed("store") && e.Store != "" {
		o.Store = e.Store
	}
	if !changed("store-path") && e.StorePath != "" {
		o.StorePath = e.StorePath
	}
	return o
}

// supplier picks where player names come from: generated names, a names
// file, the config's player list, or the built-in pool, in that order.
func (o runOptions) supplier() (roster.Supplier, error) {
	if o.Faker {
		return roster.NewFakerSupplier(uint64(o.Seed), max(1, len(o.Teams)*o.TeamSize))
	}
	names := o.Players
	if o.NamesFile != "" {
		f, err := os.Open(o.NamesFile)
		if err != nil {
			return nil, fmt.Errorf("opening names file: %w", err)
		}
		defer f.Close()
		if names, err = roster.ReadNames(f); err != nil {
			return nil, err
		}
	}
	if len(names) == 0 {
		names = roster.DefaultNames
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(o.Seed)).ForSubsystem(sim.SubsystemRoster)
	return roster.NewPoolSupplier(names, rng), nil
}

// runTournament builds the teams, plays the tournament and writes every
// requested output. Results go to out; files and the store are written last.
func runTournament(ctx context.Context, o runOptions, out io.Writer) error {
	reg := sim.NewDefaultRegistry()
	provider, err := reg.GetProvider(o.Sport)
	if err != nil {
		return err
	}
	start, err := parseStart(o.Start, time.Now())
	if err != nil {
		return err
	}
	sup, err := o.supplier()
	if err != nil {
		return err
	}
	teams, err := roster.BuildTeams(reg, sup, provider.Sport(), o.Teams, o.TeamSize)
	if err != nil {
		return err
	}

	promReg := prometheus.NewRegistry()
	cfg := tournament.Config{
		Start:            start,
		DaysBetweenGames: o.DaysBetweenGames,
		Points:           o.Points,
		Parallelism:      o.Parallelism,
		MaxReplays:       o.MaxReplays,
		Seed:             o.Seed,
		TraceLevel:       trace.TraceLevel(o.Trace),
		Metrics:          tournament.NewMetrics(promReg),
	}
	t, err := tournament.New(o.Format, reg, cfg)
	if err != nil {
		return err
	}
	if err := t.Populate(provider.Sport(), teams); err != nil {
		return err
	}
	logrus.Infof("Starting %s %s with %d teams, seed=%d", provider.Sport(), t.Name(), len(teams), o.Seed)
	if err := t.CreateAndPlayAllGames(); err != nil {
		return err
	}

	if err := writeResults(out, t, provider.Graph().ScoreLabel, o.Events, o.Top); err != nil {
		return err
	}
	if t.Trace().Enabled() {
		writeTraceSummary(out, trace.Summarize(t.Trace()))
	}
	if o.XLSX != "" {
		if err := writeFile(o.XLSX, func(w io.Writer) error {
			return writeSpreadsheet(w, t, provider.Graph().ScoreLabel)
		}); err != nil {
			return err
		}
	}
	if o.Chart != "" {
		title := fmt.Sprintf("%s %s standings", provider.Sport(), t.Name())
		if err := writeFile(o.Chart, func(w io.Writer) error {
			return writeChart(w, title, t)
		}); err != nil {
			return err
		}
	}
	if o.Save != "" {
		store, err := openStore(o.Store, o.StorePath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(ctx, o.Save, storage.Snapshot(t)); err != nil {
			return err
		}
		logrus.Infof("Saved %s as %q", t.Name(), o.Save)
	}
	if o.Metrics {
		return writeMetrics(out, promReg)
	}
	return nil
}

// runCmd plays one tournament using parameters from flags, env and config
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play a league or knockout tournament",
	Run: func(cmd *cobra.Command, args []string) {
		e, err := loadEnv()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		var file *TournamentConfig
		if runOpts.ConfigPath != "" {
			if file, err = LoadTournamentConfig(runOpts.ConfigPath); err != nil {
				logrus.Fatalf("%v", err)
			}
			if err := file.Validate(sim.NewDefaultRegistry()); err != nil {
				logrus.Fatalf("Invalid tournament config %s: %v", runOpts.ConfigPath, err)
			}
		}
		opts := runOpts.resolve(cmd.Flags().Changed, file, e)

		startTime := time.Now()
		if err := runTournament(cmd.Context(), opts, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Tournament failed: %v", err)
		}
		logrus.Infof("Tournament complete in %s.", time.Since(startTime))
	},
}

func init() {
	runCmd.Flags().StringVar(&runOpts.Sport, "sport", defaultSport, "Sport to play (soccer, basketball)")
	runCmd.Flags().StringVar(&runOpts.Format, "format", defaultFormat, "Competition format (league, knockout)")
	runCmd.Flags().StringSliceVar(&runOpts.Teams, "teams", defaultTeamNames, "Comma-separated team names")
	runCmd.Flags().IntVar(&runOpts.TeamSize, "team-size", defaultTeamSize, "Players per team")
	runCmd.Flags().Int64Var(&runOpts.Seed, "seed", defaultSeed, "Seed for every random draw")
	runCmd.Flags().StringVar(&runOpts.Start, "start", "", "Start date: RFC3339, 2006-01-02 or a phrase like \"next monday\" (default now)")
	runCmd.Flags().IntVar(&runOpts.DaysBetweenGames, "days-between", tournament.DefaultDaysBetweenGames, "Days between consecutive fixtures")
	runCmd.Flags().IntVar(&runOpts.Points.Win, "win-points", sim.DefaultPoints.Win, "League points for a win")
	runCmd.Flags().IntVar(&runOpts.Points.Draw, "draw-points", sim.DefaultPoints.Draw, "League points for a draw")
	runCmd.Flags().IntVar(&runOpts.Parallelism, "parallelism", 1, "Games of one round played at once")
	runCmd.Flags().IntVar(&runOpts.MaxReplays, "max-replays", 0, "Replays allowed per drawn knockout game (0 = unlimited)")
	runCmd.Flags().StringVar(&runOpts.Trace, "trace", string(trace.TraceLevelNone), "Trace level (none, games)")
	runCmd.Flags().StringVar(&runOpts.NamesFile, "names", "", "File of player names, comma or newline separated")
	runCmd.Flags().BoolVar(&runOpts.Faker, "faker", false, "Generate player names instead of using the built-in pool")
	runCmd.Flags().StringVar(&runOpts.ConfigPath, "config", "", "Tournament YAML file")

	runCmd.Flags().StringVar(&runOpts.Store, "store", defaultStore, "History store (json, sqlite)")
	runCmd.Flags().StringVar(&runOpts.StorePath, "store-path", "", "History directory (json) or database file (sqlite)")
	runCmd.Flags().StringVar(&runOpts.Save, "save", "", "Save the played games under this name")
	runCmd.Flags().StringVar(&runOpts.XLSX, "xlsx", "", "Write the results table to this .xlsx file")
	runCmd.Flags().StringVar(&runOpts.Chart, "chart", "", "Write a standings chart to this .png file")
	runCmd.Flags().BoolVar(&runOpts.Events, "events", false, "Print every game's play log")
	runCmd.Flags().IntVar(&runOpts.Top, "top", 5, "Top scorers to list (0 = none)")
	runCmd.Flags().BoolVar(&runOpts.Metrics, "metrics", false, "Print tournament counters")

	rootCmd.AddCommand(runCmd)
}
