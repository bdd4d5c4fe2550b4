package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inference-sim/match-sim/sim"
	"github.com/inference-sim/match-sim/sim/display"
	"github.com/inference-sim/match-sim/sim/storage"
	"github.com/inference-sim/match-sim/sim/storage/jsonfile"
	"github.com/inference-sim/match-sim/sim/storage/sqlite"
	"github.com/inference-sim/match-sim/sim/tournament"
	"github.com/inference-sim/match-sim/sim/trace"
)

const (
	defaultJSONDir    = "matchsim-history"
	defaultSQLiteFile = "matchsim.db"
)

// writeResults prints the table or bracket, then the optional play logs and
// top scorers.
func writeResults(out io.Writer, t tournament.Tournament, scoreLabel string, events bool, top int) error {
	switch c := t.(type) {
	case *tournament.League:
		fmt.Fprint(out, c.Announcement())
		if err := display.WriteTextGrid(out, display.LeagueGrid(c.Teams(), c.Games(), scoreLabel)); err != nil {
			return err
		}
		if leader := c.Leader(); leader != nil {
			fmt.Fprintf(out, "\nLeague leader: %s with %d points\n", leader.Name(), leader.Points())
		}
	case *tournament.Knockout:
		if err := display.WriteBracket(out, c.Rounds()); err != nil {
			return err
		}
		if champion := c.Champion(); champion != nil {
			fmt.Fprintf(out, "\nChampion: %s\n", champion.Name())
		}
	default:
		return fmt.Errorf("no display for format %q", t.Name())
	}

	if events {
		for _, g := range t.Games() {
			fmt.Fprintln(out)
			fmt.Fprint(out, g.Describe(true))
		}
	}
	if top > 0 {
		fmt.Fprintln(out, "\nTop scorers:")
		if err := display.WriteTopScorers(out, sim.TopScorers(t.Teams()), top); err != nil {
			return err
		}
	}
	return nil
}

func writeTraceSummary(out io.Writer, s *trace.TraceSummary) {
	fmt.Fprintf(out, "\nTrace: %d games, %d replayed (%d replays, max %d, mean %.2f), %d invalid transitions\n",
		s.TotalGames, s.ReplayedGames, s.TotalReplays, s.MaxReplays, s.MeanReplays, s.TotalFaults)
	keys := make([]string, 0, len(s.Transitions))
	for k := range s.Transitions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %d\n", k, s.Transitions[k])
	}
}

func writeSpreadsheet(w io.Writer, t tournament.Tournament, scoreLabel string) error {
	switch c := t.(type) {
	case *tournament.League:
		return display.WriteXLSX(w, "League", display.LeagueGrid(c.Teams(), c.Games(), scoreLabel))
	case *tournament.Knockout:
		return display.WriteXLSX(w, "Knockout", display.BracketGrid(c.Rounds()))
	}
	return fmt.Errorf("no spreadsheet for format %q", t.Name())
}

func writeChart(w io.Writer, title string, t tournament.Tournament) error {
	return display.WriteStandingsChart(w, title, t.Teams())
}

// writeFile creates path and hands it to write, closing it either way.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return write(f)
}

// openStore opens the history backend by kind. An empty path uses the
// backend's default location in the working directory.
func openStore(kind, path string) (storage.Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "json":
		if path == "" {
			path = defaultJSONDir
		}
		return jsonfile.Open(path)
	case "sqlite":
		if path == "" {
			path = defaultSQLiteFile
		}
		return sqlite.Open(path)
	}
	return nil, fmt.Errorf("unknown store %q; valid stores: [json, sqlite]", kind)
}

// writeMetrics prints every counter sample gathered from reg, one per line.
func writeMetrics(out io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	fmt.Fprintln(out, "\nMetrics:")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			fmt.Fprintf(out, "  %s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return nil
}
