// Package display renders played tournaments as text, spreadsheets and charts.
package display

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/inference-sim/match-sim/sim"
)

// NoGame marks the diagonal of a league grid: a team never plays itself.
const NoGame = " X "

// LeagueGrid lays out a league as a cross table. Row 0 is the header; each
// following row is one home team, its score against every away team in
// column order, then its points and its score total under scoreLabel.
func LeagueGrid(teams []*sim.Team, games []*sim.Game, scoreLabel string) [][]string {
	type pair struct{ home, away string }
	scores := make(map[pair]string, len(games))
	for _, g := range games {
		scores[pair{g.Home().Name(), g.Away().Name()}] = g.Score()
	}

	grid := make([][]string, 0, len(teams)+1)
	header := make([]string, 0, len(teams)+3)
	header = append(header, "")
	for _, t := range teams {
		header = append(header, t.Name())
	}
	header = append(header, "League Pts", scoreLabel)
	grid = append(grid, header)

	for _, home := range teams {
		row := make([]string, 0, len(header))
		row = append(row, home.Name())
		for _, away := range teams {
			if home == away {
				row = append(row, NoGame)
				continue
			}
			row = append(row, scores[pair{home.Name(), away.Name()}])
		}
		row = append(row, strconv.Itoa(home.Points()), strconv.Itoa(home.Goals()))
		grid = append(grid, row)
	}
	return grid
}

// WriteTextGrid writes grid as aligned columns.
func WriteTextGrid(w io.Writer, grid [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range grid {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// WriteTopScorers lists the n leading scorers, or all of them when n <= 0.
func WriteTopScorers(w io.Writer, players []*sim.Player, n int) error {
	if n <= 0 || n > len(players) {
		n = len(players)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, p := range players[:n] {
		fmt.Fprintf(tw, "%d.\t%s\t%d\n", i+1, p.Name(), p.GoalsScored())
	}
	return tw.Flush()
}
