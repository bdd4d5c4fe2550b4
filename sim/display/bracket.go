package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/inference-sim/match-sim/sim"
)

// BracketEntry is one knockout fixture as shown in a bracket.
type BracketEntry struct {
	Label   string // "Home v Away"
	Score   string
	Winner  string
	Replays int
}

// BracketEntries converts games to entries in the same order.
func BracketEntries(games []*sim.Game) []BracketEntry {
	out := make([]BracketEntry, len(games))
	for i, g := range games {
		e := BracketEntry{
			Label:   fmt.Sprintf("%s v %s", g.Home().Name(), g.Away().Name()),
			Score:   g.Score(),
			Replays: g.Replays(),
		}
		if w := g.Result().Winner; w != nil {
			e.Winner = w.Name()
		}
		out[i] = e
	}
	return out
}

func roundTitle(round, total int) string {
	switch total - round {
	case 0:
		return "Final"
	case 1:
		return "Semi-finals"
	case 2:
		return "Quarter-finals"
	}
	return fmt.Sprintf("Round %d", round)
}

// WriteBracket writes each round's fixtures, indenting later rounds further.
func WriteBracket(w io.Writer, rounds [][]*sim.Game) error {
	for i, games := range rounds {
		indent := fmt.Sprintf("%*s", 2*i, "")
		if _, err := fmt.Fprintf(w, "%s%s\n", indent, roundTitle(i+1, len(rounds))); err != nil {
			return err
		}
		for _, e := range BracketEntries(games) {
			line := fmt.Sprintf("%s  %s  %s", indent, e.Label, e.Score)
			if e.Replays > 0 {
				line += fmt.Sprintf(" (after %d replays)", e.Replays)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// BracketGrid lays out a bracket as rows for spreadsheet export, one fixture
// per row after a header.
func BracketGrid(rounds [][]*sim.Game) [][]string {
	grid := [][]string{{"Round", "Fixture", "Score", "Winner", "Replays"}}
	for i, games := range rounds {
		title := roundTitle(i+1, len(rounds))
		for _, e := range BracketEntries(games) {
			grid = append(grid, []string{title, e.Label, e.Score, e.Winner, strconv.Itoa(e.Replays)})
		}
	}
	return grid
}
