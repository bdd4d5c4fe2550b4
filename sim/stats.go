package sim

import "sort"

// Points is the league-table credit for a result.
type Points struct {
	Win  int `yaml:"win"`
	Draw int `yaml:"draw"`
}

// DefaultPoints awards 2 for a win and 1 each for a draw.
var DefaultPoints = Points{Win: 2, Draw: 1}

// ResetStats zeroes every team's totals and every rostered player's goals.
// Safe to call any number of times.
func ResetStats(teams []*Team) {
	for _, t := range teams {
		t.resetTotals()
	}
}

// ApplyGameStats credits points, team goals and player goals from each played
// game. It adds to existing totals; call ResetStats first for a fresh pass.
func ApplyGameStats(games []*Game, pts Points) {
	for _, g := range games {
		if !g.Played() {
			continue
		}
		r := g.Result()
		if r.Drawn() {
			g.home.addPoints(pts.Draw)
			g.away.addPoints(pts.Draw)
		} else {
			r.Winner.addPoints(pts.Win)
		}
		g.home.addGoals(r.HomeScore)
		g.away.addGoals(r.AwayScore)
		for _, e := range g.events {
			if e.IsScoring() {
				e.Player.IncGoalsScored()
			}
		}
	}
}

// RebuildStats runs a full aggregation pass: reset, then apply.
func RebuildStats(teams []*Team, games []*Game, pts Points) {
	ResetStats(teams)
	ApplyGameStats(games, pts)
}

// Rank sorts teams in place so position 0 is the leader.
// Teams that compare equal keep their relative order.
func Rank(teams []*Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].RanksAhead(teams[j])
	})
}

// TopScorers returns every rostered player ordered by goals, highest first.
func TopScorers(teams []*Team) []*Player {
	var players []*Player
	for _, t := range teams {
		players = append(players, t.players...)
	}
	SortPlayersByGoals(players)
	return players
}
