package sim

import "sort"

// Player is a named member of a team roster.
// goals is rebuilt from scratch by every stats pass (see ResetStats, ApplyGameStats).
type Player struct {
	name  string
	goals int
}

// NewPlayer creates a player with no goals scored.
func NewPlayer(name string) *Player {
	return &Player{name: name}
}

// Name returns the player's name.
func (p *Player) Name() string { return p.name }

// GoalsScored returns the goals credited by the last stats pass.
func (p *Player) GoalsScored() int { return p.goals }

// IncGoalsScored credits the player with one more score.
func (p *Player) IncGoalsScored() { p.goals++ }

func (p *Player) resetGoals() { p.goals = 0 }

func (p *Player) String() string { return p.name }

// SortPlayersByGoals orders players by goals scored, highest first.
// Players with equal goals keep their relative order.
func SortPlayersByGoals(players []*Player) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].goals > players[j].goals
	})
}
