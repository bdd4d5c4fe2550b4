package sim

import (
	"fmt"
	"strings"
)

// Team owns a fixed roster and the totals rebuilt by each stats pass.
type Team struct {
	name    string
	players []*Player
	points  int
	goals   int
}

// NewTeam creates a team owning a copy of the given roster.
// The roster size is fixed from this point on.
func NewTeam(name string, players []*Player) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("team name is required")
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("team %q needs at least one player", name)
	}
	roster := make([]*Player, len(players))
	for i, p := range players {
		if p == nil {
			return nil, fmt.Errorf("team %q: player %d is nil", name, i)
		}
		roster[i] = p
	}
	return &Team{name: name, players: roster}, nil
}

// Name returns the team name.
func (t *Team) Name() string { return t.name }

// Players returns a copy of the roster in its original order.
func (t *Team) Players() []*Player {
	out := make([]*Player, len(t.players))
	copy(out, t.players)
	return out
}

// RosterSize returns the number of players on the team.
func (t *Team) RosterSize() int { return len(t.players) }

// PlayerByName returns the roster member with the given name.
func (t *Team) PlayerByName(name string) (*Player, bool) {
	for _, p := range t.players {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// Points returns the points total from the last stats pass.
func (t *Team) Points() int { return t.points }

// Goals returns the goals total from the last stats pass.
func (t *Team) Goals() int { return t.goals }

func (t *Team) addPoints(n int) { t.points += n }
func (t *Team) addGoals(n int)  { t.goals += n }

func (t *Team) resetTotals() {
	t.points = 0
	t.goals = 0
	for _, p := range t.players {
		p.resetGoals()
	}
}

// RanksAhead reports whether t places above other in a table: more points
// first, then more goals. Teams level on both rank equally.
func (t *Team) RanksAhead(other *Team) bool {
	if t.points != other.points {
		return t.points > other.points
	}
	return t.goals > other.goals
}

func (t *Team) String() string { return t.name }
