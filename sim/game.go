package sim

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Result is derived from a game's play log; it is never stored on its own.
type Result struct {
	Home      *Team
	Away      *Team
	HomeScore int
	AwayScore int
	Winner    *Team // nil when drawn
}

// Drawn reports whether neither side won.
func (r Result) Drawn() bool { return r.Winner == nil }

// Score returns the "home - away" score string.
func (r Result) Score() string {
	return fmt.Sprintf("%d - %d", r.HomeScore, r.AwayScore)
}

func computeResult(home, away *Team, events []Event) Result {
	r := Result{Home: home, Away: away}
	for _, e := range events {
		if !e.IsScoring() {
			continue
		}
		if e.Team == home {
			r.HomeScore++
		} else {
			r.AwayScore++
		}
	}
	switch {
	case r.HomeScore > r.AwayScore:
		r.Winner = home
	case r.AwayScore > r.HomeScore:
		r.Winner = away
	}
	return r
}

// PlayOption customizes a single call to Play.
type PlayOption func(*MatchSimulator)

// WithChooser overrides how success follow-ups are picked.
func WithChooser(c Chooser) PlayOption {
	return func(m *MatchSimulator) { m.WithChooser(c) }
}

// Game is one scheduled fixture between two distinct teams.
type Game struct {
	ID     uuid.UUID
	When   time.Time
	graph  *EventGraph
	home   *Team
	away   *Team
	events []Event
	faults []*InvalidTransitionError
	plays  int
	result *Result
}

// Schedule creates an unplayed game.
func Schedule(graph *EventGraph, home, away *Team, when time.Time) (*Game, error) {
	if graph == nil {
		return nil, fmt.Errorf("scheduling game: no event graph")
	}
	if home == nil || away == nil {
		return nil, fmt.Errorf("scheduling %s game: both teams are required", graph.Sport)
	}
	if home == away {
		return nil, fmt.Errorf("scheduling %s game: %s cannot play itself", graph.Sport, home.name)
	}
	return &Game{
		ID:    uuid.New(),
		When:  when,
		graph: graph,
		home:  home,
		away:  away,
	}, nil
}

// RestoreGame rebuilds a previously played game from a stored play log.
// plays is the number of times the game was played, including replays.
func RestoreGame(id uuid.UUID, graph *EventGraph, home, away *Team, when time.Time, events []Event, plays int) (*Game, error) {
	g, err := Schedule(graph, home, away, when)
	if err != nil {
		return nil, err
	}
	g.ID = id
	g.events = append([]Event(nil), events...)
	g.plays = plays
	if plays == 0 && len(events) > 0 {
		g.plays = 1
	}
	return g, nil
}

// Home returns the home team.
func (g *Game) Home() *Team { return g.home }

// Away returns the away team.
func (g *Game) Away() *Team { return g.away }

// Graph returns the event graph the game is played on.
func (g *Game) Graph() *EventGraph { return g.graph }

// Sport returns the sport key.
func (g *Game) Sport() string { return g.graph.Sport }

// Played reports whether the game has a play log.
func (g *Game) Played() bool { return g.plays > 0 }

// Plays returns how many times the game has been played.
func (g *Game) Plays() int { return g.plays }

// Replays returns how many times the game was played again after its first play.
func (g *Game) Replays() int { return max(0, g.plays-1) }

// Events returns a copy of the current play log.
func (g *Game) Events() []Event {
	return append([]Event(nil), g.events...)
}

// Faults returns the invalid transitions recorded during the latest play.
func (g *Game) Faults() []*InvalidTransitionError {
	return append([]*InvalidTransitionError(nil), g.faults...)
}

// OtherTeam returns the opponent of t in this game.
func (g *Game) OtherTeam(t *Team) *Team {
	if t == g.home {
		return g.away
	}
	return g.home
}

// Play simulates the match, replacing any earlier play log entirely.
func (g *Game) Play(rng RandSource, opts ...PlayOption) {
	m := NewMatchSimulator(g.graph, g.home, g.away, rng)
	for _, opt := range opts {
		opt(m)
	}
	g.events = m.Run()
	g.faults = m.Faults
	g.plays++
	g.result = nil
	logrus.Infof("%s v %s (%s): %s", g.home.name, g.away.name, g.graph.Sport, g.Result().Score())
}

// Result returns the outcome of the current play log, computing it once per play.
// An unplayed game reports a 0 - 0 draw.
func (g *Game) Result() Result {
	if g.result == nil {
		r := computeResult(g.home, g.away, g.events)
		g.result = &r
	}
	return *g.result
}

// Score returns the "home - away" score string.
func (g *Game) Score() string { return g.Result().Score() }

// Describe renders the fixture, its outcome and optionally the full play log.
func (g *Game) Describe(showEvents bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s vs. %s (%s)\n", g.home.name, g.away.name, g.When.Format("2006-01-02"))
	r := g.Result()
	if r.Drawn() {
		b.WriteString("It's a draw!")
	} else {
		fmt.Fprintf(&b, "%s win!", r.Winner.name)
	}
	fmt.Fprintf(&b, " (%s)\n", r.Score())
	if !showEvents {
		return b.String()
	}
	b.WriteString("Ball position is relative to the team in possession.\n\n")
	for _, e := range g.events {
		desc := e.Name
		if s, ok := g.graph.Specs[e.Kind]; ok && s.Description != "" {
			desc = s.Description
		}
		fmt.Fprintf(&b, "%3d : %s after %d mins by %s of %s\n", e.BallPos, desc, e.Tick, e.Player.name, e.Team.name)
	}
	return b.String()
}
