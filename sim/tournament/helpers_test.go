package tournament

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inference-sim/match-sim/sim"
	"github.com/inference-sim/match-sim/sim/soccer"
)

var testStart = time.Date(2024, time.January, 1, 15, 0, 0, 0, time.UTC)

func testConfig(seed int64) Config {
	cfg := DefaultConfig()
	cfg.Start = testStart
	cfg.Seed = seed
	return cfg
}

func soccerRegistry(t *testing.T) *sim.Registry {
	t.Helper()
	p, err := sim.NewGraphProvider(soccer.NewGraph())
	require.NoError(t, err)
	return sim.NewRegistry(p)
}

// makeTeams builds n teams named A, B, C... with size players each.
func makeTeams(t *testing.T, reg *sim.Registry, sport string, n, size int) []*sim.Team {
	t.Helper()
	teams := make([]*sim.Team, n)
	for i := range teams {
		name := string(rune('A' + i))
		players := make([]*sim.Player, size)
		for j := range players {
			p, err := reg.CreatePlayer(sport, fmt.Sprintf("%s%d", name, j+1))
			require.NoError(t, err)
			players[j] = p
		}
		team, err := reg.CreateTeam(sport, name, players)
		require.NoError(t, err)
		teams[i] = team
	}
	return teams
}

// fixedGraph returns a two-event sport. The kickoff always hands the ball
// to the other side, who score with "point". With ticks=1 the non-kickoff
// side wins 1-0; with ticks=2 both sides score once and every game is drawn.
func fixedGraph(sport string, ticks int) *sim.EventGraph {
	return &sim.EventGraph{
		Sport:      sport,
		Start:      0,
		Ticks:      ticks,
		ScoreLabel: "Points",
		Specs: map[sim.EventKind]sim.EventSpec{
			0: {Name: "serve", Success: []sim.EventKind{1}, Failure: 1, Position: sim.PositionFixed, FixedPosition: 50},
			1: {Name: "point", Success: []sim.EventKind{1}, Failure: 1, ChangesTeam: true, ChangesPlayer: true, Scoring: true},
		},
	}
}

func fixedRegistry(t *testing.T, sport string, ticks int) *sim.Registry {
	t.Helper()
	p, err := sim.NewGraphProvider(fixedGraph(sport, ticks))
	require.NoError(t, err)
	return sim.NewRegistry(p)
}

// gameDigest reduces a game to comparable values; IDs are random.
type gameDigest struct {
	Home, Away string
	Score      string
	Plays      int
	Events     []string
}

func digest(games []*sim.Game) []gameDigest {
	out := make([]gameDigest, len(games))
	for i, g := range games {
		d := gameDigest{Home: g.Home().Name(), Away: g.Away().Name(), Score: g.Score(), Plays: g.Plays()}
		for _, e := range g.Events() {
			d.Events = append(d.Events, fmt.Sprintf("%d:%s:%s:%s:%d", e.Tick, e.Name, e.Team.Name(), e.Player.Name(), e.BallPos))
		}
		out[i] = d
	}
	return out
}
