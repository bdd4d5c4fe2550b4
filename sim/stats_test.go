package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyGameStats_CreditsPointsAndGoals(t *testing.T) {
	// GIVEN a: beats b 2-0, b draws c 1-1
	a, b, c := mustTeam(t, "A", 2), mustTeam(t, "B", 2), mustTeam(t, "C", 2)
	games := []*Game{
		scoredGame(t, a, b, 2, 0),
		scoredGame(t, b, c, 1, 1),
	}

	// WHEN stats are rebuilt
	RebuildStats([]*Team{a, b, c}, games, DefaultPoints)

	// THEN points, team goals and player goals match the results
	assert.Equal(t, 2, a.Points())
	assert.Equal(t, 1, b.Points())
	assert.Equal(t, 1, c.Points())
	assert.Equal(t, 2, a.Goals())
	assert.Equal(t, 1, b.Goals())
	assert.Equal(t, 2, a.players[0].GoalsScored())
	assert.Equal(t, 0, a.players[1].GoalsScored())
}

func TestRebuildStats_NoDoubleCounting(t *testing.T) {
	a, b := mustTeam(t, "A", 2), mustTeam(t, "B", 2)
	games := []*Game{scoredGame(t, a, b, 3, 1)}
	teams := []*Team{a, b}

	RebuildStats(teams, games, DefaultPoints)
	RebuildStats(teams, games, DefaultPoints)

	assert.Equal(t, 2, a.Points())
	assert.Equal(t, 3, a.Goals())
	assert.Equal(t, 3, a.players[0].GoalsScored())
}

func TestApplyGameStats_SkipsUnplayed(t *testing.T) {
	a, b := mustTeam(t, "A", 2), mustTeam(t, "B", 2)
	g, err := Schedule(testGraph("test"), a, b, kickoffTime)
	if err != nil {
		t.Fatal(err)
	}

	RebuildStats([]*Team{a, b}, []*Game{g}, DefaultPoints)

	assert.Equal(t, 0, a.Points())
	assert.Equal(t, 0, b.Points())
}

func TestApplyGameStats_CustomPoints(t *testing.T) {
	a, b := mustTeam(t, "A", 1), mustTeam(t, "B", 1)

	RebuildStats([]*Team{a, b}, []*Game{scoredGame(t, a, b, 1, 0)}, Points{Win: 3, Draw: 1})

	assert.Equal(t, 3, a.Points())
}

func TestRank_OrdersByPointsThenGoals(t *testing.T) {
	// GIVEN A and B level on points, B with more goals, C bottom
	a, b, c := mustTeam(t, "A", 1), mustTeam(t, "B", 1), mustTeam(t, "C", 1)
	a.addPoints(4)
	a.addGoals(3)
	b.addPoints(4)
	b.addGoals(5)
	c.addPoints(1)
	c.addGoals(9)
	teams := []*Team{c, a, b}

	// WHEN ranked twice
	Rank(teams)
	first := append([]*Team(nil), teams...)
	Rank(teams)

	// THEN the order is B, A, C both times
	assert.Equal(t, []*Team{b, a, c}, first)
	assert.Equal(t, first, teams)
}

func TestRank_TiesKeepOrder(t *testing.T) {
	a, b := mustTeam(t, "A", 1), mustTeam(t, "B", 1)
	teams := []*Team{b, a}

	Rank(teams)

	assert.Equal(t, []*Team{b, a}, teams)
}

func TestTopScorers(t *testing.T) {
	a, b := mustTeam(t, "A", 2), mustTeam(t, "B", 2)
	RebuildStats([]*Team{a, b}, []*Game{scoredGame(t, a, b, 1, 4)}, DefaultPoints)

	top := TopScorers([]*Team{a, b})

	assert.Len(t, top, 4)
	assert.Equal(t, "B-1", top[0].Name())
	assert.Equal(t, 4, top[0].GoalsScored())
	assert.Equal(t, "A-1", top[1].Name())
}

func TestTeam_RanksAhead(t *testing.T) {
	tests := []struct {
		name               string
		tPoints, tGoals    int
		otherPts, otherGls int
		want               bool
	}{
		{"more points", 4, 0, 3, 9, true},
		{"fewer points", 3, 9, 4, 0, false},
		{"level points, more goals", 4, 6, 4, 5, true},
		{"level points, fewer goals", 4, 5, 4, 6, false},
		{"level on both", 4, 5, 4, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := mustTeam(t, "A", 1), mustTeam(t, "B", 1)
			a.addPoints(tt.tPoints)
			a.addGoals(tt.tGoals)
			b.addPoints(tt.otherPts)
			b.addGoals(tt.otherGls)

			assert.Equal(t, tt.want, a.RanksAhead(b))
		})
	}
}
