package tournament

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/match-sim/sim"
	"github.com/inference-sim/match-sim/sim/soccer"
)

func TestLeague_Populate_RejectsSingleTeam(t *testing.T) {
	reg := soccerRegistry(t)
	l := NewLeague(reg, testConfig(1))

	err := l.Populate(soccer.Sport, makeTeams(t, reg, soccer.Sport, 1, 3))

	var verr *sim.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FormatLeague, verr.Format)
	assert.Equal(t, 1, verr.Teams)
}

func TestLeague_Populate_RejectsDuplicateNames(t *testing.T) {
	reg := soccerRegistry(t)
	teams := makeTeams(t, reg, soccer.Sport, 2, 2)
	dup, err := reg.CreateTeam(soccer.Sport, teams[0].Name(), teams[1].Players())
	require.NoError(t, err)

	err = NewLeague(reg, testConfig(1)).Populate(soccer.Sport, append(teams, dup))

	var verr *sim.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLeague_Populate_UnknownSport(t *testing.T) {
	reg := soccerRegistry(t)
	teams := makeTeams(t, reg, soccer.Sport, 2, 2)

	err := NewLeague(reg, testConfig(1)).Populate("curling", teams)

	assert.True(t, errors.Is(err, sim.ErrProviderNotFound))
}

func TestLeague_CreateAndPlayAllGames_Unpopulated(t *testing.T) {
	assert.Error(t, NewLeague(soccerRegistry(t), testConfig(1)).CreateAndPlayAllGames())
}

func TestLeague_CreateGames_RoundRobin(t *testing.T) {
	for _, n := range []int{2, 3, 4, 6} {
		// GIVEN a league of n teams
		reg := soccerRegistry(t)
		l := NewLeague(reg, testConfig(3))
		require.NoError(t, l.Populate(soccer.Sport, makeTeams(t, reg, soccer.Sport, n, 3)))

		// WHEN the fixtures are created
		require.NoError(t, l.CreateGames())
		games := l.Games()

		// THEN every ordered pair meets exactly once and nobody plays itself
		require.Len(t, games, n*(n-1), "n=%d", n)
		pairs := make(map[[2]string]int)
		for _, g := range games {
			assert.NotEqual(t, g.Home(), g.Away())
			pairs[[2]string{g.Home().Name(), g.Away().Name()}]++
		}
		assert.Len(t, pairs, n*(n-1))
		for pair, count := range pairs {
			assert.Equal(t, 1, count, "pair %v", pair)
		}
	}
}

func TestLeague_CreateGames_FixtureDates(t *testing.T) {
	reg := soccerRegistry(t)
	l := NewLeague(reg, testConfig(3))
	require.NoError(t, l.Populate(soccer.Sport, makeTeams(t, reg, soccer.Sport, 3, 2)))

	require.NoError(t, l.CreateGames())

	games := l.Games()
	assert.Equal(t, testStart.AddDate(0, 0, 7), games[0].When)
	for i := 1; i < len(games); i++ {
		assert.Equal(t, 7*24*time.Hour, games[i].When.Sub(games[i-1].When), "game %d", i)
	}
}

func TestLeague_CreateAndPlayAllGames_Standings(t *testing.T) {
	// GIVEN a four-team soccer league
	reg := soccerRegistry(t)
	cfg := testConfig(42)
	l := NewLeague(reg, cfg)
	require.NoError(t, l.Populate(soccer.Sport, makeTeams(t, reg, soccer.Sport, 4, 5)))

	// WHEN it is played
	require.NoError(t, l.CreateAndPlayAllGames())

	// THEN every game has been played once
	games := l.Games()
	require.Len(t, games, 12)
	totalGoals := 0
	wantPoints := 0
	for _, g := range games {
		assert.Equal(t, 1, g.Plays())
		r := g.Result()
		totalGoals += r.HomeScore + r.AwayScore
		if r.Drawn() {
			wantPoints += 2 * cfg.Points.Draw
		} else {
			wantPoints += cfg.Points.Win
		}
	}

	// AND the table totals agree with the results
	teams := l.Teams()
	gotPoints, gotGoals, playerGoals := 0, 0, 0
	for i, team := range teams {
		gotPoints += team.Points()
		gotGoals += team.Goals()
		for _, p := range team.Players() {
			playerGoals += p.GoalsScored()
		}
		if i > 0 {
			assert.False(t, team.RanksAhead(teams[i-1]), "%s ranked below %s", teams[i-1], team)
		}
	}
	assert.Equal(t, wantPoints, gotPoints)
	assert.Equal(t, totalGoals, gotGoals)
	assert.Equal(t, totalGoals, playerGoals)
	assert.Same(t, teams[0], l.Leader())
}

func TestLeague_CreateAndPlayAllGames_DeterministicAcrossParallelism(t *testing.T) {
	run := func(parallelism int) []gameDigest {
		reg := soccerRegistry(t)
		cfg := testConfig(2024)
		cfg.Parallelism = parallelism
		l := NewLeague(reg, cfg)
		require.NoError(t, l.Populate(soccer.Sport, makeTeams(t, reg, soccer.Sport, 4, 4)))
		require.NoError(t, l.CreateAndPlayAllGames())
		return digest(l.Games())
	}

	serial := run(1)
	parallel := run(4)

	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Errorf("parallel run diverged (-serial +parallel):\n%s", diff)
	}
}

func TestLeague_DifferentSeedsDiffer(t *testing.T) {
	run := func(seed int64) []gameDigest {
		reg := soccerRegistry(t)
		l := NewLeague(reg, testConfig(seed))
		require.NoError(t, l.Populate(soccer.Sport, makeTeams(t, reg, soccer.Sport, 3, 4)))
		require.NoError(t, l.CreateAndPlayAllGames())
		return digest(l.Games())
	}

	assert.NotEqual(t, run(1), run(2))
}

func TestLeague_Announcement(t *testing.T) {
	// GIVEN 4 teams, 12 games a week apart starting 2024-01-08
	reg := soccerRegistry(t)
	l := NewLeague(reg, testConfig(1))
	require.NoError(t, l.Populate(soccer.Sport, makeTeams(t, reg, soccer.Sport, 4, 2)))
	require.NoError(t, l.CreateGames())

	// THEN the last game is on 2024-03-25: 2 months and 17 days later
	assert.Equal(t, "The league is scheduled to run for 2 month(s), and 17 day(s)\n", l.Announcement())
}

func TestMonthsAndDays_BorrowsFromPreviousMonth(t *testing.T) {
	a := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	months, days := monthsAndDays(a, b)

	// one month from Jan 31 is Feb 29, then one more day
	assert.Equal(t, 1, months)
	assert.Equal(t, 1, days)
}

func TestRestoreLeague_RecoversTeamsAndTable(t *testing.T) {
	// GIVEN a played league
	reg := soccerRegistry(t)
	cfg := testConfig(9)
	l := NewLeague(reg, cfg)
	require.NoError(t, l.Populate(soccer.Sport, makeTeams(t, reg, soccer.Sport, 4, 3)))
	require.NoError(t, l.CreateAndPlayAllGames())
	want := map[string]int{}
	for _, team := range l.Teams() {
		want[team.Name()] = team.Points()
	}

	// WHEN it is restored from its games alone
	restored, err := RestoreLeague(reg, cfg, l.Games())

	// THEN the same teams and points come back
	require.NoError(t, err)
	got := map[string]int{}
	for _, team := range restored.Teams() {
		got[team.Name()] = team.Points()
	}
	assert.Equal(t, want, got)
	assert.Equal(t, l.Leader().Name(), restored.Leader().Name())
}

func TestRestoreLeague_RejectsPartialSchedule(t *testing.T) {
	reg := soccerRegistry(t)
	l := NewLeague(reg, testConfig(9))
	require.NoError(t, l.Populate(soccer.Sport, makeTeams(t, reg, soccer.Sport, 3, 3)))
	require.NoError(t, l.CreateGames())

	_, err := RestoreLeague(reg, testConfig(9), l.Games()[:5])

	assert.Error(t, err)
}
