package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/match-sim/sim"
	"github.com/inference-sim/match-sim/sim/roster"
	"github.com/inference-sim/match-sim/sim/trace"
)

func testOptions(t *testing.T) runOptions {
	t.Helper()
	return runOptions{
		Sport:            "soccer",
		Format:           "knockout",
		Teams:            append([]string(nil), defaultTeamNames...),
		TeamSize:         defaultTeamSize,
		Seed:             42,
		Start:            "2024-01-01",
		DaysBetweenGames: 7,
		Points:           sim.DefaultPoints,
		Parallelism:      1,
		Trace:            string(trace.TraceLevelNone),
		Store:            "json",
		StorePath:        t.TempDir(),
	}
}

func run(t *testing.T, o runOptions) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, runTournament(context.Background(), o, &buf))
	return buf.String()
}

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestRunOptions_Resolve_Precedence(t *testing.T) {
	fileSeed, envSeed := int64(5), int64(9)
	replays := 3
	file := &TournamentConfig{
		Sport:      "basketball",
		Format:     "league",
		Teams:      []string{"Ravens", "Doves"},
		TeamSize:   2,
		Seed:       &fileSeed,
		Points:     &sim.Points{Win: 3, Draw: 1},
		Players:    []string{"Ann", "Bob", "Cy", "Di"},
		MaxReplays: &replays,
		Trace:      "games",
	}
	e := envConfig{Seed: &envSeed, Store: "sqlite", StorePath: "env.db"}
	base := runOptions{Sport: "soccer", Format: "knockout", TeamSize: 4, Seed: 42, Points: sim.DefaultPoints, Store: "json"}

	t.Run("file over defaults, env over file", func(t *testing.T) {
		got := base.resolve(changedSet(), file, e)

		assert.Equal(t, "basketball", got.Sport)
		assert.Equal(t, "league", got.Format)
		assert.Equal(t, []string{"Ravens", "Doves"}, got.Teams)
		assert.Equal(t, 2, got.TeamSize)
		assert.Equal(t, int64(9), got.Seed)
		assert.Equal(t, sim.Points{Win: 3, Draw: 1}, got.Points)
		assert.Equal(t, 3, got.MaxReplays)
		assert.Equal(t, "games", got.Trace)
		assert.Equal(t, []string{"Ann", "Bob", "Cy", "Di"}, got.Players)
		assert.Equal(t, "sqlite", got.Store)
		assert.Equal(t, "env.db", got.StorePath)
	})

	t.Run("explicit flags win", func(t *testing.T) {
		got := base.resolve(changedSet("sport", "seed", "win-points", "store"), file, e)

		assert.Equal(t, "soccer", got.Sport)
		assert.Equal(t, int64(42), got.Seed)
		assert.Equal(t, sim.Points{Win: 2, Draw: 1}, got.Points)
		assert.Equal(t, "json", got.Store)
		assert.Equal(t, "league", got.Format)
	})

	t.Run("no file, no env", func(t *testing.T) {
		got := base.resolve(changedSet(), nil, envConfig{})

		assert.Equal(t, base, got)
	})
}

func TestRunTournament_Knockout(t *testing.T) {
	out := run(t, testOptions(t))

	assert.Contains(t, out, "Quarter-finals\n")
	assert.Contains(t, out, "\n  Semi-finals\n")
	assert.Contains(t, out, "\n    Final\n")
	assert.Contains(t, out, "Champion: ")
	assert.Contains(t, out, "Top scorers:")
	assert.NotContains(t, out, "League Pts")
}

func TestRunTournament_League(t *testing.T) {
	o := testOptions(t)
	o.Format = "league"
	o.Teams = []string{"Robins", "Pelicans", "Sparrows", "Magpies"}

	out := run(t, o)

	assert.Contains(t, out, "The league is scheduled to run for ")
	assert.Contains(t, out, "League Pts")
	assert.Contains(t, out, "Total Goals")
	assert.Contains(t, out, "League leader: ")
}

func TestRunTournament_BasketballScoreLabel(t *testing.T) {
	o := testOptions(t)
	o.Sport = "Basketball"
	o.Format = "league"
	o.Teams = []string{"Robins", "Pelicans", "Sparrows"}

	out := run(t, o)

	assert.Contains(t, out, "Total Baskets")
}

func TestRunTournament_SameSeedSameOutput(t *testing.T) {
	// GIVEN identical options except for how many games run at once
	o := testOptions(t)
	wide := o
	wide.Parallelism = 4

	// THEN the printed results are identical
	first := run(t, o)
	assert.Equal(t, first, run(t, o))
	assert.Equal(t, first, run(t, wide))
}

func TestRunTournament_EventsAndTrace(t *testing.T) {
	o := testOptions(t)
	o.Events = true
	o.Trace = string(trace.TraceLevelGames)

	out := run(t, o)

	assert.Contains(t, out, "Ball position is relative to the team in possession.")
	assert.Contains(t, out, "Trace: 7 games")
}

func TestRunTournament_Metrics(t *testing.T) {
	o := testOptions(t)
	o.Metrics = true

	out := run(t, o)

	assert.Contains(t, out, "matchsim_games_played_total{format=knockout,sport=soccer} 7")
	assert.Contains(t, out, "matchsim_knockout_rounds_total{sport=soccer} 3")
}

func TestRunTournament_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	o := testOptions(t)
	o.Format = "league"
	o.Teams = []string{"Robins", "Pelicans", "Sparrows"}
	o.XLSX = filepath.Join(dir, "league.xlsx")
	o.Chart = filepath.Join(dir, "league.png")

	run(t, o)

	xlsx, err := os.ReadFile(o.XLSX)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), xlsx[:2])
	png, err := os.ReadFile(o.Chart)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestRunTournament_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*runOptions)
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unknown sport",
			mutate: func(o *runOptions) { o.Sport = "curling" },
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, sim.ErrProviderNotFound) },
		},
		{
			name:   "unknown format",
			mutate: func(o *runOptions) { o.Format = "swiss" },
			check:  func(t *testing.T, err error) { assert.ErrorContains(t, err, "unknown tournament format") },
		},
		{
			name:   "pool too small",
			mutate: func(o *runOptions) { o.TeamSize = 10 },
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, roster.ErrRosterExhausted) },
		},
		{
			name:   "knockout needs a power of two",
			mutate: func(o *runOptions) { o.Teams = o.Teams[:6] },
			check: func(t *testing.T, err error) {
				var ve *sim.ValidationError
				assert.True(t, errors.As(err, &ve))
			},
		},
		{
			name:   "bad start",
			mutate: func(o *runOptions) { o.Start = "xyzzy plugh" },
			check:  func(t *testing.T, err error) { assert.ErrorContains(t, err, "start") },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := testOptions(t)
			tt.mutate(&o)

			err := runTournament(context.Background(), o, &bytes.Buffer{})

			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestRunTournament_FakerCoversLargeRosters(t *testing.T) {
	// GIVEN more players than the built-in pool holds
	o := testOptions(t)
	o.TeamSize = 10
	o.Faker = true

	// THEN generated names fill the rosters
	out := run(t, o)
	assert.Contains(t, out, "Champion: ")
}

func TestOptionsSupplier_NamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte("Ann, Bob\nCy\n"), 0o644))
	o := testOptions(t)
	o.NamesFile = path

	sup, err := o.supplier()
	require.NoError(t, err)

	names, err := sup.Names(3)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Ann", "Bob", "Cy"}, names)
	_, err = sup.Names(1)
	assert.ErrorIs(t, err, roster.ErrRosterExhausted)
}

func TestOptionsSupplier_MissingNamesFile(t *testing.T) {
	o := testOptions(t)
	o.NamesFile = filepath.Join(t.TempDir(), "missing.txt")

	_, err := o.supplier()

	assert.Error(t, err)
}
