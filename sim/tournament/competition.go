package tournament

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/match-sim/sim"
	"github.com/inference-sim/match-sim/sim/trace"
)

// competition holds the state League and Knockout share.
type competition struct {
	format   string
	registry *sim.Registry
	cfg      Config
	sport    string
	entrants []*sim.Team // populate order; fixtures are drawn from this
	teams    []*sim.Team // ranked after each run
	rng      *sim.PartitionedRNG
	trace    *trace.TournamentTrace
}

func newCompetition(format string, reg *sim.Registry, cfg Config) competition {
	if reg == nil {
		reg = sim.NewDefaultRegistry()
	}
	return competition{
		format:   format,
		registry: reg,
		cfg:      cfg.withDefaults(),
		trace:    trace.NewTournamentTrace(cfg.TraceLevel),
	}
}

// populate stores the team set after the format-specific count check passed.
func (c *competition) populate(sport string, teams []*sim.Team) error {
	seen := make(map[string]bool, len(teams))
	for i, t := range teams {
		if t == nil {
			return &sim.ValidationError{Format: c.format, Teams: len(teams), Reason: fmt.Sprintf("team %d is nil", i)}
		}
		if seen[t.Name()] {
			return &sim.ValidationError{Format: c.format, Teams: len(teams), Reason: fmt.Sprintf("duplicate team name %q", t.Name())}
		}
		seen[t.Name()] = true
	}
	if _, err := c.registry.GetProvider(sport); err != nil {
		return err
	}
	c.sport = sport
	c.entrants = append([]*sim.Team(nil), teams...)
	c.teams = append([]*sim.Team(nil), teams...)
	return nil
}

func (c *competition) ensurePopulated() error {
	if c.sport == "" || len(c.teams) == 0 {
		return fmt.Errorf("%s has not been populated", c.format)
	}
	return nil
}

// reset starts a fresh, reproducible run.
func (c *competition) reset() {
	c.rng = sim.NewPartitionedRNG(sim.NewSimulationKey(c.cfg.Seed))
	c.trace = trace.NewTournamentTrace(c.cfg.TraceLevel)
}

// fixtureDate returns the kickoff time `days` days after the configured start.
func (c *competition) fixtureDate(days int) time.Time {
	return c.cfg.Start.AddDate(0, 0, days)
}

// Teams returns a copy of the team set, in ranked order once played.
func (c *competition) Teams() []*sim.Team {
	return append([]*sim.Team(nil), c.teams...)
}

// Sport returns the populated sport key.
func (c *competition) Sport() string { return c.sport }

// Trace returns the replay and fault records of the latest run.
func (c *competition) Trace() *trace.TournamentTrace { return c.trace }

// playRound plays every game of one round, each on its own RNG stream, on up
// to cfg.Parallelism goroutines. When decisive is set, drawn games are replayed
// until they produce a winner. Records are written after all games finish.
func (c *competition) playRound(round int, games []*sim.Game, decisive bool) error {
	rngs := make([]*rand.Rand, len(games))
	for i := range games {
		rngs[i] = c.rng.ForSubsystem(sim.SubsystemGame(round, i))
	}

	var eg errgroup.Group
	eg.SetLimit(c.cfg.Parallelism)
	for i, g := range games {
		eg.Go(func() error {
			return c.playGame(g, rngs[i], decisive)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, g := range games {
		c.record(round, g)
	}
	return nil
}

func (c *competition) playGame(g *sim.Game, rng sim.RandSource, decisive bool) error {
	g.Play(rng)
	for decisive && g.Result().Drawn() {
		if c.cfg.MaxReplays > 0 && g.Replays() >= c.cfg.MaxReplays {
			return fmt.Errorf("%w: %s v %s still drawn after %d replays",
				ErrReplayBudgetExceeded, g.Home().Name(), g.Away().Name(), g.Replays())
		}
		logrus.Infof("%s v %s drawn %s, replaying", g.Home().Name(), g.Away().Name(), g.Score())
		g.Play(rng)
	}
	return nil
}

func (c *competition) record(round int, g *sim.Game) {
	c.cfg.Metrics.observeGame(c.sport, c.format, g)
	c.trace.CountGame()
	if !c.trace.Enabled() {
		return
	}
	if g.Replays() > 0 {
		rec := trace.ReplayRecord{
			GameID:  g.ID.String(),
			Round:   round,
			Home:    g.Home().Name(),
			Away:    g.Away().Name(),
			Replays: g.Replays(),
		}
		if w := g.Result().Winner; w != nil {
			rec.Winner = w.Name()
		}
		c.trace.RecordReplay(rec)
	}
	for _, f := range g.Faults() {
		c.trace.RecordFault(trace.FaultRecord{
			GameID: g.ID.String(),
			Round:  round,
			Tick:   f.Tick,
			From:   f.From,
			To:     f.To,
		})
	}
}
