// Package tournament schedules and plays competitions: a home-and-away round
// robin (League) and a single-elimination bracket (Knockout).
package tournament

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inference-sim/match-sim/sim"
	"github.com/inference-sim/match-sim/sim/trace"
)

const (
	FormatLeague   = "league"
	FormatKnockout = "knockout"

	// DefaultDaysBetweenGames spaces consecutive fixtures.
	DefaultDaysBetweenGames = 7
)

// ValidFormats is the set of recognized competition format names.
var ValidFormats = map[string]bool{FormatLeague: true, FormatKnockout: true}

// ErrReplayBudgetExceeded is returned when a knockout pairing is still drawn
// after Config.MaxReplays replays.
var ErrReplayBudgetExceeded = errors.New("replay budget exceeded")

// Tournament is the capability set shared by every competition format.
type Tournament interface {
	Name() string
	// Populate validates the team count for the format and stores the sport
	// key and team set. Nothing is scheduled until CreateAndPlayAllGames.
	Populate(sport string, teams []*sim.Team) error
	CreateAndPlayAllGames() error
	Games() []*sim.Game
	Teams() []*sim.Team
	Trace() *trace.TournamentTrace
}

// Config controls scheduling, scoring and how games are played.
// Start from DefaultConfig; zero DaysBetweenGames and zero Points are used as
// given. Only an unset Start and a Parallelism below 1 are filled in.
type Config struct {
	Start            time.Time // first fixture is DaysBetweenGames after Start
	DaysBetweenGames int
	Points           sim.Points
	Parallelism      int // games of one round played at once
	MaxReplays       int // 0 means a drawn knockout game is replayed until decided
	Seed             int64
	TraceLevel       trace.TraceLevel
	Metrics          *Metrics // optional
}

// DefaultConfig returns the stock configuration starting today.
func DefaultConfig() Config {
	return Config{
		Start:            time.Now(),
		DaysBetweenGames: DefaultDaysBetweenGames,
		Points:           sim.DefaultPoints,
		Parallelism:      1,
		TraceLevel:       trace.TraceLevelNone,
	}
}

// Validate checks parameter ranges.
func (c Config) Validate() error {
	if c.DaysBetweenGames < 0 {
		return fmt.Errorf("days between games must be non-negative, got %d", c.DaysBetweenGames)
	}
	if c.Points.Win < 0 || c.Points.Draw < 0 {
		return fmt.Errorf("points must be non-negative, got win=%d draw=%d", c.Points.Win, c.Points.Draw)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must be non-negative, got %d", c.Parallelism)
	}
	if c.MaxReplays < 0 {
		return fmt.Errorf("max replays must be non-negative, got %d", c.MaxReplays)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("unknown trace level %q", c.TraceLevel)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Start.IsZero() {
		c.Start = time.Now()
	}
	if c.Parallelism < 1 {
		c.Parallelism = 1
	}
	return c
}

// New creates an empty tournament by format name, ignoring case.
func New(format string, reg *sim.Registry, cfg Config) (Tournament, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatLeague:
		return NewLeague(reg, cfg), nil
	case FormatKnockout:
		return NewKnockout(reg, cfg), nil
	default:
		return nil, fmt.Errorf("unknown tournament format %q; valid formats: [league, knockout]", format)
	}
}
