package tournament

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/match-sim/sim"
)

// Knockout is a single-elimination bracket. Adjacent teams are paired each
// round and drawn games are replayed until someone wins.
type Knockout struct {
	competition
	rounds    [][]*sim.Game
	remaining []*sim.Team
}

// NewKnockout creates an empty knockout. A nil registry means NewDefaultRegistry.
func NewKnockout(reg *sim.Registry, cfg Config) *Knockout {
	return &Knockout{competition: newCompetition(FormatKnockout, reg, cfg)}
}

func (k *Knockout) Name() string { return FormatKnockout }

// Populate requires a power-of-two team count of at least two.
func (k *Knockout) Populate(sport string, teams []*sim.Team) error {
	n := len(teams)
	if n < 2 || n&(n-1) != 0 {
		return &sim.ValidationError{Format: FormatKnockout, Teams: n, Reason: "team count must be a power of 2 (2, 4, 8, 16...)"}
	}
	k.rounds = nil
	k.remaining = nil
	return k.populate(sport, teams)
}

// CreateAndPlayAllGames plays rounds until one team remains, then runs the
// stats pass over every game so entrants are ranked by points and goals.
func (k *Knockout) CreateAndPlayAllGames() error {
	k.reset()
	if err := k.ensurePopulated(); err != nil {
		return err
	}
	k.rounds = nil
	current := append([]*sim.Team(nil), k.entrants...)
	days := 0
	for round := 1; len(current) > 1; round++ {
		games := make([]*sim.Game, 0, len(current)/2)
		for i := 0; i < len(current); i += 2 {
			days += k.cfg.DaysBetweenGames
			g, err := k.registry.CreateGame(k.sport, current[i], current[i+1], k.fixtureDate(days))
			if err != nil {
				return fmt.Errorf("scheduling round %d: %w", round, err)
			}
			games = append(games, g)
		}
		logrus.Infof("knockout round %d: %d games", round, len(games))
		if err := k.playRound(round, games, true); err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}

		next := make([]*sim.Team, len(games))
		for i, g := range games {
			next[i] = g.Result().Winner
		}
		k.rounds = append(k.rounds, games)
		k.cfg.Metrics.observeRound(k.sport)
		current = next
	}
	k.remaining = current
	k.standings()
	logrus.Infof("winner of the competition is %s", k.remaining[0].Name())
	return nil
}

func (k *Knockout) standings() {
	sim.RebuildStats(k.teams, FlattenRounds(k.rounds), k.cfg.Points)
	sim.Rank(k.teams)
}

// Rounds returns the bracket history, first round first.
func (k *Knockout) Rounds() [][]*sim.Game {
	out := make([][]*sim.Game, len(k.rounds))
	for i, r := range k.rounds {
		out[i] = append([]*sim.Game(nil), r...)
	}
	return out
}

// Games returns every game flattened round by round.
func (k *Knockout) Games() []*sim.Game {
	return FlattenRounds(k.rounds)
}

// Remaining returns the teams still in the competition: all entrants before
// play, the champion alone afterwards.
func (k *Knockout) Remaining() []*sim.Team {
	if k.remaining == nil {
		return k.Teams()
	}
	return append([]*sim.Team(nil), k.remaining...)
}

// Champion returns the winner, or nil before the knockout is played.
func (k *Knockout) Champion() *sim.Team {
	if len(k.remaining) != 1 {
		return nil
	}
	return k.remaining[0]
}

// TotalReplays sums the draw replays across every game.
func (k *Knockout) TotalReplays() int {
	n := 0
	for _, g := range FlattenRounds(k.rounds) {
		n += g.Replays()
	}
	return n
}

// RestoreKnockout rebuilds a played knockout from its flattened games.
func RestoreKnockout(reg *sim.Registry, cfg Config, games []*sim.Game) (*Knockout, error) {
	rounds, err := NestRounds(games)
	if err != nil {
		return nil, fmt.Errorf("restoring knockout: %w", err)
	}
	if len(rounds) == 0 {
		return nil, fmt.Errorf("restoring knockout: no games")
	}
	var teams []*sim.Team
	for _, g := range rounds[0] {
		teams = append(teams, g.Home(), g.Away())
	}
	k := NewKnockout(reg, cfg)
	if err := k.Populate(games[0].Sport(), teams); err != nil {
		return nil, fmt.Errorf("restoring knockout: %w", err)
	}
	final := rounds[len(rounds)-1][0]
	winner := final.Result().Winner
	if winner == nil {
		return nil, fmt.Errorf("restoring knockout: final %s v %s has no winner", final.Home().Name(), final.Away().Name())
	}
	k.rounds = rounds
	k.remaining = []*sim.Team{winner}
	k.standings()
	return k, nil
}
