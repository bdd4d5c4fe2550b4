package tournament

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/match-sim/sim"
)

// League is a full home-and-away round robin. Draws stand.
type League struct {
	competition
	games []*sim.Game
}

// NewLeague creates an empty league. A nil registry means NewDefaultRegistry.
func NewLeague(reg *sim.Registry, cfg Config) *League {
	return &League{competition: newCompetition(FormatLeague, reg, cfg)}
}

func (l *League) Name() string { return FormatLeague }

// Populate requires at least two teams.
func (l *League) Populate(sport string, teams []*sim.Team) error {
	if len(teams) < 2 {
		return &sim.ValidationError{Format: FormatLeague, Teams: len(teams), Reason: "a league needs at least 2 teams"}
	}
	l.games = nil
	return l.populate(sport, teams)
}

// CreateGames schedules every ordered pair of distinct teams, one fixture
// every DaysBetweenGames days.
func (l *League) CreateGames() error {
	if err := l.ensurePopulated(); err != nil {
		return err
	}
	n := len(l.entrants)
	games := make([]*sim.Game, 0, n*(n-1))
	days := 0
	for _, home := range l.entrants {
		for _, away := range l.entrants {
			if home == away {
				continue
			}
			days += l.cfg.DaysBetweenGames
			g, err := l.registry.CreateGame(l.sport, home, away, l.fixtureDate(days))
			if err != nil {
				return fmt.Errorf("scheduling league: %w", err)
			}
			games = append(games, g)
		}
	}
	l.games = games
	return nil
}

// CreateAndPlayAllGames schedules and plays the whole league, then rebuilds
// the standings.
func (l *League) CreateAndPlayAllGames() error {
	l.reset()
	if err := l.CreateGames(); err != nil {
		return err
	}
	logrus.Infof("league: %d teams, %d games, %s", len(l.teams), len(l.games), l.sport)
	if err := l.playRound(0, l.games, false); err != nil {
		return err
	}
	l.standings()
	logrus.Infof("league leader: %s (%d pts, %d scored)", l.teams[0].Name(), l.teams[0].Points(), l.teams[0].Goals())
	return nil
}

func (l *League) standings() {
	sim.RebuildStats(l.teams, l.games, l.cfg.Points)
	sim.Rank(l.teams)
}

// Games returns the fixtures in scheduled order.
func (l *League) Games() []*sim.Game {
	return append([]*sim.Game(nil), l.games...)
}

// Leader returns the top of the table, or nil before the league is played.
func (l *League) Leader() *sim.Team {
	if len(l.games) == 0 || len(l.teams) == 0 {
		return nil
	}
	return l.teams[0]
}

// Announcement describes how long the league runs from first to last fixture.
func (l *League) Announcement() string {
	if len(l.games) == 0 {
		return "The league has no fixtures.\n"
	}
	months, days := monthsAndDays(l.games[0].When, l.games[len(l.games)-1].When)
	return fmt.Sprintf("The league is scheduled to run for %d month(s), and %d day(s)\n", months, days)
}

// monthsAndDays returns the calendar period from a to b as whole months
// plus remaining days. Adding a month to the 31st lands on the last day of a
// shorter month.
func monthsAndDays(a, b time.Time) (int, int) {
	a = civilDate(a)
	b = civilDate(b)
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	y, m := a.Year(), a.Month()+time.Month(months)
	day := min(a.Day(), daysIn(y, m))
	anchor := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return months, int(b.Sub(anchor).Hours() / 24)
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in month m of year y. m may overflow 12.
func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// RestoreLeague rebuilds a played league from its fixture list. The team set
// is recovered from the schedule: n teams play n*(n-1) games, and the away
// sides of the first n fixtures are exactly the n teams.
func RestoreLeague(reg *sim.Registry, cfg Config, games []*sim.Game) (*League, error) {
	if len(games) == 0 {
		return nil, fmt.Errorf("restoring league: no games")
	}
	n := (1 + int(math.Sqrt(float64(1+4*len(games))))) / 2
	if n*(n-1) != len(games) {
		return nil, fmt.Errorf("restoring league: %d games is not a full round robin", len(games))
	}
	teams := make([]*sim.Team, n)
	for i := 0; i < n; i++ {
		teams[i] = games[i].Away()
	}
	l := NewLeague(reg, cfg)
	if err := l.Populate(games[0].Sport(), teams); err != nil {
		return nil, fmt.Errorf("restoring league: %w", err)
	}
	l.games = append([]*sim.Game(nil), games...)
	l.standings()
	return l, nil
}
