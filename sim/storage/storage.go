// Package storage converts played tournaments to plain records and back, and
// defines the Store boundary that persists them.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inference-sim/match-sim/sim"
	"github.com/inference-sim/match-sim/sim/tournament"
)

// ErrNotFound is returned by Load when no history has the requested name.
var ErrNotFound = errors.New("history not found")

// TeamRecord is a team and its roster by name.
type TeamRecord struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
}

// EventRecord is one play-log entry. Kind is the event spec name.
type EventRecord struct {
	Kind    string `json:"kind"`
	Team    string `json:"team"`
	Player  string `json:"player"`
	BallPos int    `json:"ballPos"`
	Tick    int    `json:"tick"`
}

// GameRecord is a played game with its latest play log.
type GameRecord struct {
	ID     string        `json:"id"`
	Sport  string        `json:"sport"`
	When   time.Time     `json:"when"`
	Home   TeamRecord    `json:"home"`
	Away   TeamRecord    `json:"away"`
	Plays  int           `json:"plays"`
	Events []EventRecord `json:"events"`
}

// History is a saved tournament. Knockout games are stored flattened round
// by round.
type History struct {
	Format string       `json:"format"`
	Sport  string       `json:"sport"`
	Games  []GameRecord `json:"games"`
}

// Store persists histories under a caller-chosen name.
type Store interface {
	Save(ctx context.Context, name string, h History) error
	Load(ctx context.Context, name string) (History, error)
	List(ctx context.Context) ([]string, error)
	Close() error
}

func teamRecord(t *sim.Team) TeamRecord {
	players := t.Players()
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name()
	}
	return TeamRecord{Name: t.Name(), Players: names}
}

// FromGames converts games to records in order.
func FromGames(games []*sim.Game) []GameRecord {
	out := make([]GameRecord, len(games))
	for i, g := range games {
		events := g.Events()
		rec := GameRecord{
			ID:     g.ID.String(),
			Sport:  g.Sport(),
			When:   g.When,
			Home:   teamRecord(g.Home()),
			Away:   teamRecord(g.Away()),
			Plays:  g.Plays(),
			Events: make([]EventRecord, len(events)),
		}
		for j, e := range events {
			rec.Events[j] = EventRecord{
				Kind:    e.Name,
				Team:    e.Team.Name(),
				Player:  e.Player.Name(),
				BallPos: e.BallPos,
				Tick:    e.Tick,
			}
		}
		out[i] = rec
	}
	return out
}

// Snapshot captures a tournament's games for saving.
func Snapshot(t tournament.Tournament) History {
	games := t.Games()
	h := History{Format: t.Name(), Games: FromGames(games)}
	if len(games) > 0 {
		h.Sport = games[0].Sport()
	}
	return h
}

// ToGames rebuilds games from records. Teams and players are shared by name
// across games, so stats computed over the result behave as in the original
// run.
func ToGames(reg *sim.Registry, records []GameRecord) ([]*sim.Game, error) {
	teams := make(map[string]*sim.Team)
	games := make([]*sim.Game, len(records))
	for i, rec := range records {
		p, err := reg.GetProvider(rec.Sport)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i, err)
		}
		home, err := resolveTeam(p, teams, rec.Home)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i, err)
		}
		away, err := resolveTeam(p, teams, rec.Away)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i, err)
		}
		id, err := uuid.Parse(rec.ID)
		if err != nil {
			return nil, fmt.Errorf("game %d: bad id %q: %w", i, rec.ID, err)
		}
		graph := p.Graph()
		events := make([]sim.Event, len(rec.Events))
		for j, er := range rec.Events {
			e, err := toEvent(graph, home, away, er)
			if err != nil {
				return nil, fmt.Errorf("game %d event %d: %w", i, j, err)
			}
			events[j] = e
		}
		g, err := sim.RestoreGame(id, graph, home, away, rec.When, events, rec.Plays)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i, err)
		}
		games[i] = g
	}
	return games, nil
}

func resolveTeam(p sim.Provider, teams map[string]*sim.Team, rec TeamRecord) (*sim.Team, error) {
	if t, ok := teams[rec.Name]; ok {
		return t, nil
	}
	players := make([]*sim.Player, len(rec.Players))
	for i, n := range rec.Players {
		players[i] = p.NewPlayer(n)
	}
	t, err := p.NewTeam(rec.Name, players)
	if err != nil {
		return nil, err
	}
	teams[rec.Name] = t
	return t, nil
}

func toEvent(graph *sim.EventGraph, home, away *sim.Team, rec EventRecord) (sim.Event, error) {
	kind, ok := graph.KindByName(rec.Kind)
	if !ok {
		return sim.Event{}, fmt.Errorf("unknown %s event %q", graph.Sport, rec.Kind)
	}
	var team *sim.Team
	switch rec.Team {
	case home.Name():
		team = home
	case away.Name():
		team = away
	default:
		return sim.Event{}, fmt.Errorf("team %q is not playing", rec.Team)
	}
	player, ok := team.PlayerByName(rec.Player)
	if !ok {
		if player, ok = home.PlayerByName(rec.Player); !ok {
			if player, ok = away.PlayerByName(rec.Player); !ok {
				return sim.Event{}, fmt.Errorf("player %q is not on either roster", rec.Player)
			}
		}
	}
	spec := graph.Specs[kind]
	return sim.Event{
		Kind:    kind,
		Name:    spec.Name,
		Team:    team,
		Player:  player,
		BallPos: rec.BallPos,
		Tick:    rec.Tick,
		Scoring: spec.Scoring,
	}, nil
}

// Restore rebuilds a played tournament from a saved history.
func Restore(reg *sim.Registry, cfg tournament.Config, h History) (tournament.Tournament, error) {
	games, err := ToGames(reg, h.Games)
	if err != nil {
		return nil, err
	}
	switch h.Format {
	case tournament.FormatLeague:
		return tournament.RestoreLeague(reg, cfg, games)
	case tournament.FormatKnockout:
		return tournament.RestoreKnockout(reg, cfg, games)
	default:
		return nil, fmt.Errorf("unknown tournament format %q", h.Format)
	}
}
