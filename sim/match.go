package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Chooser picks the next kind from a success follow-up list.
type Chooser func(rng RandSource, options []EventKind) EventKind

// UniformChooser picks uniformly at random among options.
func UniformChooser(rng RandSource, options []EventKind) EventKind {
	return options[rng.Intn(len(options))]
}

// MatchSimulator drives one match through its event graph, one tick per Step.
type MatchSimulator struct {
	graph   *EventGraph
	home    *Team
	away    *Team
	rng     RandSource
	choose  Chooser
	current Event
	tick    int
	Log     []Event
	Faults  []*InvalidTransitionError
}

// NewMatchSimulator creates a simulator for home vs away. Call Kickoff (or Run)
// before stepping.
func NewMatchSimulator(graph *EventGraph, home, away *Team, rng RandSource) *MatchSimulator {
	return &MatchSimulator{
		graph:  graph,
		home:   home,
		away:   away,
		rng:    rng,
		choose: UniformChooser,
	}
}

// WithChooser replaces the success follow-up chooser.
func (m *MatchSimulator) WithChooser(c Chooser) *MatchSimulator {
	if c != nil {
		m.choose = c
	}
	return m
}

// Current returns the most recent valid event.
func (m *MatchSimulator) Current() Event { return m.current }

// Kickoff seeds the log with the sport's start event at the centre, held by a
// random side and a random player from that side.
func (m *MatchSimulator) Kickoff() {
	team := m.away
	if m.rng.Float64() > 0.5 {
		team = m.home
	}
	player := team.players[m.rng.Intn(len(team.players))]
	spec := m.graph.Specs[m.graph.Start]

	m.tick = 0
	m.Log = nil
	m.Faults = nil
	m.current = newEvent(m.graph.Start, spec, team, player, StartBallPos, 0)
	m.Log = append(m.Log, m.current)
	logrus.Debugf("[%s %s v %s] kickoff: %s of %s", m.graph.Sport, m.home.name, m.away.name, player.name, team.name)
}

// Step runs one turn of the transition algorithm and appends the new event.
func (m *MatchSimulator) Step() Event {
	m.tick++
	cur := m.current
	spec := m.graph.Specs[cur.Kind]

	next := spec.Failure
	if takesSuccessPath(spec, cur.BallPos, m.rng.Float64()*100) {
		next = m.choose(m.rng, spec.Success)
		if !spec.Allows(next) {
			fault := &InvalidTransitionError{
				Sport: m.graph.Sport,
				From:  spec.Name,
				To:    m.kindName(next),
				Tick:  m.tick,
			}
			logrus.Warnf("[%s %s v %s] %v; keeping %s", m.graph.Sport, m.home.name, m.away.name, fault, spec.Name)
			m.Faults = append(m.Faults, fault)
			next = cur.Kind
		}
	}

	nextSpec := m.graph.Specs[next]
	pos := nextSpec.DerivePosition(cur.BallPos)
	team := cur.Team
	if nextSpec.ChangesTeam {
		team = m.otherTeam(team)
		pos = mirrorBallPos(pos)
	}
	player := cur.Player
	if nextSpec.ChangesPlayer {
		player = m.pickPlayer(team, cur.Player)
	}

	m.current = newEvent(next, nextSpec, team, player, pos, m.tick)
	m.Log = append(m.Log, m.current)
	logrus.Debugf("%3d : %s of %s -- %s", m.current.BallPos, player.name, team.name, nextSpec.Description)
	return m.current
}

// Run plays a full match: kickoff followed by the graph's fixed number of ticks.
func (m *MatchSimulator) Run() []Event {
	m.Kickoff()
	for i := 0; i < m.graph.Ticks; i++ {
		m.Step()
	}
	return m.Log
}

func (m *MatchSimulator) otherTeam(t *Team) *Team {
	if t == m.home {
		return m.away
	}
	return m.home
}

// pickPlayer chooses a random roster member of team other than prev.
// A one-player roster has nobody else to choose.
func (m *MatchSimulator) pickPlayer(team *Team, prev *Player) *Player {
	candidates := team.players
	if len(candidates) > 1 {
		candidates = make([]*Player, 0, len(team.players))
		for _, p := range team.players {
			if p != prev {
				candidates = append(candidates, p)
			}
		}
	}
	return candidates[m.rng.Intn(len(candidates))]
}

func (m *MatchSimulator) kindName(k EventKind) string {
	if s, ok := m.graph.Specs[k]; ok {
		return s.Name
	}
	return fmt.Sprintf("kind(%d)", k)
}
