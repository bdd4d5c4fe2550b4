package sim

import (
	"fmt"
	"sort"
)

const (
	// PitchLength is the ball-position scale. Positions are measured from the
	// possessing side's own end, so 100 is the opponent's goal line.
	PitchLength = 100

	// DefaultSuccessPercent is the flat success chance of non-shooting events.
	DefaultSuccessPercent = 92

	// StartBallPos is where every match begins.
	StartBallPos = 50
)

// EventKind identifies one variant in a sport's event graph.
// Values are only meaningful relative to the EventGraph that declares them.
type EventKind int

// PositionRule is how an event derives its stored ball position from the
// position carried in from the previous event.
type PositionRule int

const (
	// PositionAdvance moves the ball 1/8 of the remaining distance upfield.
	PositionAdvance PositionRule = iota
	// PositionKeep stores the incoming position unchanged.
	PositionKeep
	// PositionFixed stores EventSpec.FixedPosition regardless of input.
	PositionFixed
)

// EventSpec is the static behaviour of one event variant.
type EventSpec struct {
	Name          string      // stable identifier, used in play logs and storage
	Description   string      // commentary text
	Success       []EventKind // legal follow-ups when the success check passes
	Failure       EventKind   // follow-up when the success check fails
	ChangesPlayer bool
	ChangesTeam   bool
	Scoring       bool
	Shot          bool // success chance scales with ballPos²/100
	Position      PositionRule
	FixedPosition int
}

// SuccessPercent returns the chance, out of 100, that the event succeeds
// with the ball at ballPos.
func (s EventSpec) SuccessPercent(ballPos int) int {
	if s.Shot {
		return ballPos * ballPos / 100
	}
	return DefaultSuccessPercent
}

// DerivePosition returns the ball position this event stores given the
// position carried in from the previous event.
func (s EventSpec) DerivePosition(incoming int) int {
	switch s.Position {
	case PositionKeep:
		return clampBallPos(incoming)
	case PositionFixed:
		return clampBallPos(s.FixedPosition)
	default:
		return clampBallPos(incoming + (PitchLength-incoming)/8)
	}
}

// Allows reports whether next is a declared success follow-up.
func (s EventSpec) Allows(next EventKind) bool {
	for _, k := range s.Success {
		if k == next {
			return true
		}
	}
	return false
}

// takesSuccessPath reports whether a draw in [0,100) passes the success check.
func takesSuccessPath(spec EventSpec, ballPos int, draw float64) bool {
	return draw < float64(spec.SuccessPercent(ballPos))
}

func clampBallPos(pos int) int {
	return max(0, min(PitchLength, pos))
}

// mirrorBallPos converts a position to the other side's frame of reference.
func mirrorBallPos(pos int) int {
	return clampBallPos(PitchLength - pos)
}

// EventGraph is a sport's complete, static transition table.
type EventGraph struct {
	Sport      string
	Start      EventKind // the opening play; also where every match begins
	Ticks      int       // fixed match length
	ScoreLabel string    // e.g. "Total Goals"
	Specs      map[EventKind]EventSpec
}

// Spec returns the behaviour of kind.
func (g *EventGraph) Spec(kind EventKind) (EventSpec, bool) {
	s, ok := g.Specs[kind]
	return s, ok
}

// KindByName resolves a spec name back to its kind.
func (g *EventGraph) KindByName(name string) (EventKind, bool) {
	for k, s := range g.Specs {
		if s.Name == name {
			return k, true
		}
	}
	return 0, false
}

// Kinds returns every declared kind in ascending order.
func (g *EventGraph) Kinds() []EventKind {
	kinds := make([]EventKind, 0, len(g.Specs))
	for k := range g.Specs {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Validate checks the graph is closed: every successor and failure fallback
// is itself declared, names are unique, and the match has a start and a length.
func (g *EventGraph) Validate() error {
	if g.Sport == "" {
		return fmt.Errorf("event graph has no sport key")
	}
	if g.Ticks <= 0 {
		return fmt.Errorf("%s: match length must be positive, got %d", g.Sport, g.Ticks)
	}
	if _, ok := g.Specs[g.Start]; !ok {
		return fmt.Errorf("%s: start kind %d is not declared", g.Sport, g.Start)
	}
	names := make(map[string]EventKind, len(g.Specs))
	for _, k := range g.Kinds() {
		s := g.Specs[k]
		if s.Name == "" {
			return fmt.Errorf("%s: kind %d has no name", g.Sport, k)
		}
		if prev, dup := names[s.Name]; dup {
			return fmt.Errorf("%s: kinds %d and %d share the name %q", g.Sport, prev, k, s.Name)
		}
		names[s.Name] = k
		if len(s.Success) == 0 {
			return fmt.Errorf("%s: %s has no success follow-ups", g.Sport, s.Name)
		}
		for _, next := range s.Success {
			if _, ok := g.Specs[next]; !ok {
				return fmt.Errorf("%s: %s lists undeclared follow-up %d", g.Sport, s.Name, next)
			}
		}
		if _, ok := g.Specs[s.Failure]; !ok {
			return fmt.Errorf("%s: %s has undeclared failure fallback %d", g.Sport, s.Name, s.Failure)
		}
	}
	return nil
}

// Event is one recorded step of a play log. Team and Player point back into
// the game's rosters; the record itself is never modified once appended.
type Event struct {
	Kind    EventKind
	Name    string
	Team    *Team
	Player  *Player
	BallPos int
	Tick    int
	Scoring bool
}

// IsScoring reports whether the event counts as a score.
func (e Event) IsScoring() bool { return e.Scoring }

func newEvent(kind EventKind, spec EventSpec, team *Team, player *Player, ballPos, tick int) Event {
	return Event{
		Kind:    kind,
		Name:    spec.Name,
		Team:    team,
		Player:  player,
		BallPos: clampBallPos(ballPos),
		Tick:    tick,
		Scoring: spec.Scoring,
	}
}
