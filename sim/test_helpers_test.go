package sim

import (
	"fmt"
	"testing"
)

// scriptedRand replays fixed draws, cycling when exhausted.
// Intn results are reduced modulo n so a script stays valid for any roster.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v % n
}

const (
	kindStart EventKind = iota
	kindAdvance
	kindTurnover
	kindScore
	kindRestart
)

// testGraph is a small closed graph exercising every position rule and flag.
func testGraph(sport string) *EventGraph {
	return &EventGraph{
		Sport:      sport,
		Start:      kindStart,
		Ticks:      20,
		ScoreLabel: "Total Points",
		Specs: map[EventKind]EventSpec{
			kindStart: {
				Name: "start", Description: "Start", Success: []EventKind{kindAdvance}, Failure: kindTurnover,
				ChangesPlayer: true, Position: PositionFixed, FixedPosition: 50,
			},
			kindAdvance: {
				Name: "advance", Description: "Advance", Success: []EventKind{kindAdvance, kindScore}, Failure: kindTurnover,
			},
			kindTurnover: {
				Name: "turnover", Description: "Turnover", Success: []EventKind{kindAdvance}, Failure: kindTurnover,
				ChangesPlayer: true, ChangesTeam: true, Position: PositionKeep,
			},
			kindScore: {
				Name: "score", Description: "Score!", Success: []EventKind{kindRestart}, Failure: kindRestart,
				Scoring: true, Position: PositionFixed, FixedPosition: 100,
			},
			kindRestart: {
				Name: "restart", Description: "Restart", Success: []EventKind{kindAdvance}, Failure: kindTurnover,
				ChangesPlayer: true, ChangesTeam: true, Position: PositionFixed, FixedPosition: 50,
			},
		},
	}
}

func mustTeam(t *testing.T, name string, size int) *Team {
	t.Helper()
	players := make([]*Player, size)
	for i := range players {
		players[i] = NewPlayer(fmt.Sprintf("%s-%d", name, i+1))
	}
	team, err := NewTeam(name, players)
	if err != nil {
		t.Fatalf("NewTeam(%q): %v", name, err)
	}
	return team
}
