// Package soccer defines the soccer event graph and registers its provider.
package soccer

import "github.com/inference-sim/match-sim/sim"

const (
	// Sport is the registry key.
	Sport = "soccer"
	// MatchLength is the number of ticks (minutes) simulated per match.
	MatchLength = 75
)

const (
	Kickoff sim.EventKind = iota
	ReceivePass
	Pass
	Dribble
	Shoot
	Goal
	Kickout
	GainPossession
	FreeKickToAttackingSide
	FreeKickToDefendingSide
)

// NewGraph returns the soccer transition table. Every call returns a fresh
// copy so callers may not corrupt a registered graph.
func NewGraph() *sim.EventGraph {
	return &sim.EventGraph{
		Sport:      Sport,
		Start:      Kickoff,
		Ticks:      MatchLength,
		ScoreLabel: "Total Goals",
		Specs: map[sim.EventKind]sim.EventSpec{
			Kickoff: {
				Name:          "kickoff",
				Description:   "Kickoff",
				Success:       []sim.EventKind{ReceivePass},
				Failure:       GainPossession,
				ChangesPlayer: true,
				ChangesTeam:   true,
				Position:      sim.PositionFixed,
				FixedPosition: 50,
			},
			ReceivePass: {
				Name:          "receive-pass",
				Description:   "Receive pass",
				Success:       []sim.EventKind{Dribble, Shoot, Pass, FreeKickToAttackingSide},
				Failure:       GainPossession,
				ChangesPlayer: true,
			},
			Pass: {
				Name:        "pass",
				Description: "Pass attempt",
				Success:     []sim.EventKind{ReceivePass},
				Failure:     GainPossession,
			},
			Dribble: {
				Name:        "dribble",
				Description: "Dribble",
				Success:     []sim.EventKind{Shoot, Pass, FreeKickToAttackingSide},
				Failure:     GainPossession,
			},
			Shoot: {
				Name:        "shoot",
				Description: "SHOOTS",
				Success:     []sim.EventKind{Goal},
				Failure:     Kickout,
				Shot:        true,
				Position:    sim.PositionKeep,
			},
			Goal: {
				Name:          "goal",
				Description:   "GOAL!",
				Success:       []sim.EventKind{Kickoff},
				Failure:       Kickoff,
				Scoring:       true,
				Position:      sim.PositionFixed,
				FixedPosition: 100,
			},
			Kickout: {
				Name:          "kickout",
				Description:   "Saved. Kickout",
				Success:       []sim.EventKind{ReceivePass},
				Failure:       GainPossession,
				ChangesPlayer: true,
				ChangesTeam:   true,
				Position:      sim.PositionFixed,
				FixedPosition: 95,
			},
			GainPossession: {
				Name:          "gain-possession",
				Description:   "WON possession",
				Success:       []sim.EventKind{Pass, Dribble, Shoot, FreeKickToDefendingSide},
				Failure:       GainPossession,
				ChangesPlayer: true,
				ChangesTeam:   true,
			},
			FreeKickToAttackingSide: {
				Name:        "free-kick-attacking",
				Description: "Fouled. Free kick to attacking side.",
				Success:     []sim.EventKind{ReceivePass, Goal, Kickout},
				Failure:     GainPossession,
			},
			FreeKickToDefendingSide: {
				Name:          "free-kick-defending",
				Description:   "Fouled. Free kick to defending side.",
				Success:       []sim.EventKind{ReceivePass},
				Failure:       GainPossession,
				ChangesPlayer: true,
				ChangesTeam:   true,
			},
		},
	}
}
