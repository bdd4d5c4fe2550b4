// Package basketball defines the basketball event graph and registers its provider.
package basketball

import "github.com/inference-sim/match-sim/sim"

const (
	// Sport is the registry key.
	Sport = "basketball"
	// MatchLength is the number of ticks simulated per match.
	MatchLength = 100
)

const (
	StartPlay sim.EventKind = iota
	ReceivePass
	Pass
	Dribble
	Shoot
	Basket
	GainPossession
	FreeThrowToAttackingSide
	FreeThrowToDefendingSide
)

// NewGraph returns the basketball transition table.
// Note FreeThrowToDefendingSide hands over possession and then succeeds into
// GainPossession, which hands it straight back. That is the intended table.
func NewGraph() *sim.EventGraph {
	return &sim.EventGraph{
		Sport:      Sport,
		Start:      StartPlay,
		Ticks:      MatchLength,
		ScoreLabel: "Total Baskets",
		Specs: map[sim.EventKind]sim.EventSpec{
			StartPlay: {
				Name:          "start-play",
				Description:   "Start play",
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
				Success:       []sim.EventKind{Dribble, Shoot, Pass, FreeThrowToAttackingSide},
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
				Success:     []sim.EventKind{Shoot, Pass, FreeThrowToAttackingSide},
				Failure:     GainPossession,
			},
			Shoot: {
				Name:        "shoot",
				Description: "SHOOTS",
				Success:     []sim.EventKind{Basket},
				Failure:     GainPossession,
				Shot:        true,
				Position:    sim.PositionKeep,
			},
			Basket: {
				Name:          "basket",
				Description:   "Basket!",
				Success:       []sim.EventKind{StartPlay},
				Failure:       StartPlay,
				Scoring:       true,
				Position:      sim.PositionFixed,
				FixedPosition: 100,
			},
			GainPossession: {
				Name:          "gain-possession",
				Description:   "WON possession",
				Success:       []sim.EventKind{Pass, Dribble, Shoot, FreeThrowToDefendingSide},
				Failure:       GainPossession,
				ChangesPlayer: true,
				ChangesTeam:   true,
			},
			FreeThrowToAttackingSide: {
				Name:          "free-throw-attacking",
				Description:   "Fouled. Free throw.",
				Success:       []sim.EventKind{Pass, Shoot},
				Failure:       GainPossession,
				ChangesPlayer: true,
			},
			FreeThrowToDefendingSide: {
				Name:          "free-throw-defending",
				Description:   "Fouled. Possession given to other side",
				Success:       []sim.EventKind{GainPossession},
				Failure:       GainPossession,
				ChangesPlayer: true,
				ChangesTeam:   true,
			},
		},
	}
}
