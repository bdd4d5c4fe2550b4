// Package trace provides replay and fault recording for tournament analysis.
// It depends on nothing in sim/; records are plain data.
package trace

// ReplayRecord captures a knockout pairing that had to be played more than once.
type ReplayRecord struct {
	GameID  string
	Round   int
	Home    string
	Away    string
	Replays int    // plays after the first
	Winner  string // decided on the final play
}

// FaultRecord captures one invalid event transition that the match recovered from.
type FaultRecord struct {
	GameID string
	Round  int
	Tick   int
	From   string
	To     string
}
