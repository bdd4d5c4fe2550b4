// Package sim provides the core match-simulation engine for match-sim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go: event kinds, per-kind transition specs and the sport event graph
//   - match.go: the turn algorithm and the fixed-length match loop
//   - game.go: a scheduled fixture, its play log and its derived Result
//   - stats.go: the reset / apply / rank aggregation pass over teams and players
//
// # Architecture
//
// The sim package owns the data model and the provider registry; sports and
// competition formats live in sub-packages:
//   - sim/soccer/, sim/basketball/: per-sport event graphs and providers
//   - sim/tournament/: league and knockout orchestration
//   - sim/roster/: player-name supply for team construction
//   - sim/storage/: persistence records and game-history stores
//   - sim/display/: plain-string views of finished leagues and brackets
//   - sim/trace/: replay and fault records collected during a tournament
//
// Sport packages register their providers via init() functions that call
// RegisterSport. Importing a sport package is enough to make its key
// resolvable through a Registry built from DiscoverProviders.
//
// # Randomness
//
// Every random draw goes through a RandSource. Tournaments derive one stream
// per game from a PartitionedRNG so that runs are reproducible for a seed even
// when games within a round are played concurrently.
package sim
