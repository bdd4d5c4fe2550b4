package trace

// TraceLevel controls the verbosity of tournament tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelGames captures replays and transition faults for every game.
	TraceLevelGames TraceLevel = "games"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelGames: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TournamentTrace collects replay and fault records during a tournament.
type TournamentTrace struct {
	Level   TraceLevel
	Games   int
	Replays []ReplayRecord
	Faults  []FaultRecord
}

// NewTournamentTrace creates a TournamentTrace ready for recording.
func NewTournamentTrace(level TraceLevel) *TournamentTrace {
	return &TournamentTrace{
		Level:   level,
		Replays: make([]ReplayRecord, 0),
		Faults:  make([]FaultRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on a nil trace.
func (tt *TournamentTrace) Enabled() bool {
	return tt != nil && tt.Level == TraceLevelGames
}

// CountGame notes one finished game.
func (tt *TournamentTrace) CountGame() {
	tt.Games++
}

// RecordReplay appends a replay record.
func (tt *TournamentTrace) RecordReplay(record ReplayRecord) {
	tt.Replays = append(tt.Replays, record)
}

// RecordFault appends a fault record.
func (tt *TournamentTrace) RecordFault(record FaultRecord) {
	tt.Faults = append(tt.Faults, record)
}
