package trace

// TraceSummary aggregates statistics from a TournamentTrace.
type TraceSummary struct {
	TotalGames    int
	ReplayedGames int
	TotalReplays  int
	MaxReplays    int
	MeanReplays   float64        // over replayed games only
	TotalFaults   int
	Transitions   map[string]int // "from->to" → count of faults
}

// Summarize computes aggregate statistics from a TournamentTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(tt *TournamentTrace) *TraceSummary {
	summary := &TraceSummary{
		Transitions: make(map[string]int),
	}
	if tt == nil {
		return summary
	}

	summary.TotalGames = tt.Games
	for _, r := range tt.Replays {
		if r.Replays == 0 {
			continue
		}
		summary.ReplayedGames++
		summary.TotalReplays += r.Replays
		if r.Replays > summary.MaxReplays {
			summary.MaxReplays = r.Replays
		}
	}
	if summary.ReplayedGames > 0 {
		summary.MeanReplays = float64(summary.TotalReplays) / float64(summary.ReplayedGames)
	}

	summary.TotalFaults = len(tt.Faults)
	for _, f := range tt.Faults {
		summary.Transitions[f.From+"->"+f.To]++
	}

	return summary
}
