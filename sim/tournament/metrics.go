package tournament

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/inference-sim/match-sim/sim"
)

// Metrics counts tournament activity. A nil *Metrics records nothing.
type Metrics struct {
	GamesPlayed *prometheus.CounterVec
	Replays     *prometheus.CounterVec
	Faults      *prometheus.CounterVec
	Scores      *prometheus.CounterVec
	Rounds      *prometheus.CounterVec
}

// NewMetrics creates the tournament counters and registers them with reg.
// Pass a fresh prometheus.NewRegistry() per run to keep counts isolated.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	labels := []string{"sport", "format"}
	m := &Metrics{
		GamesPlayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchsim",
			Name:      "games_played_total",
			Help:      "Games played to completion, counting each fixture once.",
		}, labels),
		Replays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchsim",
			Name:      "game_replays_total",
			Help:      "Extra plays needed to break knockout draws.",
		}, labels),
		Faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchsim",
			Name:      "invalid_transitions_total",
			Help:      "Event transitions rejected by the event graph and recovered from.",
		}, labels),
		Scores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchsim",
			Name:      "scores_total",
			Help:      "Scoring events across all finished games.",
		}, labels),
		Rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchsim",
			Name:      "knockout_rounds_total",
			Help:      "Knockout rounds completed.",
		}, []string{"sport"}),
	}
	if reg != nil {
		reg.MustRegister(m.GamesPlayed, m.Replays, m.Faults, m.Scores, m.Rounds)
	}
	return m
}

func (m *Metrics) observeGame(sport, format string, g *sim.Game) {
	if m == nil {
		return
	}
	r := g.Result()
	m.GamesPlayed.WithLabelValues(sport, format).Inc()
	m.Replays.WithLabelValues(sport, format).Add(float64(g.Replays()))
	m.Faults.WithLabelValues(sport, format).Add(float64(len(g.Faults())))
	m.Scores.WithLabelValues(sport, format).Add(float64(r.HomeScore + r.AwayScore))
}

func (m *Metrics) observeRound(sport string) {
	if m == nil {
		return
	}
	m.Rounds.WithLabelValues(sport).Inc()
}
