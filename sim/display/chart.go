package display

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/inference-sim/match-sim/sim"
)

// WriteStandingsChart renders a PNG bar chart of each team's points, in the
// order given.
func WriteStandingsChart(w io.Writer, title string, teams []*sim.Team) error {
	if len(teams) == 0 {
		return fmt.Errorf("standings chart needs at least one team")
	}
	bars := make([]chart.Value, len(teams))
	top := 1
	for i, t := range teams {
		bars[i] = chart.Value{Label: t.Name(), Value: float64(t.Points())}
		top = max(top, t.Points())
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    max(400, 120*len(teams)),
		Height:   400,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		// pinned so a level table still has a non-empty range
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(top)},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering standings chart: %w", err)
	}
	return nil
}
