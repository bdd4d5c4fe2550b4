package soccer

import (
	"fmt"

	"github.com/inference-sim/match-sim/sim"
)

func init() {
	p, err := sim.NewGraphProvider(NewGraph())
	if err != nil {
		panic(fmt.Sprintf("soccer: %v", err))
	}
	sim.RegisterSport(p)
}
