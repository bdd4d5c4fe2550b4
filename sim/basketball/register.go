package basketball

import (
	"fmt"

	"github.com/inference-sim/match-sim/sim"
)

func init() {
	p, err := sim.NewGraphProvider(NewGraph())
	if err != nil {
		panic(fmt.Sprintf("basketball: %v", err))
	}
	sim.RegisterSport(p)
}
