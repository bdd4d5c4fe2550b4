// Package roster supplies player names for team construction.
package roster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/match-sim/sim"
)

// ErrRosterExhausted is returned when a supplier cannot provide as many
// distinct names as requested.
var ErrRosterExhausted = errors.New("not enough players in the roster pool")

// Supplier hands out player names. Names are distinct across every call on
// the same supplier.
type Supplier interface {
	Names(n int) ([]string, error)
}

// PoolSupplier draws names at random, without replacement, from a fixed pool.
// Not safe for concurrent use.
type PoolSupplier struct {
	pool []string
	rng  sim.RandSource
}

// NewPoolSupplier creates a supplier over a copy of names. Blank and
// duplicate entries are dropped.
func NewPoolSupplier(names []string, rng sim.RandSource) *PoolSupplier {
	seen := make(map[string]bool, len(names))
	pool := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		pool = append(pool, n)
	}
	return &PoolSupplier{pool: pool, rng: rng}
}

// Remaining returns how many names are left in the pool.
func (s *PoolSupplier) Remaining() int { return len(s.pool) }

// Names removes n random names from the pool. When fewer than n remain it
// returns ErrRosterExhausted and leaves the pool untouched.
func (s *PoolSupplier) Names(n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot draw %d names", n)
	}
	if n > len(s.pool) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrRosterExhausted, n, len(s.pool))
	}
	out := make([]string, n)
	for i := range out {
		idx := s.rng.Intn(len(s.pool))
		out[i] = s.pool[idx]
		s.pool = append(s.pool[:idx], s.pool[idx+1:]...)
	}
	return out, nil
}

// SplitNames splits a comma-separated list, trimming blanks.
func SplitNames(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ReadNames reads a name list with one or more comma-separated names per line.
func ReadNames(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		names = append(names, SplitNames(sc.Text())...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading names: %w", err)
	}
	return names, nil
}

// BuildTeams creates one team per name, each with size players drawn from sup,
// through the sport's provider.
func BuildTeams(reg *sim.Registry, sup Supplier, sport string, teamNames []string, size int) ([]*sim.Team, error) {
	if size < 1 {
		return nil, fmt.Errorf("team size must be at least 1, got %d", size)
	}
	teams := make([]*sim.Team, 0, len(teamNames))
	for _, name := range teamNames {
		names, err := sup.Names(size)
		if err != nil {
			return nil, fmt.Errorf("building team %q: %w", name, err)
		}
		players := make([]*sim.Player, len(names))
		for i, n := range names {
			p, err := reg.CreatePlayer(sport, n)
			if err != nil {
				return nil, err
			}
			players[i] = p
		}
		team, err := reg.CreateTeam(sport, name, players)
		if err != nil {
			return nil, err
		}
		logrus.Debugf("team %s: %s", team.Name(), strings.Join(names, ", "))
		teams = append(teams, team)
	}
	return teams, nil
}
