package roster

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
)

// maxFakerAttempts bounds how many generated names may collide before the
// pool is declared full.
const maxFakerAttempts = 20

// NewFakerSupplier creates a pool of size distinct generated person names.
// The same seed always yields the same pool and the same draws.
func NewFakerSupplier(seed uint64, size int) (*PoolSupplier, error) {
	if size < 1 {
		return nil, fmt.Errorf("faker pool size must be positive, got %d", size)
	}
	f := gofakeit.New(seed)
	seen := make(map[string]bool, size)
	names := make([]string, 0, size)
	misses := 0
	for len(names) < size {
		n := f.Name()
		if seen[n] {
			misses++
			if misses > maxFakerAttempts*size {
				return nil, fmt.Errorf("%w: generated only %d distinct names of %d", ErrRosterExhausted, len(names), size)
			}
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return NewPoolSupplier(names, fakerRand{f}), nil
}

// fakerRand adapts a Faker to sim.RandSource so draws share the pool's seed.
type fakerRand struct{ f *gofakeit.Faker }

func (r fakerRand) Float64() float64 { return r.f.Float64() }
func (r fakerRand) Intn(n int) int   { return r.f.Number(0, n-1) }
