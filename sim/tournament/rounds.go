package tournament

import "fmt"

// FlattenRounds concatenates knockout rounds into one list, first round first.
func FlattenRounds[T any](rounds [][]T) []T {
	n := 0
	for _, r := range rounds {
		n += len(r)
	}
	flat := make([]T, 0, n)
	for _, r := range rounds {
		flat = append(flat, r...)
	}
	return flat
}

// NestRounds splits a flattened knockout back into rounds. The first round
// holds (n+1)/2 games and every later round half the one before, so n must be
// 2^k - 1 for some k >= 1.
func NestRounds[T any](flat []T) ([][]T, error) {
	n := len(flat)
	if n == 0 {
		return nil, nil
	}
	if (n+1)&n != 0 {
		return nil, fmt.Errorf("%d games cannot form a complete knockout; want 2^k-1", n)
	}
	var rounds [][]T
	idx := 0
	for size := (n + 1) / 2; size > 0; size /= 2 {
		round := make([]T, size)
		copy(round, flat[idx:idx+size])
		rounds = append(rounds, round)
		idx += size
	}
	return rounds, nil
}
