package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// RandSource is the subset of *rand.Rand the engine draws from.
// Tests substitute scripted sources to force specific transitions.
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

// SimulationKey uniquely identifies a reproducible tournament run.
// Two runs with the same SimulationKey, teams and configuration
// MUST produce identical play logs.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// SubsystemRoster is the RNG subsystem for drawing player names.
const SubsystemRoster = "roster"

// SubsystemGame returns the subsystem name for game index in round.
// League games all use round 0; knockout rounds count from 1.
func SubsystemGame(round, index int) string {
	return fmt.Sprintf("game_%d_%d", round, index)
}

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
// Each subsystem is seeded with masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Derive every stream a round needs before
// handing them to concurrent games.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
