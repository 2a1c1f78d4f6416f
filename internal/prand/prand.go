package prand

import (
	"hash/fnv"
	"math/rand"
)

// SeedValue hashes a root seed and a stream label into a non-zero seed.
// The same pair always yields the same value, so independent subsystems can
// carve reproducible streams out of one root seed.
func SeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// New returns a generator seeded from SeedValue(rootSeed, label).
func New(rootSeed, label string) *rand.Rand {
	return rand.New(rand.NewSource(SeedValue(rootSeed, label)))
}

// Float returns a float64 in [0, 1) from rng, falling back to a fixed
// stream when rng is nil.
func Float(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.New(rand.NewSource(SeedValue("fallback", "prand"))).Float64()
	}
	return rng.Float64()
}

// Range returns a float64 in [min, max) from rng.
func Range(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + Float(rng)*(max-min)
}
