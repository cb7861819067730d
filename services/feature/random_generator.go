package feature

import (
	"math/rand"
)

// RandomGenerator wraps math/rand for dependency injection.
type RandomGenerator struct {
	rand *rand.Rand
}

// NewRandomGenerator creates a new random generator with the given seed.
func NewRandomGenerator(seed int64) *RandomGenerator {
	return &RandomGenerator{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a non-negative pseudo-random number in [0, n).
func (r *RandomGenerator) Intn(n int) int {
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (r *RandomGenerator) Float64() float64 {
	return r.rand.Float64()
}
