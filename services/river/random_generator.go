package river

import (
	"math/rand"
)

// RandomGenerator implements RandomGeneratorInterface using math/rand.
type RandomGenerator struct {
	rand *rand.Rand
}

// NewRandomGenerator creates a new random generator with the given seed.
func NewRandomGenerator(seed int64) RandomGeneratorInterface {
	source := rand.NewSource(seed)
	return &RandomGenerator{
		rand: rand.New(source),
	}
}

func (r *RandomGenerator) Intn(n int) int {
	return r.rand.Intn(n)
}
