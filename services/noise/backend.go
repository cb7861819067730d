// Package noise provides seeded noise fields for map generation. Backends wrap
// the raw noise libraries behind one sampling interface, and Sampler layers
// octaves on top of a backend to produce fractal fields.
package noise

import (
	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// BackendInterface defines the interface for raw noise sources.
// This enables dependency injection and makes services easily testable.
type BackendInterface interface {
	Sample(x, y float64) float64
	Seed() int64
}

// PerlinBackend implements BackendInterface using Perlin noise.
type PerlinBackend struct {
	noise *perlin.Perlin
	seed  int64
}

// NewPerlinBackend creates a Perlin noise backend with the given seed.
func NewPerlinBackend(seed int64) BackendInterface {
	// Create perlin noise with alpha=2, beta=2, n=3
	// These values give good terrain-like noise
	return &PerlinBackend{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		seed:  seed,
	}
}

// Sample returns a noise value between -1 and 1 for the given coordinates
func (b *PerlinBackend) Sample(x, y float64) float64 {
	return b.noise.Noise2D(x, y)
}

// Seed returns the seed the backend was created with
func (b *PerlinBackend) Seed() int64 {
	return b.seed
}

// SimplexBackend implements BackendInterface using OpenSimplex noise.
type SimplexBackend struct {
	noise opensimplex.Noise
	seed  int64
}

// NewSimplexBackend creates an OpenSimplex noise backend with the given seed.
func NewSimplexBackend(seed int64) BackendInterface {
	return &SimplexBackend{
		noise: opensimplex.New(seed),
		seed:  seed,
	}
}

// Sample returns a noise value between -1 and 1 for the given coordinates
func (b *SimplexBackend) Sample(x, y float64) float64 {
	return b.noise.Eval2(x, y)
}

// Seed returns the seed the backend was created with
func (b *SimplexBackend) Seed() int64 {
	return b.seed
}
