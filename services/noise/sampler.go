package noise

// SamplerInterface defines fractal sampling operations over a seeded noise
// field. Terrain and moisture generation depend on this interface rather than
// a concrete backend.
type SamplerInterface interface {
	Sample(x, y float64) float64
	SampleFractal(x, y float64) float64
	SampleFractal01(x, y float64) float64
	Seed() int64
}

// Sampler layers octaves of backend noise into a fractal field.
type Sampler struct {
	backend     BackendInterface
	frequency   float64
	octaves     int
	persistence float64
	lacunarity  float64
}

// NewSampler creates a sampler over the given backend. Frequency scales the
// input coordinates of the first octave, octaves must be at least 1,
// persistence controls per-octave amplitude falloff, and lacunarity controls
// per-octave frequency growth.
func NewSampler(backend BackendInterface, frequency float64, octaves int, persistence, lacunarity float64) SamplerInterface {
	return &Sampler{
		backend:     backend,
		frequency:   frequency,
		octaves:     octaves,
		persistence: persistence,
		lacunarity:  lacunarity,
	}
}

// Sample returns a single octave of noise at the sampler's base frequency.
func (s *Sampler) Sample(x, y float64) float64 {
	return s.backend.Sample(x*s.frequency, y*s.frequency)
}

// SampleFractal returns amplitude-normalized multi-octave noise in [-1, 1].
func (s *Sampler) SampleFractal(x, y float64) float64 {
	return Fractal(s.backend, x, y, s.octaves, s.frequency, s.persistence, s.lacunarity)
}

// SampleFractal01 returns fractal noise remapped to [0, 1] and clamped.
func (s *Sampler) SampleFractal01(x, y float64) float64 {
	v := (s.SampleFractal(x, y) + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Seed returns the seed of the underlying backend.
func (s *Sampler) Seed() int64 {
	return s.backend.Seed()
}

// Fractal generates fractal noise by layering multiple octaves of the backend.
// Each octave multiplies the sample frequency by lacunarity and the amplitude
// by persistence; the sum is normalized by the total amplitude so the output
// stays within the backend's range. Octaves must be at least 1.
func Fractal(backend BackendInterface, x, y float64, octaves int, frequency, persistence, lacunarity float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxAmplitude := 0.0
	freq := frequency

	for i := 0; i < octaves; i++ {
		total += backend.Sample(x*freq, y*freq) * amplitude
		maxAmplitude += amplitude
		amplitude *= persistence
		freq *= lacunarity
	}

	return total / maxAmplitude
}
