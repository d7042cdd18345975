package core

import (
	"math/rand"
)

// Sampler provides uniform random samples for rendering algorithms.
// Can be swapped out for deterministic testing.
type Sampler interface {
	// Float64 returns a value in [0, 1)
	Float64() float64
	// Range returns a value in [min, max)
	Range(min, max float64) float64
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic stream
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Float64 returns a random float64 in [0, 1)
func (r *RandomSampler) Float64() float64 {
	return r.random.Float64()
}

// Range returns a random float64 in [min, max)
func (r *RandomSampler) Range(min, max float64) float64 {
	return min + (max-min)*r.random.Float64()
}

// RandomVec3 returns a vector with each component uniform in [min, max)
func RandomVec3(sampler Sampler, min, max float64) Vec3 {
	return NewVec3(sampler.Range(min, max), sampler.Range(min, max), sampler.Range(min, max))
}

// RandomInUnitSphere generates a uniform random point inside the unit sphere
// by rejection sampling from the [-1,1) cube. About 2 draws are needed on average.
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomVec3(sampler, -1, 1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomUnitVector generates a uniform random direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomInUnitSphere(sampler)
		// The origin itself is a valid interior sample but cannot be normalized
		if p.LengthSquared() > 0 {
			return p.Normalize()
		}
	}
}
