package core

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/rand"
)

// Sampler provides random sampling for rendering algorithms.
// Can be swapped out for deterministic testing or different sampling patterns.
// A Sampler is not safe for concurrent use; give each worker its own.
type Sampler interface {
	Get1D() float32 // uniform in [0, 1)
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a seeded PCG generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a seed
func NewRandomSampler(seed uint64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewSource(seed))}
}

// Get1D returns a random float32 in [0, 1)
func (r *RandomSampler) Get1D() float32 {
	return r.random.Float32()
}

// Get2D returns two random float32 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float32(), r.random.Float32())
}

// Get3D returns three random float32 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float32(), r.random.Float32(), r.random.Float32())
}

// DeriveSeed mixes a base seed with a stream index (tile, row, ...) so that
// independent streams start far apart in the generator's sequence
func DeriveSeed(base uint64, stream int) uint64 {
	z := base + uint64(stream+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// RandomInRange returns a uniform value in [min, max)
func RandomInRange(sampler Sampler, min, max float32) float32 {
	return min + (max-min)*sampler.Get1D()
}

// RandomVec3InRange returns a vector with each component uniform in [min, max)
func RandomVec3InRange(sampler Sampler, min, max float32) Vec3 {
	u := sampler.Get3D()
	return NewVec3(
		min+(max-min)*u.X,
		min+(max-min)*u.Y,
		min+(max-min)*u.Z,
	)
}

// RandomUnitVector returns a uniformly distributed direction on the unit sphere,
// rejection sampled from the [-1,1]^3 cube
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomVec3InRange(sampler, -1, 1)
		// Reject points too close to the origin; normalizing them underflows
		lensq := p.LengthSquared()
		if 1e-30 < lensq && lensq <= 1 {
			return p.Divide(math32.Sqrt(lensq))
		}
	}
}

// RandomInUnitDisk returns a uniform point in the unit disk on the z=0 plane (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		u := sampler.Get2D()
		p := NewVec3(2*u.X-1, 2*u.Y-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// SampleSquare returns a random offset in the [-0.5, 0.5]^2 unit square
func SampleSquare(sampler Sampler) Vec3 {
	u := sampler.Get2D()
	return NewVec3(u.X-0.5, u.Y-0.5, 0)
}
