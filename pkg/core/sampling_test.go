package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSampler_Reproducible(t *testing.T) {
	a := NewRandomSampler(42)
	b := NewRandomSampler(42)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Get1D(), b.Get1D())
	}

	c := NewRandomSampler(43)
	same := true
	for i := 0; i < 10; i++ {
		if a.Get1D() != c.Get1D() {
			same = false
		}
	}
	assert.False(t, same, "different seeds should give different streams")
}

func TestRandomSampler_Range(t *testing.T) {
	sampler := NewRandomSampler(7)
	unit := NewInterval(0, 1)

	for i := 0; i < 1000; i++ {
		v := sampler.Get1D()
		require.True(t, unit.Contains(v) && v < 1, "value %v out of [0,1)", v)

		p := sampler.Get3D()
		require.True(t, p.X >= 0 && p.X < 1 && p.Y >= 0 && p.Y < 1 && p.Z >= 0 && p.Z < 1)
	}
}

func TestDeriveSeed_DistinctStreams(t *testing.T) {
	seen := make(map[uint64]int)
	for stream := 0; stream < 1000; stream++ {
		seed := DeriveSeed(42, stream)
		prev, dup := seen[seed]
		require.False(t, dup, "stream %d collides with stream %d", stream, prev)
		seen[seed] = stream
	}
	assert.Equal(t, DeriveSeed(1, 5), DeriveSeed(1, 5))
}

func TestRandomUnitVector(t *testing.T) {
	sampler := NewRandomSampler(1)

	var sum Vec3
	const n = 5000
	for i := 0; i < n; i++ {
		v := RandomUnitVector(sampler)
		require.InDelta(t, 1.0, v.Length(), 1e-4)
		sum = sum.Add(v)
	}

	// Uniform on the sphere: the mean direction tends to zero
	mean := sum.Divide(n)
	assert.Less(t, mean.Length(), float32(0.05))
}

func TestRandomInUnitDisk(t *testing.T) {
	sampler := NewRandomSampler(2)

	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(sampler)
		require.Less(t, p.LengthSquared(), float32(1))
		require.Equal(t, float32(0), p.Z)
	}
}

func TestSampleSquare(t *testing.T) {
	sampler := NewRandomSampler(3)
	half := NewInterval(-0.5, 0.5)

	for i := 0; i < 1000; i++ {
		p := SampleSquare(sampler)
		require.True(t, half.Contains(p.X) && half.Contains(p.Y))
		require.Equal(t, float32(0), p.Z)
	}
}

func TestRandomInRange(t *testing.T) {
	sampler := NewRandomSampler(4)
	for i := 0; i < 1000; i++ {
		v := RandomInRange(sampler, -2, 3)
		require.True(t, v >= -2 && v < 3)
	}
}
