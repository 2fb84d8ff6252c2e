package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float32
		expectedFuzz float32
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			assert.Equal(t, tt.expectedFuzz, metal.Fuzz)
			assert.Equal(t, KindMetal, metal.Kind)
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	// A perfect mirror must not consume random numbers
	sampler := &sequenceSampler{values: []float32{0.5}}

	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	require.True(t, didScatter, "Metal should scatter")

	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.Scattered.Direction
	assert.InDelta(t, 0, actual.Subtract(expected).Length(), 1e-6)
	assert.Equal(t, albedo, scatter.Attenuation)
	assert.Equal(t, 0, sampler.next)
}

func TestMetal_FuzzyReflectionStaysNearMirror(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.8, 0.8)
	metal := NewMetal(albedo, 0.3)
	sampler := core.NewRandomSampler(42)

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)}
	mirror := core.NewVec3(0, 0, 1)

	for i := 0; i < 200; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			continue
		}
		// |reflected + fuzz*unit - reflected| == fuzz
		deviation := scatter.Scattered.Direction.Subtract(mirror).Length()
		assert.InDelta(t, 0.3, deviation, 1e-5)
		assert.Equal(t, albedo, scatter.Attenuation)
	}
}

func TestMetal_AbsorbsRaysScatteredIntoSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}

	// Grazing ray: mirror direction is almost tangent
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))

	// (0.5, 0, 0.5) maps to the unit vector (0, -1, 0), pushing the reflection below the surface
	sampler := &sequenceSampler{values: []float32{0.5, 0, 0.5}}
	_, didScatter := metal.Scatter(rayIn, hit, sampler)
	assert.False(t, didScatter, "perturbed ray below the surface should be absorbed")

	// The same ray perturbed upward scatters
	sampler = &sequenceSampler{values: []float32{0.5, 1, 0.5}}
	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	require.True(t, didScatter)
	assert.Greater(t, scatter.Scattered.Direction.Dot(hit.Normal), float32(0))
}

func TestMetal_EnergyNonAmplification(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.2)
	metal := NewMetal(albedo, 0.5)
	sampler := core.NewRandomSampler(11)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0.2, -1, 0))
	hit := upwardHit(metal)

	for i := 0; i < 100; i++ {
		scatter, ok := metal.Scatter(rayIn, hit, sampler)
		if !ok {
			continue
		}
		assert.LessOrEqual(t, scatter.Attenuation.X, albedo.X)
		assert.LessOrEqual(t, scatter.Attenuation.Y, albedo.Y)
		assert.LessOrEqual(t, scatter.Attenuation.Z, albedo.Z)
	}
}
