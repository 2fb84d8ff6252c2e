package material

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDielectricBasicBehavior(t *testing.T) {
	glass := NewDielectric(1.5)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.NewRay(core.NewVec3(-1, 1, 0), rayDirection)
	hit := upwardHit(glass)

	result, scattered := glass.Scatter(ray, hit, core.NewRandomSampler(42))
	require.True(t, scattered, "Dielectric should always scatter")
	assert.Equal(t, core.NewVec3(1, 1, 1), result.Attenuation, "clear glass absorbs nothing")

	// Both outcomes occur over enough draws; at 45° reflection is only ~5% likely
	hasReflection, hasRefraction := false, false
	sampler := core.NewRandomSampler(1)
	for i := 0; i < 2000 && (!hasReflection || !hasRefraction); i++ {
		result, _ := glass.Scatter(ray, hit, sampler)
		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}
	assert.True(t, hasRefraction, "expected refraction in some cases")
	assert.True(t, hasReflection, "expected Fresnel reflection in some cases")
}

func TestDielectricRefractionBendsTowardNormal(t *testing.T) {
	glass := NewDielectric(1.5)
	rayDirection := core.NewVec3(1, -1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(-1, 1, 0), rayDirection)

	// A draw of 0.999 is above any reflectance at 45°, forcing refraction
	sampler := &sequenceSampler{values: []float32{0.999}}
	result, ok := glass.Scatter(ray, upwardHit(glass), sampler)
	require.True(t, ok)

	dir := result.Scattered.Direction
	sinIn := rayDirection.X
	sinOut := dir.X / dir.Length()
	assert.InDelta(t, sinIn/1.5, sinOut, 1e-5, "Snell's law, air to glass")
	assert.Less(t, dir.Y, float32(0))
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Shallow ray leaving the glass: 1.5*sin(theta) > 1
	rayDirection := core.NewVec3(1, -0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: false,
		Material:  glass,
	}

	cosTheta := -rayDirection.Dot(hit.Normal)
	sinTheta := math32.Sqrt(1.0 - cosTheta*cosTheta)
	require.Greater(t, 1.5*sinTheta, float32(1), "test setup should cause total internal reflection")

	for seed := uint64(0); seed < 10; seed++ {
		result, scattered := glass.Scatter(ray, hit, core.NewRandomSampler(seed))
		require.True(t, scattered)
		assert.Greater(t, result.Scattered.Direction.Y, float32(0), "expected reflection back up")
	}
}

func TestDielectricMatchedIndexAlwaysRefracts(t *testing.T) {
	air := NewDielectric(1.0)

	angles := []float32{0, 0.3, 0.8, 1.2, 1.5}
	for _, theta := range angles {
		for _, frontFace := range []bool{true, false} {
			dir := core.NewVec3(math32.Sin(theta), -math32.Cos(theta), 0)
			ray := core.NewRay(core.NewVec3(0, 1, 0), dir)
			hit := upwardHit(air)
			hit.FrontFace = frontFace

			// 0 is the draw most likely to trigger a reflection
			sampler := &sequenceSampler{values: []float32{0}}
			result, ok := air.Scatter(ray, hit, sampler)
			require.True(t, ok)

			out := result.Scattered.Direction
			assert.InDelta(t, dir.X, out.X, 1e-5, "theta=%v front=%v", theta, frontFace)
			assert.InDelta(t, dir.Y, out.Y, 1e-5, "theta=%v front=%v", theta, frontFace)
			assert.InDelta(t, dir.Z, out.Z, 1e-5, "theta=%v front=%v", theta, frontFace)
		}
	}
}

func TestReflectance(t *testing.T) {
	// Normal incidence on glass: r0 = ((1-1.5)/(1+1.5))^2 = 0.04
	assert.InDelta(t, 0.04, Reflectance(1.0, 1.5), 1e-6)
	assert.InDelta(t, 0.04, Reflectance(1.0, 1/1.5), 1e-6)

	// Grazing incidence reflects everything
	assert.InDelta(t, 1.0, Reflectance(0.0, 1.5), 1e-6)

	// Monotone in angle
	assert.Greater(t, Reflectance(0.2, 1.5), Reflectance(0.8, 1.5))

	assert.Equal(t, float32(0), Reflectance(0.1, 1.0))
}
