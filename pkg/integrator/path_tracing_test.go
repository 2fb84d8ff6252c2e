package integrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// createTestScene creates a simple scene with a sphere over a large ground sphere
func createTestScene(center material.Material) *geometry.HittableList {
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	return geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
	)
}

func assertInUnitRange(t *testing.T, c core.Vec3) {
	t.Helper()
	for _, ch := range []float32{c.X, c.Y, c.Z} {
		assert.GreaterOrEqual(t, ch, float32(0), "color %v", c)
		assert.LessOrEqual(t, ch, float32(1), "color %v", c)
	}
}

// TestPathTracingDepthTermination tests that ray depth is properly limited
func TestPathTracingDepthTermination(t *testing.T) {
	world := createTestScene(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	integrator := NewPathTracingIntegrator(DefaultSky())
	sampler := core.NewRandomSampler(42)

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), // sphere
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),  // sky
	}
	for _, ray := range rays {
		assert.Equal(t, core.Vec3{}, integrator.RayColor(ray, 0, world, sampler))
		assert.Equal(t, core.Vec3{}, integrator.RayColor(ray, -3, world, sampler))
	}

	// Any positive depth gathers light eventually
	var sum core.Vec3
	for i := 0; i < 50; i++ {
		sum = sum.Add(integrator.RayColor(rays[0], 10, world, sampler))
	}
	assert.Greater(t, sum.Length(), float32(0))
}

func TestPathTracingMissReturnsSky(t *testing.T) {
	integrator := NewPathTracingIntegrator(DefaultSky())
	world := geometry.NewHittableList()

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	color := integrator.RayColor(ray, 1, world, core.NewRandomSampler(1))

	// Horizontal ray is halfway between white and blue
	assert.InDelta(t, 0.75, color.X, 1e-6)
	assert.InDelta(t, 0.85, color.Y, 1e-6)
	assert.InDelta(t, 1.0, color.Z, 1e-6)
}

func TestPathTracingAbsorptionIsBlack(t *testing.T) {
	metal := material.NewMetal(core.NewVec3(1, 1, 1), 1.0)
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, metal))
	integrator := NewPathTracingIntegrator(DefaultSky())

	// (0.5, 0.5, 0) maps to the unit vector (0, 0, -1), cancelling the mirror
	// direction (0, 0, 1) so the fuzzed ray does not leave the surface
	sampler := &fixedSampler{values: []float32{0.5, 0.5, 0}}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	color := integrator.RayColor(ray, 5, world, sampler)
	assert.Equal(t, core.Vec3{}, color)
	require.Equal(t, 3, sampler.next, "exactly one unit vector drawn")
}

func TestPathTracingMirrorReflectsSky(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.2)
	mirror := material.NewMetal(albedo, 0)
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, mirror))
	integrator := NewPathTracingIntegrator(DefaultSky())

	// Straight into the sphere: reflected straight back along +z, a horizontal sky ray
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color := integrator.RayColor(ray, 2, world, core.NewRandomSampler(3))

	assert.InDelta(t, 0.75*0.8, color.X, 1e-5)
	assert.InDelta(t, 0.85*0.6, color.Y, 1e-5)
	assert.InDelta(t, 1.0*0.2, color.Z, 1e-5)

	// One bounce short: the reflected ray never gathers any light
	assert.Equal(t, core.Vec3{}, integrator.RayColor(ray, 1, world, core.NewRandomSampler(3)))
}

func TestPathTracingEnergyBounded(t *testing.T) {
	materials := []material.Material{
		material.NewLambertian(core.NewVec3(1, 1, 1)),
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)),
		material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3),
		material.NewDielectric(1.5),
	}
	integrator := NewPathTracingIntegrator(DefaultSky())
	sampler := core.NewRandomSampler(99)

	for _, m := range materials {
		world := createTestScene(m)
		for i := 0; i < 100; i++ {
			dir := core.NewVec3(sampler.Get1D()-0.5, sampler.Get1D()-0.5, -1)
			color := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), dir), 10, world, sampler)
			assertInUnitRange(t, color)
		}
	}
}

func TestGradientSky(t *testing.T) {
	sky := DefaultSky()

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"horizon", core.NewVec3(0, 0, -5), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sky.Color(core.NewRay(core.Vec3{}, tt.direction))
			assert.InDelta(t, tt.expected.X, c.X, 1e-6)
			assert.InDelta(t, tt.expected.Y, c.Y, 1e-6)
			assert.InDelta(t, tt.expected.Z, c.Z, 1e-6)
		})
	}

	sampler := core.NewRandomSampler(5)
	for i := 0; i < 500; i++ {
		dir := core.RandomUnitVector(sampler)
		c := sky.Color(core.NewRay(core.Vec3{}, dir))
		assertInUnitRange(t, c)
	}
}

// fixedSampler replays values in a cycle
type fixedSampler struct {
	values []float32
	next   int
}

func (s *fixedSampler) Get1D() float32 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.Get1D(), s.Get1D())
}

func (s *fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.Get1D(), s.Get1D(), s.Get1D())
}
