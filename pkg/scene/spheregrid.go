package scene

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float32) core.Vec3 {
	hRad := h * math32.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math32.Cos(hRad)
	b := c * math32.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	unit := core.NewInterval(0, 1)
	return core.NewVec3(unit.Clamp(r), unit.Clamp(g), unit.Clamp(blue))
}

// NewSphereGridScene creates a scene with a 10x10 grid of rainbow metallic spheres
func NewSphereGridScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 50,
		MaxDepth:        40,
		VFov:            40.0,
		LookFrom:        core.NewVec3(4.5, 6, 18),    // Back and above the grid
		LookAt:          core.NewVec3(4.5, 0.8, 4.5), // Center of grid, slightly lower
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    0.3,
		FocusDist:       14.5, // Roughly the distance to the grid center
	}

	// Ground is a huge gray sphere whose top touches y = 0
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(4.5, -1000, 4.5), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	gridSize := 10

	// Fit the grid in roughly 9x9 units
	targetArea := float32(9.0)
	spacing := targetArea / float32(gridSize-1)
	sphereRadius := core.NewInterval(0.02, 0.35).Clamp(spacing * 0.35)

	// OKLCH parameters for color variation
	baseLightness := float32(0.65)
	minChroma := float32(0.05) // near gray
	maxChroma := float32(0.25) // vivid

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float32(i)*spacing - targetArea/2.0 + 4.5 // Center around x=4.5
			z := float32(j)*spacing - targetArea/2.0 + 4.5 // Center around z=4.5
			position := core.NewVec3(x, sphereRadius, z)

			// Hue varies across X, chroma across Z
			hue := (float32(i) / float32(gridSize-1)) * 360.0
			chroma := minChroma + (float32(j)/float32(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math32.Sin(float32(i+j)*0.5)

			roughness := 0.05 + 0.1*float32((i+j)%3)/2.0
			metalMaterial := material.NewMetal(oklchToRGB(lightness, chroma, hue), roughness)

			world.Add(geometry.NewSphere(position, sphereRadius, metalMaterial))
		}
	}

	return &Scene{
		Name:         "sphere-grid",
		World:        world,
		CameraConfig: cameraConfig,
	}
}
