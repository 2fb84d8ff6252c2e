package integrator

import "github.com/df07/go-pathtracer/pkg/core"

// GradientSky is the ambient background seen by rays that escape the scene.
// It blends vertically from Bottom (straight down) to Top (straight up).
type GradientSky struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// DefaultSky returns the white-to-light-blue sky
func DefaultSky() GradientSky {
	return GradientSky{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Color returns the sky color in the direction of ray
func (s GradientSky) Color(ray core.Ray) core.Vec3 {
	direction := ray.Direction.Normalize()
	a := 0.5 * (direction.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return s.Bottom.Lerp(s.Top, a)
}
