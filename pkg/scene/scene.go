package scene

import (
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.HittableList // Objects in the scene
	CameraConfig renderer.CameraConfig  // Preferred camera for this scene
}

// SphereCount returns the number of objects in the scene
func (s *Scene) SphereCount() int {
	return s.World.Len()
}
