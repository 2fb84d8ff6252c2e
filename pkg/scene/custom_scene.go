package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrInvalidScene is returned for a sphere list that cannot be built
var ErrInvalidScene = errors.New("invalid scene description")

// MaterialSpec describes a material in a config file
type MaterialSpec struct {
	Type            string    `mapstructure:"type"` // lambertian, metal or dielectric
	Albedo          []float32 `mapstructure:"albedo"`
	Fuzz            float32   `mapstructure:"fuzz"`
	RefractionIndex float32   `mapstructure:"refraction_index"`
}

// SphereSpec describes a sphere in a config file
type SphereSpec struct {
	Center   []float32    `mapstructure:"center"`
	Radius   float32      `mapstructure:"radius"`
	Material MaterialSpec `mapstructure:"material"`
}

// Build converts the spec into a Material
func (m MaterialSpec) Build() (material.Material, error) {
	kind, err := material.ParseKind(m.Type)
	if err != nil {
		return material.Material{}, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	switch kind {
	case material.KindDielectric:
		if !(m.RefractionIndex > 0) {
			return material.Material{}, fmt.Errorf("%w: dielectric needs a positive refraction_index, got %g", ErrInvalidScene, m.RefractionIndex)
		}
		return material.NewDielectric(m.RefractionIndex), nil
	default:
		albedo, err := toVec3("albedo", m.Albedo)
		if err != nil {
			return material.Material{}, err
		}
		if kind == material.KindMetal {
			return material.NewMetal(albedo, m.Fuzz), nil
		}
		return material.NewLambertian(albedo), nil
	}
}

// FromSpheres builds a scene from config-file sphere descriptions
func FromSpheres(name string, specs []SphereSpec, cameraConfig renderer.CameraConfig) (*Scene, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no spheres", ErrInvalidScene)
	}

	world := geometry.NewHittableList()
	for i, spec := range specs {
		center, err := toVec3("center", spec.Center)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		if !(spec.Radius > 0) {
			return nil, fmt.Errorf("sphere %d: %w: radius must be positive, got %g", i, ErrInvalidScene, spec.Radius)
		}
		mat, err := spec.Material.Build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		world.Add(geometry.NewSphere(center, spec.Radius, mat))
	}

	return &Scene{
		Name:         name,
		World:        world,
		CameraConfig: cameraConfig,
	}, nil
}

func toVec3(field string, values []float32) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%w: %s needs 3 components, got %d", ErrInvalidScene, field, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}
