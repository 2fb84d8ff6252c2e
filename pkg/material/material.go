package material

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Kind identifies which variant a Material holds
type Kind uint8

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind maps a material name (as used in scene config files) to its Kind
func ParseKind(name string) (Kind, error) {
	switch name {
	case "lambertian", "diffuse":
		return KindLambertian, nil
	case "metal":
		return KindMetal, nil
	case "dielectric", "glass":
		return KindDielectric, nil
	default:
		return 0, fmt.Errorf("unknown material type %q", name)
	}
}

// Material is a closed sum of the supported surface models. Only the
// fields belonging to Kind are meaningful:
//
//	KindLambertian: Albedo
//	KindMetal:      Albedo, Fuzz
//	KindDielectric: RefractionIndex
//
// Materials are plain values; shapes and hit records hold copies.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3
	Fuzz            float32
	RefractionIndex float32
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Attenuation core.Vec3 // Color attenuation
	Scattered   core.Ray  // The scattered ray
}

// Scatter computes the outgoing ray for rayIn hitting the surface described by hit.
// The bool is false when the surface absorbs the ray.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	default:
		panic(fmt.Sprintf("material: unhandled kind %v", m.Kind))
	}
}

func (m Material) String() string {
	switch m.Kind {
	case KindMetal:
		return fmt.Sprintf("metal{albedo=%v fuzz=%g}", m.Albedo, m.Fuzz)
	case KindDielectric:
		return fmt.Sprintf("dielectric{ior=%g}", m.RefractionIndex)
	default:
		return fmt.Sprintf("%v{albedo=%v}", m.Kind, m.Albedo)
	}
}
