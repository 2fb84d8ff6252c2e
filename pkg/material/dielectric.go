package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-pathtracer/pkg/core"
)

// NewDielectric creates a new dielectric material.
// refractionIndex is relative to the enclosing medium (1.5 for glass in air).
func NewDielectric(refractionIndex float32) Material {
	return Material{Kind: KindDielectric, RefractionIndex: refractionIndex}
}

// scatterDielectric either reflects or refracts, choosing with Schlick's approximation
func (m Material) scatterDielectric(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Clear glass absorbs nothing
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	ri := m.RefractionIndex
	if hit.FrontFace {
		ri = 1.0 / m.RefractionIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math32.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math32.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := ri*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, ri) > sampler.Get1D() {
		direction = unitDirection.Reflect(hit.Normal)
	} else {
		direction = unitDirection.Refract(hit.Normal, ri)
	}

	return ScatterResult{
		Attenuation: attenuation,
		Scattered:   core.NewRay(hit.Point, direction),
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionIndex float32) float32 {
	// Matched indices form no optical interface
	if refractionIndex == 1 {
		return 0
	}
	r0 := (1 - refractionIndex) / (1 + refractionIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math32.Pow(1-cosine, 5)
}
