package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable is anything a ray can be intersected with
type Hittable interface {
	// Hit reports the nearest intersection whose t lies strictly inside rayT
	Hit(ray core.Ray, rayT core.Interval) (material.HitRecord, bool)
}
