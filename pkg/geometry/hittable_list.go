package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HittableList is the scene's object arena. Spheres are stored by value;
// the list is built once and only read while rendering.
type HittableList struct {
	Spheres []Sphere
}

// NewHittableList creates a list holding the given spheres
func NewHittableList(spheres ...Sphere) *HittableList {
	return &HittableList{Spheres: spheres}
}

// Add appends a sphere to the list
func (l *HittableList) Add(s Sphere) {
	l.Spheres = append(l.Spheres, s)
}

// Clear removes every object
func (l *HittableList) Clear() {
	l.Spheres = l.Spheres[:0]
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.Spheres)
}

// Hit returns the closest intersection across all objects
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (material.HitRecord, bool) {
	var closest material.HitRecord
	hitAnything := false
	closestSoFar := rayT.Max

	for i := range l.Spheres {
		if hit, isHit := l.Spheres[i].Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}
