package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ParallelEpsilon is the smallest |dot(D,N)| for which a ray is not treated as parallel to a plane
const ParallelEpsilon = 1e-6

// Primitive is a surface that can be hit by rays.
// Intersect returns the distance along the ray to the nearest hit, or +Inf on a miss.
type Primitive interface {
	Intersect(ray core.Ray) float64
	NormalAt(point core.Vec3) core.Vec3
	ColorAt(point core.Vec3) core.Vec3
	Material() material.Material
}
