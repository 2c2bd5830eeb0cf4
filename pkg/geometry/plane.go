package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3 // A point on the plane
	Normal   core.Vec3 // Unit normal
	material material.Material
}

// NewPlane creates a new plane. The normal is normalized; a near-zero normal is rejected.
// A material without a color source gets the default black and white checker.
func NewPlane(point, normal core.Vec3, mat material.Material) (*Plane, error) {
	unitNormal, err := normal.Normalize()
	if err != nil {
		return nil, fmt.Errorf("%w: plane normal: %w", core.ErrInvalidPrimitive, err)
	}
	if mat.Color == nil {
		mat.Color = material.NewChecker(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), material.DefaultCheckerCellSize)
	}
	return &Plane{
		Point:    point,
		Normal:   unitNormal,
		material: mat,
	}, nil
}

// Intersect returns the distance to the plane, or +Inf for parallel rays and hits behind the origin
func (p *Plane) Intersect(ray core.Ray) float64 {
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < ParallelEpsilon {
		return math.Inf(1)
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < 0 {
		return math.Inf(1)
	}
	return t
}

// NormalAt returns the plane normal, which is the same everywhere
func (p *Plane) NormalAt(point core.Vec3) core.Vec3 {
	return p.Normal
}

// ColorAt returns the surface color at a point
func (p *Plane) ColorAt(point core.Vec3) core.Vec3 {
	return p.material.Color.Evaluate(point)
}

// Material returns the plane's material
func (p *Plane) Material() material.Material {
	return p.material
}
