package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	material material.Material
}

// NewSphere creates a new sphere; the radius must be positive and the material needs a color source
func NewSphere(center core.Vec3, radius float64, mat material.Material) (*Sphere, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: sphere radius must be positive, got %g", core.ErrInvalidPrimitive, radius)
	}
	if mat.Color == nil {
		return nil, fmt.Errorf("%w: sphere material has no color source", core.ErrInvalidPrimitive)
	}
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: mat,
	}, nil
}

// Intersect returns the distance to the nearest non-negative root, or +Inf
func (s *Sphere) Intersect(ray core.Ray) float64 {
	// Vector from sphere center to ray origin
	os := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(os)
	c := os.Dot(os) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant <= 0 {
		return math.Inf(1)
	}

	// Stable form avoids cancellation between -b and sqrt(disc)
	sqrtD := math.Sqrt(discriminant)
	var q float64
	if b < 0 {
		q = (-b + sqrtD) / 2.0
	} else {
		q = (-b - sqrtD) / 2.0
	}

	t0, t1 := q/a, c/q
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	// Both intersections behind the origin
	if t1 < 0 {
		return math.Inf(1)
	}
	// Origin inside the sphere: use the exit point
	if t0 < 0 {
		return t1
	}
	return t0
}

// NormalAt returns the outward unit normal at a point on the surface
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	outward := point.Subtract(s.Center)
	return outward.Multiply(1.0 / outward.Length())
}

// ColorAt returns the surface color at a point
func (s *Sphere) ColorAt(point core.Vec3) core.Vec3 {
	return s.material.Color.Evaluate(point)
}

// Material returns the sphere's material
func (s *Sphere) Material() material.Material {
	return s.material
}
