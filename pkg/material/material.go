package material

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes how a primitive responds to light.
// Nil coefficients are filled from the scene defaults by Resolve.
type Material struct {
	Color        ColorSource
	SpecularTint core.Vec3
	Emissive     core.Vec3 // Informational only, not used in shading
	Reflection   *float64  // Mirror reflection coefficient in [0,1]
	Diffuse      *float64  // Lambert coefficient
	Specular     *float64  // Blinn-Phong coefficient
}

// Defaults holds the scene-wide coefficients used when a material leaves one unset
type Defaults struct {
	Diffuse    float64
	Specular   float64
	Reflection float64
}

// Surface is a material with every coefficient resolved.
// Color stays on the primitive and is read through its ColorAt.
type Surface struct {
	SpecularTint core.Vec3
	Emissive     core.Vec3
	Reflection   float64
	Diffuse      float64
	Specular     float64
}

// Float returns a pointer to v, for optional material coefficients
func Float(v float64) *float64 {
	return &v
}

// Resolve fills unset coefficients from defaults and validates the result
func (m Material) Resolve(defaults Defaults) (Surface, error) {
	if m.Color == nil {
		return Surface{}, fmt.Errorf("%w: material has no color source", core.ErrInvalidPrimitive)
	}

	surface := Surface{
		SpecularTint: m.SpecularTint,
		Emissive:     m.Emissive,
		Reflection:   valueOr(m.Reflection, defaults.Reflection),
		Diffuse:      valueOr(m.Diffuse, defaults.Diffuse),
		Specular:     valueOr(m.Specular, defaults.Specular),
	}

	if surface.Reflection < 0 || surface.Reflection > 1 {
		return Surface{}, fmt.Errorf("%w: reflection coefficient %g outside [0,1]", core.ErrInvalidPrimitive, surface.Reflection)
	}
	if surface.Diffuse < 0 || surface.Specular < 0 {
		return Surface{}, fmt.Errorf("%w: negative shading coefficient (diffuse %g, specular %g)",
			core.ErrInvalidPrimitive, surface.Diffuse, surface.Specular)
	}

	return surface, nil
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
