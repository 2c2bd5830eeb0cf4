package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ShadowEpsilon is how far hit points are pushed along the normal before spawning shadow and reflection rays
const ShadowEpsilon = 1e-4

// Light is a point light
type Light struct {
	Position core.Vec3
	Color    core.Vec3
}

// Shading contains the scene-wide shading constants
type Shading struct {
	Ambient    float64 // Added to every channel of a lit hit
	Diffuse    float64 // Default Lambert coefficient
	Specular   float64 // Default Blinn-Phong coefficient
	Shininess  float64 // Blinn-Phong exponent
	Reflection float64 // Default reflection coefficient
}

// Defaults returns the material defaults implied by the shading constants
func (s Shading) Defaults() material.Defaults {
	return material.Defaults{
		Diffuse:    s.Diffuse,
		Specular:   s.Specular,
		Reflection: s.Reflection,
	}
}

// DefaultShading returns the shading constants of the default scene
func DefaultShading() Shading {
	return Shading{
		Ambient:    0.05,
		Diffuse:    1.0,
		Specular:   1.0,
		Shininess:  50,
		Reflection: 1.0,
	}
}

// Config describes a scene before validation
type Config struct {
	Primitives   []geometry.Primitive
	Light        Light
	Shading      Shading
	MaxDepth     int       // Maximum number of segments traced per pixel; 0 renders every pixel black, even misses
	MissColor    core.Vec3 // Color of pixels whose primary ray hits nothing
	CameraConfig geometry.CameraConfig
}

// Object is a primitive together with its resolved surface
type Object struct {
	Shape   geometry.Primitive
	Surface material.Surface
}

// Scene is an immutable, validated set of objects plus lighting.
// It is safe for concurrent reads.
type Scene struct {
	Objects      []Object
	Light        Light
	Shading      Shading
	MaxDepth     int // 0 traces nothing: pixels stay black rather than MissColor and count as misses
	MissColor    core.Vec3
	CameraConfig geometry.CameraConfig
}

// New validates the config and resolves every material against the shading defaults
func New(config Config) (*Scene, error) {
	if config.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: max depth must be >= 0, got %d", core.ErrInvalidScene, config.MaxDepth)
	}
	if config.Shading.Shininess < 0 {
		return nil, fmt.Errorf("%w: shininess must be >= 0, got %g", core.ErrInvalidScene, config.Shading.Shininess)
	}

	defaults := config.Shading.Defaults()
	objects := make([]Object, 0, len(config.Primitives))
	for i, primitive := range config.Primitives {
		if primitive == nil {
			return nil, fmt.Errorf("%w: primitive %d is nil", core.ErrInvalidScene, i)
		}
		surface, err := primitive.Material().Resolve(defaults)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		objects = append(objects, Object{Shape: primitive, Surface: surface})
	}

	return &Scene{
		Objects:      objects,
		Light:        config.Light,
		Shading:      config.Shading,
		MaxDepth:     config.MaxDepth,
		MissColor:    config.MissColor,
		CameraConfig: config.CameraConfig,
	}, nil
}

// WithMaxDepth returns a copy of the scene with a different reflection depth.
// The receiver is left unchanged; objects are shared since they are read-only.
func (s *Scene) WithMaxDepth(maxDepth int) (*Scene, error) {
	if maxDepth < 0 {
		return nil, fmt.Errorf("%w: max depth must be >= 0, got %d", core.ErrInvalidScene, maxDepth)
	}
	copied := *s
	copied.MaxDepth = maxDepth
	return &copied, nil
}

// FindNearest returns the index and distance of the closest object hit by the ray.
// Ties keep the lowest index.
func (s *Scene) FindNearest(ray core.Ray) (int, float64, bool) {
	nearest := -1
	closest := math.Inf(1)

	for i, obj := range s.Objects {
		if t := obj.Shape.Intersect(ray); t < closest {
			nearest = i
			closest = t
		}
	}

	return nearest, closest, nearest >= 0
}

// IsShadowed reports whether any object other than exclude intersects the ray from point toward the light.
// The point should already be offset from its surface by ShadowEpsilon.
func (s *Scene) IsShadowed(point, toLight core.Vec3, exclude int) bool {
	ray := core.NewRay(point, toLight)
	for i, obj := range s.Objects {
		if i == exclude {
			continue
		}
		if !math.IsInf(obj.Shape.Intersect(ray), 1) {
			return true
		}
	}
	return false
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}
