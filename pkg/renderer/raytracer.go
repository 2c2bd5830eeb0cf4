package renderer

import (
	"context"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Outcome describes what a single traced segment found
type Outcome int

const (
	Missed   Outcome = iota // No object along the ray
	Shadowed                // Hit an object, but the light is blocked; the path ends
	Lit                     // Hit a lit object
)

func (o Outcome) String() string {
	switch o {
	case Missed:
		return "missed"
	case Shadowed:
		return "shadowed"
	case Lit:
		return "lit"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// HitResult is the local shading result of one ray segment
type HitResult struct {
	Index  int       // Index of the hit object in the scene
	Point  core.Vec3 // World-space hit point
	Normal core.Vec3 // Unit surface normal at Point
	Color  core.Vec3 // Ambient + diffuse + specular at Point
}

// PathStats counts what happened while tracing one pixel
type PathStats struct {
	Rays     int // Segments traced, including the primary ray
	Shadowed bool
	Hit      bool // Whether the primary ray hit anything
}

// Raytracer traces rays through an immutable scene. It holds no per-render state,
// so one instance can be shared by any number of goroutines.
type Raytracer struct {
	scene  *scene.Scene
	camera *geometry.Camera
}

// NewRaytracer creates a raytracer for the scene using the scene's camera config
func NewRaytracer(s *scene.Scene) (*Raytracer, error) {
	camera, err := geometry.NewCamera(s.CameraConfig)
	if err != nil {
		return nil, fmt.Errorf("scene camera: %w", err)
	}
	return &Raytracer{scene: s, camera: camera}, nil
}

// Camera returns the camera primary rays are generated from
func (rt *Raytracer) Camera() *geometry.Camera {
	return rt.camera
}

// Shade evaluates Lambert + Blinn-Phong lighting at a hit point.
// The viewer is the origin of the ray that produced the hit. It returns false if the point is in shadow.
func (rt *Raytracer) Shade(ray core.Ray, index int, point, normal core.Vec3) (core.Vec3, bool, error) {
	s := rt.scene
	obj := s.Objects[index]
	surface := obj.Surface

	toLight, err := s.Light.Position.Subtract(point).Normalize()
	if err != nil {
		return core.Vec3{}, false, fmt.Errorf("direction to light: %w", err)
	}

	offset := point.Add(normal.Multiply(scene.ShadowEpsilon))
	if s.IsShadowed(offset, toLight, index) {
		return core.Vec3{}, false, nil
	}

	toEye, err := ray.Origin.Subtract(point).Normalize()
	if err != nil {
		return core.Vec3{}, false, fmt.Errorf("direction to viewer: %w", err)
	}
	halfVector, err := toLight.Add(toEye).Normalize()
	if err != nil {
		return core.Vec3{}, false, fmt.Errorf("half vector: %w", err)
	}

	ambient := s.Shading.Ambient
	color := core.NewVec3(ambient, ambient, ambient)

	// Lambert
	lambert := math.Max(normal.Dot(toLight), 0)
	color = color.Add(obj.Shape.ColorAt(point).Multiply(surface.Diffuse * lambert))

	// Blinn-Phong
	specular := math.Pow(math.Max(normal.Dot(halfVector), 0), s.Shading.Shininess)
	color = color.Add(s.Light.Color.Multiply(surface.Specular * specular))

	return color, true, nil
}

// TraceRay finds the nearest hit along the ray and shades it
func (rt *Raytracer) TraceRay(ray core.Ray) (HitResult, Outcome, error) {
	index, t, ok := rt.scene.FindNearest(ray)
	if !ok {
		return HitResult{}, Missed, nil
	}

	shape := rt.scene.Objects[index].Shape
	point := ray.At(t)
	normal := shape.NormalAt(point)

	color, lit, err := rt.Shade(ray, index, point, normal)
	if err != nil {
		return HitResult{}, Missed, err
	}
	if !lit {
		return HitResult{Index: index, Point: point, Normal: normal}, Shadowed, nil
	}

	return HitResult{Index: index, Point: point, Normal: normal, Color: color}, Lit, nil
}

// Trace follows a ray and its mirror reflections for up to MaxDepth segments and returns
// the accumulated, unclamped color.
func (rt *Raytracer) Trace(ray core.Ray) (core.Vec3, error) {
	color, _, err := rt.trace(ray)
	return color, err
}

func (rt *Raytracer) trace(ray core.Ray) (core.Vec3, PathStats, error) {
	var stats PathStats
	color := core.Vec3{}
	reflection := 1.0
	current := ray

	for depth := 0; depth < rt.scene.MaxDepth; depth++ {
		hit, outcome, err := rt.TraceRay(current)
		stats.Rays++
		if err != nil {
			return core.Vec3{}, stats, fmt.Errorf("bounce %d: %w", depth, err)
		}

		if depth == 0 {
			stats.Hit = outcome != Missed
			if outcome == Missed {
				color = rt.scene.MissColor
			}
		}
		if outcome == Shadowed {
			stats.Shadowed = true
		}
		if outcome != Lit {
			break
		}

		color = color.Add(hit.Color.Multiply(reflection))
		reflection *= rt.scene.Objects[hit.Index].Surface.Reflection
		if reflection == 0 {
			break
		}

		direction, err := current.Direction.Reflect(hit.Normal).Normalize()
		if err != nil {
			return core.Vec3{}, stats, fmt.Errorf("bounce %d reflection: %w", depth, err)
		}
		current = core.NewRay(hit.Point.Add(hit.Normal.Multiply(scene.ShadowEpsilon)), direction)
	}

	return color, stats, nil
}

// RenderPixel traces the primary ray through (px, py) and clamps the result to [0,1]
func (rt *Raytracer) RenderPixel(px, py int) (core.Vec3, error) {
	color, _, err := rt.renderPixel(px, py)
	return color, err
}

func (rt *Raytracer) renderPixel(px, py int) (core.Vec3, PathStats, error) {
	ray, err := rt.camera.GetRay(px, py)
	if err != nil {
		return core.Vec3{}, PathStats{}, &PixelError{X: px, Y: py, Err: err}
	}

	color, stats, err := rt.trace(ray)
	if err != nil {
		return core.Vec3{}, stats, &PixelError{X: px, Y: py, Err: err}
	}

	return color.Clamp(0.0, 1.0), stats, nil
}

// RenderPass renders every pixel on the calling goroutine
func (rt *Raytracer) RenderPass() (*FrameBuffer, RenderStats, error) {
	width, height := rt.camera.Width, rt.camera.Height
	fb := NewFrameBuffer(width, height)

	tile := NewTile(0, fb.Bounds())
	stats, err := NewTileRenderer(rt).RenderTileBounds(context.Background(), tile.Bounds, fb)
	if err != nil {
		return nil, stats, err
	}
	stats.Tiles = 1
	return fb, stats, nil
}

// PixelError reports a pixel whose ray could not be traced
type PixelError struct {
	X, Y int
	Err  error
}

func (e *PixelError) Error() string {
	return fmt.Sprintf("pixel (%d,%d): %v", e.X, e.Y, e.Err)
}

func (e *PixelError) Unwrap() error {
	return e.Err
}
