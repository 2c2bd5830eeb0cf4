package renderer

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func solidMaterial(r, g, b float64) material.Material {
	return material.Material{
		Color:        material.NewSolidColor(core.NewVec3(r, g, b)),
		SpecularTint: core.NewVec3(1, 1, 1),
	}
}

func newSphere(t *testing.T, center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	t.Helper()
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		t.Fatalf("Unexpected error creating sphere: %v", err)
	}
	return sphere
}

func newFloor(t *testing.T) *geometry.Plane {
	t.Helper()
	plane, err := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.Material{})
	if err != nil {
		t.Fatalf("Unexpected error creating plane: %v", err)
	}
	return plane
}

func newRaytracer(t *testing.T, config scene.Config) *Raytracer {
	t.Helper()
	s, err := scene.New(config)
	if err != nil {
		t.Fatalf("Unexpected error creating scene: %v", err)
	}
	rt, err := NewRaytracer(s)
	if err != nil {
		t.Fatalf("Unexpected error creating raytracer: %v", err)
	}
	return rt
}

// singleSphereConfig is a unit sphere at the origin, light above, camera on +z
func singleSphereConfig(t *testing.T, width, height, maxDepth int) scene.Config {
	return scene.Config{
		Primitives: []geometry.Primitive{
			newSphere(t, core.NewVec3(0, 0, 0), 1, solidMaterial(0.8, 0.3, 0.2)),
		},
		Light:    scene.Light{Position: core.NewVec3(0, 5, 0), Color: core.NewVec3(1, 1, 1)},
		Shading:  scene.DefaultShading(),
		MaxDepth: maxDepth,
		CameraConfig: geometry.CameraConfig{
			Position:      core.NewVec3(0, 0, 5),
			ViewDirection: core.NewVec3(0, 0, -1),
			FOV:           20,
			Width:         width,
			Height:        height,
		},
	}
}

func TestRaytracer_SingleSphereTwoByTwo(t *testing.T) {
	rt := newRaytracer(t, singleSphereConfig(t, 2, 2, 1))

	fb, stats, err := rt.RenderPass()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	background := core.Vec3{}
	tests := []struct {
		name   string
		px, py int
		hit    bool
	}{
		{"center pixel", 1, 1, true},
		{"center row", 0, 1, true},
		{"center column", 1, 0, true},
		{"corner pixel", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := fb.At(fb.RowForSample(tt.py), tt.px)
			if tt.hit && color == background {
				t.Errorf("Expected sphere color at (%d,%d), got background", tt.px, tt.py)
			}
			if !tt.hit && color != background {
				t.Errorf("Expected background at (%d,%d), got %v", tt.px, tt.py, color)
			}
		})
	}

	if stats.TotalPixels != 4 || stats.Hits != 3 || stats.Misses != 1 {
		t.Errorf("Expected 4 pixels with 3 hits and 1 miss, got %+v", stats)
	}
}

func TestRaytracer_MissColor(t *testing.T) {
	config := singleSphereConfig(t, 2, 2, 1)
	config.MissColor = core.NewVec3(0.1, 0.2, 0.3)
	rt := newRaytracer(t, config)

	color, err := rt.RenderPixel(0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if color != config.MissColor {
		t.Errorf("Expected miss color %v, got %v", config.MissColor, color)
	}
}

func TestRaytracer_Shade(t *testing.T) {
	config := singleSphereConfig(t, 2, 2, 1)
	// Light behind the viewer: lambert and specular terms are both exactly 1
	config.Light.Position = core.NewVec3(0, 0, 5)
	rt := newRaytracer(t, config)

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	point := core.NewVec3(0, 0, 1)
	normal := core.NewVec3(0, 0, 1)

	color, lit, err := rt.Shade(ray, 0, point, normal)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !lit {
		t.Fatal("Expected point to be lit")
	}

	shading := config.Shading
	expected := core.NewVec3(
		shading.Ambient+shading.Diffuse*0.8+shading.Specular,
		shading.Ambient+shading.Diffuse*0.3+shading.Specular,
		shading.Ambient+shading.Diffuse*0.2+shading.Specular,
	)
	if color.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, color)
	}

	// Stored pixel is clamped
	pixel, err := rt.RenderPixel(1, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pixel != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected clamped white, got %v", pixel)
	}
}

func TestRaytracer_ShadeUsesRayOriginAsViewer(t *testing.T) {
	rt := newRaytracer(t, singleSphereConfig(t, 2, 2, 1))

	point := core.NewVec3(0, 1, 0)
	normal := core.NewVec3(0, 1, 0)

	// Viewer straight above: half vector equals the normal
	above, _, err := rt.Shade(core.NewRay(core.NewVec3(0, 3, 0), core.NewVec3(0, -1, 0)), 0, point, normal)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// Grazing viewer: half vector tilts away from the normal
	grazing, _, err := rt.Shade(core.NewRay(core.NewVec3(5, 1.1, 0), core.NewVec3(-1, 0, 0)), 0, point, normal)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if above.X <= grazing.X {
		t.Errorf("Expected stronger highlight for viewer above: above=%v grazing=%v", above, grazing)
	}
}

func TestRaytracer_ShadowTerminatesPath(t *testing.T) {
	occluder := newSphere(t, core.NewVec3(0, 2, 0), 1, solidMaterial(1, 1, 1))
	rt := newRaytracer(t, scene.Config{
		Primitives: []geometry.Primitive{newFloor(t), occluder},
		Light:      scene.Light{Position: core.NewVec3(0, 10, 0), Color: core.NewVec3(1, 1, 1)},
		Shading:    scene.DefaultShading(),
		MaxDepth:   3,
		MissColor:  core.NewVec3(0.5, 0.5, 0.5),
		CameraConfig: geometry.CameraConfig{
			Position: core.NewVec3(0, 1, 3), ViewDirection: core.NewVec3(0, -1, -3),
			FOV: 30, Width: 2, Height: 2,
		},
	})

	direction, _ := core.NewVec3(0, -1, -3).Normalize()
	ray := core.NewRay(core.NewVec3(0, 1, 3), direction)

	hit, outcome, err := rt.TraceRay(ray)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if outcome != Shadowed {
		t.Fatalf("Expected shadowed outcome, got %v", outcome)
	}
	if hit.Index != 0 {
		t.Errorf("Expected floor hit, got index %d", hit.Index)
	}

	// No ambient, no miss color: the path simply contributes nothing
	color, err := rt.Trace(ray)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if color != (core.Vec3{}) {
		t.Errorf("Expected black for shadowed primary hit, got %v", color)
	}
}

func TestRaytracer_ZeroReflectionStopsAfterOneBounce(t *testing.T) {
	mat := solidMaterial(0.2, 0.6, 0.9)
	mat.Reflection = material.Float(0)

	build := func(maxDepth int) *Raytracer {
		return newRaytracer(t, scene.Config{
			Primitives: []geometry.Primitive{
				newSphere(t, core.NewVec3(0, 1, 0), 1, mat),
				newFloor(t),
			},
			Light:    scene.Light{Position: core.NewVec3(3, 6, 4), Color: core.NewVec3(1, 1, 1)},
			Shading:  scene.DefaultShading(),
			MaxDepth: maxDepth,
			CameraConfig: geometry.CameraConfig{
				Position: core.NewVec3(0, 1, 5), ViewDirection: core.NewVec3(0, 0, -1),
				FOV: 40, Width: 4, Height: 4,
			},
		})
	}

	ray := core.NewRay(core.NewVec3(0, 1, 5), core.NewVec3(0, 0, -1))
	local, outcome, err := build(1).TraceRay(ray)
	if err != nil || outcome != Lit {
		t.Fatalf("Expected lit hit, got %v (err %v)", outcome, err)
	}

	for _, depth := range []int{1, 2, 5} {
		color, err := build(depth).Trace(ray)
		if err != nil {
			t.Fatalf("Unexpected error at depth %d: %v", depth, err)
		}
		if color != local.Color {
			t.Errorf("Depth %d: expected exactly %v, got %v", depth, local.Color, color)
		}
	}
}

func TestRaytracer_ReflectionAccumulates(t *testing.T) {
	mirror := solidMaterial(0.1, 0.1, 0.1)
	mirror.Reflection = material.Float(0.5)

	config := scene.Config{
		Primitives: []geometry.Primitive{
			newSphere(t, core.NewVec3(0, 1, 0), 1, mirror),
			newFloor(t),
		},
		Light:    scene.Light{Position: core.NewVec3(3, 6, 4), Color: core.NewVec3(1, 1, 1)},
		Shading:  scene.DefaultShading(),
		MaxDepth: 1,
		CameraConfig: geometry.CameraConfig{
			Position: core.NewVec3(0, 3, 5), ViewDirection: core.NewVec3(0, -0.3, -1),
			FOV: 40, Width: 4, Height: 4,
		},
	}

	// Hits the sphere from above-front; the reflection continues upward and then misses
	// or lands on the floor depending on depth.
	direction, _ := core.NewVec3(0, -0.2, -1).Normalize()
	ray := core.NewRay(core.NewVec3(0, 3, 5), direction)

	shallow, err := newRaytracer(t, config).Trace(ray)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	config.MaxDepth = 4
	deep, err := newRaytracer(t, config).Trace(ray)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if deep.X < shallow.X || deep.Y < shallow.Y || deep.Z < shallow.Z {
		t.Errorf("Extra bounces must only add light: depth1=%v depth4=%v", shallow, deep)
	}
}

func TestRaytracer_ZeroDepthIsBlack(t *testing.T) {
	config := singleSphereConfig(t, 4, 4, 0)
	config.MissColor = core.NewVec3(0.2, 0.4, 0.6)
	rt := newRaytracer(t, config)

	fb, stats, err := rt.RenderPass()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i, p := range fb.Pixels {
		if p != (core.Vec3{}) {
			t.Fatalf("Expected black pixel %d with depth 0 (miss color not applied), got %v", i, p)
		}
	}
	if stats.Misses != 16 || stats.Hits != 0 || stats.RaysTraced != 0 {
		t.Errorf("Expected 16 misses, 0 hits and 0 rays, got %d, %d and %d",
			stats.Misses, stats.Hits, stats.RaysTraced)
	}
}

func TestRaytracer_ChannelsClamped(t *testing.T) {
	s, err := scene.NewDefaultScene(geometry.CameraConfig{Width: 24, Height: 18})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	rt, err := NewRaytracer(s)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	fb, _, err := rt.RenderPass()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i, p := range fb.Pixels {
		for _, c := range []float64{p.X, p.Y, p.Z} {
			if c < 0 || c > 1 || math.IsNaN(c) {
				t.Fatalf("Pixel %d has channel %f outside [0,1]", i, c)
			}
		}
	}
}

func TestRaytracer_DegenerateGeometryIsReported(t *testing.T) {
	// The center ray lands exactly on the light, so the light direction cannot be normalized
	rt := newRaytracer(t, scene.Config{
		Primitives: []geometry.Primitive{newFloor(t)},
		Light:      scene.Light{Position: core.NewVec3(0, 0, 0), Color: core.NewVec3(1, 1, 1)},
		Shading:    scene.DefaultShading(),
		MaxDepth:   1,
		CameraConfig: geometry.CameraConfig{
			Position: core.NewVec3(0, 1, 0), ViewDirection: core.NewVec3(0, -1, 0),
			FOV: 60, Width: 2, Height: 2,
		},
	})

	_, err := rt.RenderPixel(1, 1)
	if !errors.Is(err, core.ErrDegenerateVector) {
		t.Fatalf("Expected ErrDegenerateVector, got %v", err)
	}
	var pixelErr *PixelError
	if !errors.As(err, &pixelErr) {
		t.Fatalf("Expected PixelError, got %T", err)
	}
	if pixelErr.X != 1 || pixelErr.Y != 1 {
		t.Errorf("Expected pixel (1,1), got (%d,%d)", pixelErr.X, pixelErr.Y)
	}

	if _, _, err := rt.RenderPass(); !errors.Is(err, core.ErrDegenerateVector) {
		t.Errorf("Expected RenderPass to fail with ErrDegenerateVector, got %v", err)
	}
}

func TestRenderer_Idempotent(t *testing.T) {
	s, err := scene.NewDefaultScene(geometry.CameraConfig{Width: 40, Height: 30})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	r, err := NewRenderer(s, RenderConfig{TileSize: 8, NumWorkers: 4}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	first, _, err := r.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, _, err := r.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	serial, _, err := r.Raytracer().RenderPass()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !first.Equal(second) {
		t.Error("Two parallel renders of the same scene differ")
	}
	if !first.Equal(serial) {
		t.Error("Parallel and serial renders differ")
	}
}

func TestRenderer_Stats(t *testing.T) {
	s, err := scene.NewDefaultScene(geometry.CameraConfig{Width: 20, Height: 10})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	r, err := NewRenderer(s, RenderConfig{TileSize: 7, NumWorkers: 3}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Callbacks arrive from worker goroutines
	var callbacks atomic.Int64
	_, stats, err := r.Render(context.Background(), func(TileCompletionResult) { callbacks.Add(1) })
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expectedTiles := len(NewTileGrid(20, 10, 7))
	if stats.Tiles != expectedTiles {
		t.Errorf("Expected %d tiles, got %d", expectedTiles, stats.Tiles)
	}
	if int(callbacks.Load()) != expectedTiles {
		t.Errorf("Expected %d tile callbacks, got %d", expectedTiles, callbacks.Load())
	}
	if stats.TotalPixels != 200 || stats.Hits+stats.Misses != 200 {
		t.Errorf("Expected 200 pixels split into hits and misses, got %+v", stats)
	}
	if stats.RaysTraced < stats.TotalPixels {
		t.Errorf("Expected at least one ray per pixel, got %d rays", stats.RaysTraced)
	}
	if stats.Workers != 3 {
		t.Errorf("Expected 3 workers, got %d", stats.Workers)
	}
}

func TestRenderer_PropagatesPixelErrors(t *testing.T) {
	s, err := scene.New(scene.Config{
		Primitives: []geometry.Primitive{newFloor(t)},
		Light:      scene.Light{Position: core.NewVec3(0, 0, 0), Color: core.NewVec3(1, 1, 1)},
		Shading:    scene.DefaultShading(),
		MaxDepth:   1,
		CameraConfig: geometry.CameraConfig{
			Position: core.NewVec3(0, 1, 0), ViewDirection: core.NewVec3(0, -1, 0),
			FOV: 60, Width: 2, Height: 2,
		},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	r, err := NewRenderer(s, RenderConfig{TileSize: 1, NumWorkers: 2}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	fb, _, err := r.Render(context.Background(), nil)
	if !errors.Is(err, core.ErrDegenerateVector) {
		t.Errorf("Expected ErrDegenerateVector, got %v", err)
	}
	if fb != nil {
		t.Error("Expected no frame buffer on failure")
	}
}

func TestRenderer_Cancelled(t *testing.T) {
	s, err := scene.NewDefaultScene(geometry.CameraConfig{Width: 16, Height: 16})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	r, err := NewRenderer(s, DefaultRenderConfig(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := r.Render(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
