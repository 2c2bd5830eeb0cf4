package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to cube-root LMS
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b

	lc, mc, sc = lc*lc*lc, mc*mc*mc, sc*sc*sc

	// LMS to linear RGB
	return core.NewVec3(
		+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc,
		-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc,
		-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc,
	).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of mirrored spheres over a checker floor.
// Hue varies along X, chroma along Z and reflectivity along the diagonal.
func NewSphereGridScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Position:      core.NewVec3(4.5, 6, 18),
		ViewDirection: core.NewVec3(0, -5.2, -13.5), // Toward the grid center
		Up:            geometry.WorldUp,
		FOV:           40,
		Width:         480,
		Height:        270,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	floor, err := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.Material{
		Color:      material.NewChecker(core.NewVec3(0.6, 0.6, 0.6), core.NewVec3(0.2, 0.2, 0.2), 1.0),
		Diffuse:    material.Float(0.75),
		Specular:   material.Float(0.25),
		Reflection: material.Float(0.2),
	})
	if err != nil {
		return nil, err
	}
	primitives := []geometry.Primitive{floor}

	const (
		gridSize   = 8
		targetArea = 9.0
	)
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Min(0.35*spacing, 0.45)

	baseLightness := 0.65
	minChroma, maxChroma := 0.05, 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i) * spacing
			z := float64(j) * spacing

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			reflection := 0.1 + 0.4*float64((i+j)%3)/2.0

			sphere, err := geometry.NewSphere(core.NewVec3(x, sphereRadius, z), sphereRadius, material.Material{
				Color:        material.NewSolidColor(oklchToRGB(lightness, chroma, hue)),
				SpecularTint: core.NewVec3(1, 1, 1),
				Reflection:   material.Float(reflection),
			})
			if err != nil {
				return nil, err
			}
			primitives = append(primitives, sphere)
		}
	}

	return New(Config{
		Primitives: primitives,
		Light: Light{
			Position: core.NewVec3(20, 25, 20),
			Color:    core.NewVec3(1, 1, 1),
		},
		Shading:      DefaultShading(),
		MaxDepth:     4,
		MissColor:    core.NewVec3(0.05, 0.07, 0.1),
		CameraConfig: cameraConfig,
	})
}
