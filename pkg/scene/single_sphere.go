package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewSingleSphereScene creates a unit sphere at the origin lit from above, seen from +z.
// Useful as a smoke test: anything but the sphere renders as the miss color.
func NewSingleSphereScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Position:      core.NewVec3(0, 0, 5),
		ViewDirection: core.NewVec3(0, 0, -1),
		Up:            geometry.WorldUp,
		FOV:           20,
		Width:         200,
		Height:        200,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	sphere, err := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.Material{
		Color:        material.NewSolidColor(core.NewVec3(0.8, 0.3, 0.2)),
		SpecularTint: core.NewVec3(1, 1, 1),
	})
	if err != nil {
		return nil, err
	}

	return New(Config{
		Primitives: []geometry.Primitive{sphere},
		Light: Light{
			Position: core.NewVec3(0, 5, 0),
			Color:    core.NewVec3(1, 1, 1),
		},
		Shading:      DefaultShading(),
		MaxDepth:     1,
		CameraConfig: cameraConfig,
	})
}
