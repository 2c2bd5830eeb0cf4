package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates three glossy balls over a reflective checkerboard floor
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := geometry.DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	red, err := geometry.NewSphere(core.NewVec3(0, 2, 0), 2, material.Material{
		Color:        material.NewSolidColor(core.NewVec3(0.7, 0.1, 0.1)),
		SpecularTint: core.NewVec3(0.9, 0.1, 0.1),
		Reflection:   material.Float(0.5),
	})
	if err != nil {
		return nil, err
	}

	purple, err := geometry.NewSphere(core.NewVec3(-2.5, 1, 2), 1, material.Material{
		Color:        material.NewSolidColor(core.NewVec3(0.7, 0.0, 0.7)),
		SpecularTint: core.NewVec3(0.9, 0.9, 0.8),
		Reflection:   material.Float(0.5),
	})
	if err != nil {
		return nil, err
	}

	blue, err := geometry.NewSphere(core.NewVec3(0, 0.5, 3), 0.5, material.Material{
		Color:        material.NewSolidColor(core.NewVec3(0.0, 0.3, 1.0)),
		SpecularTint: core.NewVec3(0.0, 0.0, 1.0),
		Reflection:   material.Float(0),
	})
	if err != nil {
		return nil, err
	}

	floor, err := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.Material{
		Color:      material.NewChecker(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), material.DefaultCheckerCellSize),
		Diffuse:    material.Float(0.75),
		Specular:   material.Float(0.5),
		Reflection: material.Float(0.25),
	})
	if err != nil {
		return nil, err
	}

	return New(Config{
		Primitives: []geometry.Primitive{red, purple, blue, floor},
		Light: Light{
			Position: core.NewVec3(-10.8, 6.4, 10),
			Color:    core.NewVec3(1, 1, 1),
		},
		Shading:      DefaultShading(),
		MaxDepth:     3,
		CameraConfig: cameraConfig,
	})
}
