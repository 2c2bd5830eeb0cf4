package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

type preset struct {
	info  SceneInfo
	build func(...geometry.CameraConfig) (*Scene, error)
}

var presets = map[string]preset{
	"default": {
		info: SceneInfo{ID: "default", DisplayName: "Default",
			Description: "Three glossy spheres over a reflective checkerboard"},
		build: NewDefaultScene,
	},
	"sphere": {
		info: SceneInfo{ID: "sphere", DisplayName: "Single Sphere",
			Description: "One unit sphere lit from above"},
		build: NewSingleSphereScene,
	},
	"spheregrid": {
		info: SceneInfo{ID: "spheregrid", DisplayName: "Sphere Grid",
			Description: "Grid of colored mirror spheres"},
		build: NewSphereGridScene,
	},
}

// ListScenes returns every built-in scene sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(presets))
	for _, p := range presets {
		scenes = append(scenes, p.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Lookup builds the named built-in scene, applying optional camera overrides
func Lookup(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	return p.build(cameraOverrides...)
}
