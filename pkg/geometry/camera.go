package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	// WorldUp is the up hint used when a camera config leaves Up unset
	WorldUp = core.NewVec3(0, 1, 0)

	// fallbackUp replaces the up hint when the view direction is parallel to it
	fallbackUp = core.NewVec3(0, 0, -1)
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Position      core.Vec3 // Camera position
	ViewDirection core.Vec3 // Direction the camera looks along; need not be unit length
	Up            core.Vec3 // Up hint; zero means WorldUp
	FOV           float64   // Field of view in degrees
	Width         int       // Image width in pixels
	Height        int       // Image height in pixels
}

// DefaultCameraConfig returns the camera of the default scene
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:      core.NewVec3(0, 6, 8),
		ViewDirection: core.NewVec3(0, -0.8, -1),
		Up:            WorldUp,
		FOV:           60,
		Width:         400,
		Height:        300,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied on top
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if !override.Position.IsZero() {
		result.Position = override.Position
	}
	if !override.ViewDirection.IsZero() {
		result.ViewDirection = override.ViewDirection
	}
	if !override.Up.IsZero() {
		result.Up = override.Up
	}
	if override.FOV != 0 {
		result.FOV = override.FOV
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	return result
}

// Camera maps pixel coordinates to world-space ray directions
type Camera struct {
	Position    core.Vec3
	View        core.Vec3 // Unit view direction
	Right       core.Vec3 // Unit right vector
	Up          core.Vec3 // Unit up vector, orthogonal to View and Right
	Width       int
	Height      int
	AspectRatio float64
	HalfAngle   float64 // tan(fov/2)
}

// NewCamera builds an orthonormal camera basis from the config
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", core.ErrInvalidCamera, config.Width, config.Height)
	}
	if !(config.FOV > 0 && config.FOV < 180) {
		return nil, fmt.Errorf("%w: field of view %g outside (0,180)", core.ErrInvalidCamera, config.FOV)
	}

	view, err := config.ViewDirection.Normalize()
	if err != nil {
		return nil, fmt.Errorf("camera view direction: %w", err)
	}

	upHint := config.Up
	if upHint.IsZero() {
		upHint = WorldUp
	}

	right, err := view.Cross(upHint).Normalize()
	if err != nil {
		// Looking straight along the up hint
		right, err = view.Cross(fallbackUp).Normalize()
		if err != nil {
			right, err = view.Cross(core.NewVec3(1, 0, 0)).Normalize()
			if err != nil {
				return nil, fmt.Errorf("camera right vector: %w", err)
			}
		}
	}

	up, err := right.Cross(view).Normalize()
	if err != nil {
		return nil, fmt.Errorf("camera up vector: %w", err)
	}

	return &Camera{
		Position:    config.Position,
		View:        view,
		Right:       right,
		Up:          up,
		Width:       config.Width,
		Height:      config.Height,
		AspectRatio: float64(config.Width) / float64(config.Height),
		HalfAngle:   math.Tan(config.FOV * math.Pi / 180.0 / 2.0),
	}, nil
}

// RayForPixel returns the unit world-space direction through pixel (px, py).
// Pixel (width/2, height/2) maps to the view direction; larger py tilts the ray toward -Up.
func (c *Camera) RayForPixel(px, py float64) (core.Vec3, error) {
	x := (px*2.0)/float64(c.Width) - 1.0
	y := (py*2.0)/float64(c.Height) - 1.0

	dir := c.View.
		Add(c.Right.Multiply(c.HalfAngle * c.AspectRatio * x)).
		Subtract(c.Up.Multiply(c.HalfAngle * y))

	return dir.Normalize()
}

// GetRay returns the primary ray through pixel (px, py)
func (c *Camera) GetRay(px, py int) (core.Ray, error) {
	dir, err := c.RayForPixel(float64(px), float64(py))
	if err != nil {
		return core.Ray{}, err
	}
	return core.NewRay(c.Position, dir), nil
}
