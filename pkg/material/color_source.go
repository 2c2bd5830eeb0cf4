package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultCheckerCellSize is the edge length of one checker cell in world units
const DefaultCheckerCellSize = 0.5

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns the surface color at a world-space point
	Evaluate(point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of position
func (s *SolidColor) Evaluate(point core.Vec3) core.Vec3 {
	return s.Color
}

// Checker alternates between two colors on a grid over the world X/Z axes
type Checker struct {
	Even     core.Vec3 // Color where the X and Z cell parities match
	Odd      core.Vec3
	CellSize float64
}

// NewChecker creates a checker pattern; a non-positive cell size falls back to DefaultCheckerCellSize
func NewChecker(even, odd core.Vec3, cellSize float64) *Checker {
	if cellSize <= 0 {
		cellSize = DefaultCheckerCellSize
	}
	return &Checker{Even: even, Odd: odd, CellSize: cellSize}
}

// Evaluate returns Even when floor(x/cell) and floor(z/cell) share parity, Odd otherwise
func (c *Checker) Evaluate(point core.Vec3) core.Vec3 {
	if cellParity(point.X, c.CellSize) == cellParity(point.Z, c.CellSize) {
		return c.Even
	}
	return c.Odd
}

// cellParity returns 0 or 1, also for negative cell indices
func cellParity(coord, cellSize float64) int {
	cell := int64(math.Floor(coord / cellSize))
	return int(cell & 1)
}

// ProceduralColor wraps an arbitrary position to color function
type ProceduralColor func(point core.Vec3) core.Vec3

// Evaluate calls the wrapped function
func (f ProceduralColor) Evaluate(point core.Vec3) core.Vec3 {
	return f(point)
}
