package core

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateVector is returned when a near-zero vector would have to be normalized
	ErrDegenerateVector = errors.New("degenerate vector")

	// ErrInvalidPrimitive is returned when a sphere or plane cannot be constructed
	ErrInvalidPrimitive = errors.New("invalid primitive")

	// ErrInvalidCamera is returned for unusable camera parameters
	ErrInvalidCamera = errors.New("invalid camera")

	// ErrInvalidScene is returned when a scene fails validation
	ErrInvalidScene = errors.New("invalid scene")
)

func degenerate(v Vec3) error {
	return fmt.Errorf("%w: cannot normalize %v (length %g)", ErrDegenerateVector, v, v.Length())
}
