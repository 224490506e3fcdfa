package geometry

import (
	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// Primitive is implemented by every object that can be hit by rays:
// Sphere, MovingSphere and Plane.
type Primitive interface {
	// Intersect returns the hit for ray at the given time, or false on a miss.
	// A miss is a normal outcome, including rays that cannot be normalized.
	Intersect(ray core.Ray, time float64, tol core.Tolerance) (*core.Hit, bool)
}
