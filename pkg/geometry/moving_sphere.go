package geometry

import "github.com/df07/go-mirror-raytracer/pkg/core"

// MovingSphere is a sphere whose center follows a trajectory over time
type MovingSphere struct {
	Path         Trajectory
	Radius       float64
	Color        core.Color
	Reflectivity float64
}

// NewMovingSphere creates a new moving sphere; reflectivity is clamped to [0,1]
func NewMovingSphere(path Trajectory, radius float64, color core.Color, reflectivity float64) *MovingSphere {
	return &MovingSphere{
		Path:         path,
		Radius:       radius,
		Color:        color,
		Reflectivity: core.ClampReflectivity(reflectivity),
	}
}

// CenterAt returns the sphere center at time t
func (s *MovingSphere) CenterAt(t float64) core.Vec3 {
	return s.Path.Position(t)
}

// Intersect evaluates the trajectory at time, then runs the sphere test
func (s *MovingSphere) Intersect(ray core.Ray, time float64, tol core.Tolerance) (*core.Hit, bool) {
	return intersectSphere(ray, s.CenterAt(time), s.Radius, s.Color, s.Reflectivity, tol)
}
