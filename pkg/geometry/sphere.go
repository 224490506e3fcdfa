package geometry

import (
	"math"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// Sphere represents a static sphere shape
type Sphere struct {
	Center       core.Vec3
	Radius       float64
	Color        core.Color
	Reflectivity float64
}

// NewSphere creates a new sphere; reflectivity is clamped to [0,1]
func NewSphere(center core.Vec3, radius float64, color core.Color, reflectivity float64) *Sphere {
	return &Sphere{
		Center:       center,
		Radius:       radius,
		Color:        color,
		Reflectivity: core.ClampReflectivity(reflectivity),
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray, time float64, tol core.Tolerance) (*core.Hit, bool) {
	return intersectSphere(ray, s.Center, s.Radius, s.Color, s.Reflectivity, tol)
}

// intersectSphere is the line-sphere test shared by the static and moving variants
func intersectSphere(ray core.Ray, center core.Vec3, radius float64, color core.Color, reflectivity float64, tol core.Tolerance) (*core.Hit, bool) {
	u, err := ray.Direction.Normalize()
	if err != nil {
		return nil, false
	}

	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(center)
	udotoc := u.Dot(oc)

	// Tangent rays (zero discriminant) count as a miss
	discriminant := udotoc*udotoc - (oc.LengthSquared() - radius*radius)
	if !(discriminant > 0) {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)
	k := min(-udotoc+sqrtD, -udotoc-sqrtD)

	// Behind the origin, or the surface the ray starts on
	if k < tol.MinDistance {
		return nil, false
	}

	point := core.NewRay(ray.Origin, u).At(k)
	normal, err := point.Subtract(center).Normalize()
	if err != nil {
		return nil, false
	}

	return &core.Hit{
		Point:        point,
		Distance:     point.Subtract(ray.Origin).Length(),
		Reflected:    core.NewRay(point, u.Reflect(normal)),
		Color:        color,
		Reflectivity: reflectivity,
	}, true
}
