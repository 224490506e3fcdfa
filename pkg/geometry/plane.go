package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

const (
	// DefaultCheckerSize is the edge length of one checker square in world units
	DefaultCheckerSize = 100.0
	// CheckerAltReflectivity is used for the alternate (odd) checker squares
	CheckerAltReflectivity = 0.1
)

// Plane represents an infinite one-sided plane defined by a point and normal.
// Rays approaching from behind the normal never hit it.
type Plane struct {
	Point        core.Vec3  // A point on the plane
	Normal       core.Vec3  // Unit normal
	Color        core.Color // Primary color
	Reflectivity float64    // Primary reflectivity

	Checker     bool       // Alternate squares between Color and AltColor
	AltColor    core.Color // Color of odd checker squares
	CheckerSize float64    // Edge length of a checker square
}

// NewPlane creates a new plane; the normal is normalized and must be non-zero
func NewPlane(point, normal core.Vec3, color core.Color, reflectivity float64) (*Plane, error) {
	n, err := normal.Normalize()
	if err != nil {
		return nil, fmt.Errorf("plane normal: %w", err)
	}
	return &Plane{
		Point:        point,
		Normal:       n,
		Color:        color,
		Reflectivity: core.ClampReflectivity(reflectivity),
		CheckerSize:  DefaultCheckerSize,
	}, nil
}

// NewCheckerPlane creates a plane textured with a checker pattern
func NewCheckerPlane(point, normal core.Vec3, color, altColor core.Color, reflectivity float64) (*Plane, error) {
	p, err := NewPlane(point, normal, color, reflectivity)
	if err != nil {
		return nil, err
	}
	p.Checker = true
	p.AltColor = altColor
	return p, nil
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray, time float64, tol core.Tolerance) (*core.Hit, bool) {
	u, err := ray.Direction.Normalize()
	if err != nil {
		return nil, false
	}

	// A ray travelling with the normal approaches from behind
	angle, err := u.AngleBetween(p.Normal)
	if err != nil || angle < math.Pi/2 {
		return nil, false
	}

	udotn := u.Dot(p.Normal)
	if math.Abs(udotn) < tol.ParallelEpsilon {
		return nil, false
	}

	k := p.Point.Subtract(ray.Origin).Dot(p.Normal) / udotn
	if k < tol.MinDistance {
		return nil, false
	}

	point := core.NewRay(ray.Origin, u).At(k)
	color, reflectivity := p.SurfaceAt(point)

	return &core.Hit{
		Point:        point,
		Distance:     point.Subtract(ray.Origin).Length(),
		Reflected:    core.NewRay(point, u.Reflect(p.Normal)),
		Color:        color,
		Reflectivity: reflectivity,
	}, true
}

// SurfaceAt returns the color and reflectivity of the plane at point
func (p *Plane) SurfaceAt(point core.Vec3) (core.Color, float64) {
	if !p.Checker {
		return p.Color, p.Reflectivity
	}
	size := p.CheckerSize
	if size <= 0 {
		size = DefaultCheckerSize
	}
	parity := int64(math.Floor(point.X/size) + math.Floor(point.Z/size))
	if parity%2 == 0 {
		return p.Color, p.Reflectivity
	}
	return p.AltColor, CheckerAltReflectivity
}
