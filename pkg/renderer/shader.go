package renderer

import (
	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// Trace returns the color seen along ray at time t, following mirror
// reflections for at most depth bounces. It reports false when the ray
// hits nothing; the caller decides what the background looks like.
func Trace(ray core.Ray, sc *scene.Scene, depth int, t float64) (core.Color, bool) {
	hit, isHit := sc.ClosestHit(ray, t)
	if !isHit {
		return core.Color{}, false
	}

	if depth <= 0 || hit.Reflectivity <= 0 {
		return hit.Color, true
	}

	reflected, ok := Trace(hit.Reflected, sc, depth-1, t)
	if !ok {
		// The reflection sees the sky
		reflected = sc.Sky
	}
	return hit.Color.Mix(reflected, hit.Reflectivity), true
}
