package scene

import (
	"math"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering.
// It is built once and only read while frames render.
type Scene struct {
	Name        string
	Description string
	Primitives  []geometry.Primitive // Objects in the scene, in tie-break order
	Sun         core.Vec3            // Sunlight direction, reserved for shading
	Sky         core.Color           // Color seen by rays that hit nothing
	Camera      geometry.CameraConfig
	Tolerance   core.Tolerance

	Width    int // Recommended image width
	Height   int // Recommended image height
	MaxDepth int // Recommended reflection depth
}

// NewScene creates an empty scene with default sky, tolerance and camera up vector
func NewScene(name string, camera geometry.CameraConfig) *Scene {
	if camera.Up == (core.Vec3{}) {
		camera.Up = core.NewVec3(0, 1, 0)
	}
	if camera.NearPlane == 0 {
		camera.NearPlane = 1
	}
	return &Scene{
		Name:       name,
		Primitives: make([]geometry.Primitive, 0),
		Sun:        core.NewVec3(-1, -1, 1),
		Sky:        core.Sky,
		Camera:     camera,
		Tolerance:  core.DefaultTolerance(),
		Width:      400,
		Height:     300,
		MaxDepth:   5,
	}
}

// Add appends primitives to the scene
func (s *Scene) Add(primitives ...geometry.Primitive) {
	s.Primitives = append(s.Primitives, primitives...)
}

// ClosestHit tests every primitive and returns the hit nearest to the ray origin.
// Equal distances keep the earlier primitive; undefined (NaN) distances never win.
func (s *Scene) ClosestHit(ray core.Ray, t float64) (*core.Hit, bool) {
	hit, _, isHit := s.ClosestPrimitive(ray, t)
	return hit, isHit
}

// ClosestPrimitive is ClosestHit that also reports the index of the primitive hit
func (s *Scene) ClosestPrimitive(ray core.Ray, t float64) (*core.Hit, int, bool) {
	var closest *core.Hit
	closestIndex := -1
	closestDistance := math.Inf(1)

	for i, primitive := range s.Primitives {
		hit, isHit := primitive.Intersect(ray, t, s.Tolerance)
		if !isHit {
			continue
		}
		distance := hit.Distance
		if math.IsNaN(distance) {
			distance = math.Inf(1)
		}
		if closest == nil || distance < closestDistance {
			closest = hit
			closestIndex = i
			closestDistance = distance
		}
	}

	return closest, closestIndex, closest != nil
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Primitives)
}
