package scene

import (
	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
)

// NewDefaultScene creates a checkerboard floor with mirrored spheres and one orbiting sphere
func NewDefaultScene() *Scene {
	s := NewScene("default", geometry.CameraConfig{
		Position:  core.NewVec3(0, 150, -300), // Above the floor, behind the spheres
		Direction: core.NewVec3(0, -0.2, 1),   // Tilted slightly down
		Up:        core.NewVec3(0, 1, 0),
		NearPlane: 1,
		FOV:       20,
	})
	s.Width, s.Height = 400, 300
	s.MaxDepth = 5

	// Checker colors and the ground normal are constants, so this cannot fail
	ground, _ := geometry.NewCheckerPlane(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewColor(235, 235, 235),
		core.NewColor(40, 44, 52),
		0.3,
	)

	mirror := geometry.NewSphere(core.NewVec3(0, 100, 400), 100, core.NewColor(200, 200, 210), 0.8)
	red := geometry.NewSphere(core.NewVec3(-250, 60, 300), 60, core.NewColor(200, 50, 40), 0.3)
	blue := geometry.NewSphere(core.NewVec3(250, 60, 300), 60, core.NewColor(40, 70, 200), 0)
	orbiter := geometry.NewMovingSphere(
		geometry.OrbitPath(core.NewVec3(0, 40, 400), 220, 1, 0),
		40,
		core.NewColor(60, 180, 75),
		0.5,
	)

	s.Add(ground, mirror, red, blue, orbiter)
	return s
}

// NewOrbitScene is the default scene seen from a camera circling the mirror sphere
func NewOrbitScene() *Scene {
	s := NewDefaultScene()
	s.Name = "orbit"
	s.Camera.Rig = geometry.CameraRig{
		Kind:   geometry.RigOrbit,
		Target: core.NewVec3(0, 60, 400),
		Radius: 700,
		Height: 140,
		Speed:  0.5,
	}
	return s
}

// NewSingleSphereScene creates one matte sphere straight ahead of a camera at the origin
func NewSingleSphereScene() *Scene {
	s := NewScene("single-sphere", geometry.CameraConfig{
		Position:  core.NewVec3(0, 0, 0),
		Direction: core.NewVec3(0, 0, 1),
		Up:        core.NewVec3(0, 1, 0),
		NearPlane: 1,
		FOV:       60,
	})
	s.Width, s.Height = 400, 300
	s.MaxDepth = 3
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 100), 30, core.NewColor(0x18, 0x39, 0x3E), 0))
	return s
}

// NewEmptyScene creates a scene with the default camera and no primitives
func NewEmptyScene() *Scene {
	s := NewSingleSphereScene()
	s.Name = "empty"
	s.Primitives = make([]geometry.Primitive, 0)
	return s
}

// NewMirrorHallScene places two facing mirror planes around a sphere for deep reflections
func NewMirrorHallScene() *Scene {
	s := NewScene("mirror-hall", geometry.CameraConfig{
		Position:  core.NewVec3(0, 80, -250),
		Direction: core.NewVec3(0.15, -0.1, 1),
		Up:        core.NewVec3(0, 1, 0),
		NearPlane: 1,
		FOV:       25,
	})
	s.Width, s.Height = 400, 300
	s.MaxDepth = 7

	floor, _ := geometry.NewCheckerPlane(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewColor(220, 210, 190),
		core.NewColor(90, 60, 40),
		0.2,
	)
	leftWall, _ := geometry.NewPlane(core.NewVec3(-300, 0, 0), core.NewVec3(1, 0, 0), core.NewColor(180, 190, 200), 0.9)
	rightWall, _ := geometry.NewPlane(core.NewVec3(300, 0, 0), core.NewVec3(-1, 0, 0), core.NewColor(180, 190, 200), 0.9)
	ball := geometry.NewMovingSphere(
		geometry.OscillatePath(core.NewVec3(0, 80, 300), core.NewVec3(0, 30, 0), 2, 0),
		50,
		core.NewColor(230, 160, 30),
		0.2,
	)

	s.Add(floor, leftWall, rightWall, ball)
	return s
}
