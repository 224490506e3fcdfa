package scene

import (
	"math"
	"testing"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
)

// fixedPrimitive reports the same hit for every ray
type fixedPrimitive struct {
	hit   *core.Hit
	calls int
}

func (f *fixedPrimitive) Intersect(ray core.Ray, time float64, tol core.Tolerance) (*core.Hit, bool) {
	f.calls++
	return f.hit, f.hit != nil
}

func hitAt(distance float64, color core.Color) *fixedPrimitive {
	return &fixedPrimitive{hit: &core.Hit{Distance: distance, Color: color}}
}

func newTestScene(primitives ...geometry.Primitive) *Scene {
	s := NewScene("test", geometry.CameraConfig{Direction: core.NewVec3(0, 0, 1)})
	s.Add(primitives...)
	return s
}

func TestScene_ClosestHit(t *testing.T) {
	red := core.NewColor(255, 0, 0)
	green := core.NewColor(0, 255, 0)
	blue := core.NewColor(0, 0, 255)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))

	tests := []struct {
		name       string
		primitives []geometry.Primitive
		expectHit  bool
		expected   core.Color
	}{
		{"empty scene", nil, false, core.Color{}},
		{"all miss", []geometry.Primitive{&fixedPrimitive{}, &fixedPrimitive{}}, false, core.Color{}},
		{"single hit", []geometry.Primitive{&fixedPrimitive{}, hitAt(5, red)}, true, red},
		{"nearest wins", []geometry.Primitive{hitAt(50, red), hitAt(5, green), hitAt(20, blue)}, true, green},
		{"tie keeps first", []geometry.Primitive{hitAt(7, blue), hitAt(7, red)}, true, blue},
		{"NaN never wins", []geometry.Primitive{hitAt(math.NaN(), red), hitAt(1000, green)}, true, green},
		{"NaN after finite", []geometry.Primitive{hitAt(1000, green), hitAt(math.NaN(), red)}, true, green},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(tt.primitives...)
			hit, isHit := s.ClosestHit(ray, 0)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && hit.Color != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, hit.Color)
			}
		})
	}
}

func TestScene_ClosestHit_TestsEveryPrimitive(t *testing.T) {
	a, b, c := hitAt(1, core.Black), &fixedPrimitive{}, hitAt(2, core.Black)
	s := newTestScene(a, b, c)
	s.ClosestHit(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), 0)
	for i, p := range []*fixedPrimitive{a, b, c} {
		if p.calls != 1 {
			t.Errorf("Primitive %d: expected 1 intersection test, got %d", i, p.calls)
		}
	}
}

func TestScene_ClosestHit_RealGeometry(t *testing.T) {
	s := NewDefaultScene()

	// Straight down from above the mirror sphere: the sphere is closer than the floor
	ray := core.NewRay(core.NewVec3(0, 500, 400), core.NewVec3(0, -1, 0))
	hit, isHit := s.ClosestHit(ray, 0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.Point.Y-200) > 1e-9 {
		t.Errorf("Expected top of the mirror sphere at y=200, got %v", hit.Point)
	}

	// Away from the spheres the floor is hit
	ray = core.NewRay(core.NewVec3(-1000, 500, -1000), core.NewVec3(0, -1, 0))
	hit, isHit = s.ClosestHit(ray, 0)
	if !isHit {
		t.Fatal("Expected floor hit, but got miss")
	}
	if math.Abs(hit.Point.Y) > 1e-9 {
		t.Errorf("Expected floor hit at y=0, got %v", hit.Point)
	}

	// Pointing at the sky
	if _, isHit := s.ClosestHit(core.NewRay(core.NewVec3(0, 500, 0), core.NewVec3(0, 1, 0)), 0); isHit {
		t.Error("Expected upward ray to miss everything")
	}
}

func TestBuiltinScenes(t *testing.T) {
	for _, b := range builtinScenes {
		t.Run(b.info.ID, func(t *testing.T) {
			s := b.build()
			if s.Width <= 0 || s.Height <= 0 {
				t.Errorf("Expected positive resolution, got %dx%d", s.Width, s.Height)
			}
			if s.MaxDepth < 0 {
				t.Errorf("Expected non-negative depth, got %d", s.MaxDepth)
			}
			if _, err := s.Camera.Pose(1.25); err != nil {
				t.Errorf("Expected valid camera pose, got %v", err)
			}
		})
	}

	if n := NewEmptyScene().GetPrimitiveCount(); n != 0 {
		t.Errorf("Expected empty scene, got %d primitives", n)
	}
	if n := NewSingleSphereScene().GetPrimitiveCount(); n != 1 {
		t.Errorf("Expected one primitive, got %d", n)
	}
}

func TestScene_ClosestPrimitive(t *testing.T) {
	s := newTestScene(&fixedPrimitive{}, hitAt(9, core.Black), hitAt(3, core.Black))
	_, index, isHit := s.ClosestPrimitive(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), 0)
	if !isHit || index != 2 {
		t.Errorf("Expected primitive 2, got %d (hit=%t)", index, isHit)
	}

	_, index, isHit = newTestScene().ClosestPrimitive(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), 0)
	if isHit || index != -1 {
		t.Errorf("Expected no primitive, got %d (hit=%t)", index, isHit)
	}
}

func TestNewEmptyScene_FreshPrimitives(t *testing.T) {
	s := NewEmptyScene()
	if len(s.Primitives) != 0 || cap(s.Primitives) != 0 {
		t.Fatalf("Expected empty primitive storage, got len %d cap %d", len(s.Primitives), cap(s.Primitives))
	}

	added := hitAt(1, core.Black)
	s.Add(added)
	if len(s.Primitives) != 1 || s.Primitives[0] != geometry.Primitive(added) {
		t.Errorf("Expected only the added primitive, got %v", s.Primitives)
	}
}
