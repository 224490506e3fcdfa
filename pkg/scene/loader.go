package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
)

// SceneFile is the JSON description of a scene
type SceneFile struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	MaxDepth    int             `json:"maxDepth"`
	Sky         string          `json:"sky"` // "#rrggbb", defaults to core.Sky
	Sun         *[3]float64     `json:"sun"`
	Tolerance   *ToleranceFile  `json:"tolerance"`
	Camera      CameraFile      `json:"camera"`
	Primitives  []PrimitiveFile `json:"primitives"`
}

// ToleranceFile overrides intersection tolerances; zero fields keep the defaults
type ToleranceFile struct {
	MinDistance     float64 `json:"minDistance"`
	ParallelEpsilon float64 `json:"parallelEpsilon"`
}

// CameraFile describes the camera; Orbit, when present, replaces position and direction
type CameraFile struct {
	Position  [3]float64  `json:"position"`
	Direction [3]float64  `json:"direction"`
	Up        *[3]float64 `json:"up"`
	NearPlane float64     `json:"nearPlane"`
	FOV       float64     `json:"fov"` // degrees
	Orbit     *OrbitFile  `json:"orbit"`
}

// OrbitFile describes an orbiting camera rig
type OrbitFile struct {
	Target [3]float64 `json:"target"`
	Radius float64    `json:"radius"`
	Height float64    `json:"height"`
	Speed  float64    `json:"speed"`
	Phase  float64    `json:"phase"`
}

// PrimitiveFile describes one primitive; Type selects which fields apply
type PrimitiveFile struct {
	Type         string          `json:"type"` // "sphere", "movingSphere" or "plane"
	Color        string          `json:"color"`
	Reflectivity float64         `json:"reflectivity"`
	Center       [3]float64      `json:"center"`
	Radius       float64         `json:"radius"`
	Trajectory   *TrajectoryFile `json:"trajectory"`
	Point        [3]float64      `json:"point"`
	Normal       [3]float64      `json:"normal"`
	Checker      bool            `json:"checker"`
	AltColor     string          `json:"altColor"`
	CheckerSize  float64         `json:"checkerSize"`
}

// TrajectoryFile describes the motion of a moving sphere
type TrajectoryFile struct {
	Kind      string     `json:"kind"` // "static", "orbit" or "oscillate"
	Center    [3]float64 `json:"center"`
	Radius    float64    `json:"radius"`
	Amplitude [3]float64 `json:"amplitude"`
	Speed     float64    `json:"speed"`
	Phase     float64    `json:"phase"`
}

// LoadFile reads and builds a scene from a JSON file
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse builds a scene from its JSON description
func Parse(data []byte) (*Scene, error) {
	var file SceneFile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("invalid scene JSON: %w", err)
	}
	return file.Build()
}

// Build converts the description into a Scene
func (f SceneFile) Build() (*Scene, error) {
	camera, err := f.Camera.build()
	if err != nil {
		return nil, err
	}

	s := NewScene(f.Name, camera)
	s.Description = f.Description
	if f.Width > 0 {
		s.Width = f.Width
	}
	if f.Height > 0 {
		s.Height = f.Height
	}
	if f.MaxDepth < 0 {
		return nil, fmt.Errorf("maxDepth must not be negative, got %d", f.MaxDepth)
	}
	if f.MaxDepth > 0 {
		s.MaxDepth = f.MaxDepth
	}
	if f.Sky != "" {
		if s.Sky, err = core.ParseHexColor(f.Sky); err != nil {
			return nil, fmt.Errorf("sky: %w", err)
		}
	}
	if f.Sun != nil {
		s.Sun = vec(*f.Sun)
	}
	if f.Tolerance != nil {
		s.Tolerance = core.MergeTolerance(s.Tolerance, core.Tolerance{
			MinDistance:     f.Tolerance.MinDistance,
			ParallelEpsilon: f.Tolerance.ParallelEpsilon,
		})
	}

	for i, pf := range f.Primitives {
		primitive, err := pf.build()
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		s.Add(primitive)
	}
	return s, nil
}

func (c CameraFile) build() (geometry.CameraConfig, error) {
	config := geometry.CameraConfig{
		Position:  vec(c.Position),
		Direction: vec(c.Direction),
		Up:        core.NewVec3(0, 1, 0),
		NearPlane: c.NearPlane,
		FOV:       c.FOV,
	}
	if c.Up != nil {
		config.Up = vec(*c.Up)
	}
	if config.NearPlane == 0 {
		config.NearPlane = 1
	}
	if config.FOV == 0 {
		config.FOV = 30
	}
	if c.Orbit != nil {
		config.Rig = geometry.CameraRig{
			Kind:   geometry.RigOrbit,
			Target: vec(c.Orbit.Target),
			Radius: c.Orbit.Radius,
			Height: c.Orbit.Height,
			Speed:  c.Orbit.Speed,
			Phase:  c.Orbit.Phase,
		}
	} else if config.Direction == (core.Vec3{}) {
		return config, fmt.Errorf("camera: %w", geometry.ErrDegenerateCamera)
	}
	return config, nil
}

func (p PrimitiveFile) build() (geometry.Primitive, error) {
	color, err := core.ParseHexColor(p.Color)
	if err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}

	switch p.Type {
	case "sphere":
		if p.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive, got %f", p.Radius)
		}
		return geometry.NewSphere(vec(p.Center), p.Radius, color, p.Reflectivity), nil

	case "movingSphere":
		if p.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive, got %f", p.Radius)
		}
		if p.Trajectory == nil {
			return nil, fmt.Errorf("movingSphere requires a trajectory")
		}
		kind, err := geometry.ParseTrajectoryKind(p.Trajectory.Kind)
		if err != nil {
			return nil, err
		}
		path := geometry.Trajectory{
			Kind:      kind,
			Center:    vec(p.Trajectory.Center),
			Radius:    p.Trajectory.Radius,
			Amplitude: vec(p.Trajectory.Amplitude),
			Speed:     p.Trajectory.Speed,
			Phase:     p.Trajectory.Phase,
		}
		return geometry.NewMovingSphere(path, p.Radius, color, p.Reflectivity), nil

	case "plane":
		if !p.Checker {
			return geometry.NewPlane(vec(p.Point), vec(p.Normal), color, p.Reflectivity)
		}
		altColor, err := core.ParseHexColor(p.AltColor)
		if err != nil {
			return nil, fmt.Errorf("altColor: %w", err)
		}
		plane, err := geometry.NewCheckerPlane(vec(p.Point), vec(p.Normal), color, altColor, p.Reflectivity)
		if err != nil {
			return nil, err
		}
		if p.CheckerSize > 0 {
			plane.CheckerSize = p.CheckerSize
		}
		return plane, nil

	default:
		return nil, fmt.Errorf("unknown primitive type %q", p.Type)
	}
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
