package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// ErrDegenerateCamera is returned when a camera pose cannot span an image plane
var ErrDegenerateCamera = errors.New("degenerate camera")

// RigKind enumerates how the camera pose varies with time
type RigKind int

const (
	// RigStatic keeps the configured position and direction
	RigStatic RigKind = iota
	// RigOrbit circles Target horizontally while looking at it
	RigOrbit
)

// CameraRig describes camera motion as a pure function of time
type CameraRig struct {
	Kind   RigKind
	Target core.Vec3 // Point the orbiting camera looks at
	Radius float64   // Horizontal distance from Target
	Height float64   // Vertical offset above Target
	Speed  float64   // Angular speed in radians per second
	Phase  float64   // Phase offset in radians
}

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Position  core.Vec3 // Camera position (static rig)
	Direction core.Vec3 // View direction (static rig), need not be unit length
	Up        core.Vec3 // World up reference
	NearPlane float64   // Distance from the camera to the image plane
	FOV       float64   // Field of view in degrees, see NewFrustum
	Rig       CameraRig
}

// CameraPose is the camera position and unit view direction at one instant
type CameraPose struct {
	Position  core.Vec3
	Direction core.Vec3
}

// Pose resolves the camera pose at time t
func (c CameraConfig) Pose(t float64) (CameraPose, error) {
	position, direction := c.Position, c.Direction
	if c.Rig.Kind == RigOrbit {
		angle := c.Rig.Speed*t + c.Rig.Phase
		position = c.Rig.Target.Add(core.NewVec3(
			c.Rig.Radius*math.Sin(angle),
			c.Rig.Height,
			-c.Rig.Radius*math.Cos(angle),
		))
		direction = c.Rig.Target.Subtract(position)
	}

	dir, err := direction.Normalize()
	if err != nil {
		return CameraPose{}, fmt.Errorf("%w: view direction: %v", ErrDegenerateCamera, err)
	}
	return CameraPose{Position: position, Direction: dir}, nil
}

// Frustum maps pixel coordinates to world-space rays for one camera pose
type Frustum struct {
	Origin  core.Vec3 // Camera position, origin of every primary ray
	TopLeft core.Vec3 // Image plane point for pixel (0,0)
	DX      core.Vec3 // Step between adjacent columns
	DY      core.Vec3 // Step between adjacent rows
	Width   int
	Height  int
}

// NewFrustum builds the near-plane rectangle for pose.
// fovDegrees is converted to radians and the horizontal half-extent of the
// image plane is 2·near·tan(fov); the vertical extent follows from the aspect ratio.
func NewFrustum(pose CameraPose, up core.Vec3, near, fovDegrees float64, width, height int) (Frustum, error) {
	if width <= 0 || height <= 0 {
		return Frustum{}, fmt.Errorf("%w: resolution %dx%d", ErrDegenerateCamera, width, height)
	}
	if !pose.Position.IsFinite() || !pose.Direction.IsFinite() {
		return Frustum{}, fmt.Errorf("%w: non-finite pose %v, %v", ErrDegenerateCamera, pose.Position, pose.Direction)
	}

	left, err := pose.Direction.Cross(up).Normalize()
	if err != nil {
		return Frustum{}, fmt.Errorf("%w: direction %v is parallel to up %v", ErrDegenerateCamera, pose.Direction, up)
	}
	down, err := pose.Direction.Cross(left).Normalize()
	if err != nil {
		return Frustum{}, fmt.Errorf("%w: no vertical axis", ErrDegenerateCamera)
	}

	x0 := 2 * near * math.Tan(mgl64.DegToRad(fovDegrees))
	ratio := float64(width) / float64(height)
	y0 := x0 / ratio

	topLeft := pose.Position.
		Add(pose.Direction.Multiply(near)).
		Add(left.Multiply(x0)).
		Subtract(down.Multiply(y0))

	return Frustum{
		Origin:  pose.Position,
		TopLeft: topLeft,
		DX:      left.Multiply(-2 * x0 / float64(width)),
		DY:      down.Multiply(2 * y0 / float64(height)),
		Width:   width,
		Height:  height,
	}, nil
}

// RayFor returns the primary ray for pixel (col, row); row 0 is the top
func (f Frustum) RayFor(col, row int) core.Ray {
	target := f.TopLeft.
		Add(f.DX.Multiply(float64(col))).
		Add(f.DY.Multiply(float64(row)))
	return core.NewRayThrough(f.Origin, target)
}
