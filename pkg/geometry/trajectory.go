package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// TrajectoryKind enumerates the supported motion functions
type TrajectoryKind int

const (
	// TrajectoryStatic stays at Center
	TrajectoryStatic TrajectoryKind = iota
	// TrajectoryOrbit circles Center in the horizontal (XZ) plane at distance Radius
	TrajectoryOrbit
	// TrajectoryOscillate moves along Amplitude: Center + Amplitude·sin(Speed·t + Phase)
	TrajectoryOscillate
)

var trajectoryKindNames = map[TrajectoryKind]string{
	TrajectoryStatic:    "static",
	TrajectoryOrbit:     "orbit",
	TrajectoryOscillate: "oscillate",
}

func (k TrajectoryKind) String() string {
	if name, ok := trajectoryKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TrajectoryKind(%d)", int(k))
}

// ParseTrajectoryKind maps a name such as "orbit" to its kind
func ParseTrajectoryKind(name string) (TrajectoryKind, error) {
	for kind, n := range trajectoryKindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown trajectory kind %q", name)
}

// Trajectory is a pure function of time returning a position
type Trajectory struct {
	Kind      TrajectoryKind
	Center    core.Vec3
	Radius    float64   // Orbit radius
	Amplitude core.Vec3 // Oscillation extent (and direction)
	Speed     float64   // Angular speed in radians per second
	Phase     float64   // Phase offset in radians
}

// OrbitPath returns a horizontal circular orbit around center
func OrbitPath(center core.Vec3, radius, speed, phase float64) Trajectory {
	return Trajectory{Kind: TrajectoryOrbit, Center: center, Radius: radius, Speed: speed, Phase: phase}
}

// OscillatePath returns a back-and-forth motion along amplitude
func OscillatePath(center, amplitude core.Vec3, speed, phase float64) Trajectory {
	return Trajectory{Kind: TrajectoryOscillate, Center: center, Amplitude: amplitude, Speed: speed, Phase: phase}
}

// Position returns the point on the trajectory at time t
func (tr Trajectory) Position(t float64) core.Vec3 {
	angle := tr.Speed*t + tr.Phase
	switch tr.Kind {
	case TrajectoryOrbit:
		return tr.Center.Add(core.NewVec3(
			tr.Radius*math.Cos(angle),
			0,
			tr.Radius*math.Sin(angle),
		))
	case TrajectoryOscillate:
		return tr.Center.Add(tr.Amplitude.Multiply(math.Sin(angle)))
	default:
		return tr.Center
	}
}
