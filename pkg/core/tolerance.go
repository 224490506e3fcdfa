package core

// Tolerance holds the numeric guards used by intersection tests
type Tolerance struct {
	// MinDistance is the smallest ray parameter accepted as a hit.
	// Reflected rays start on a surface, so anything closer is self-intersection.
	MinDistance float64
	// ParallelEpsilon rejects rays whose direction is nearly perpendicular to a plane normal
	ParallelEpsilon float64
}

// DefaultTolerance returns the tolerances used by the built-in scenes
func DefaultTolerance() Tolerance {
	return Tolerance{
		MinDistance:     1.0,
		ParallelEpsilon: 5e-5,
	}
}

// MergeTolerance returns base with any positive field of override applied
func MergeTolerance(base, override Tolerance) Tolerance {
	result := base
	if override.MinDistance > 0 {
		result.MinDistance = override.MinDistance
	}
	if override.ParallelEpsilon > 0 {
		result.ParallelEpsilon = override.ParallelEpsilon
	}
	return result
}

// ClampReflectivity limits r to [0,1]; NaN becomes 0
func ClampReflectivity(r float64) float64 {
	if r != r || r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
