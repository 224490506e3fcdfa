package core

// Hit is the result of a ray striking a primitive
type Hit struct {
	Point        Vec3    // Point of intersection
	Distance     float64 // Euclidean distance from the ray origin to Point
	Reflected    Ray     // Mirror-reflected ray leaving Point, unit direction
	Color        Color   // Surface color at Point
	Reflectivity float64 // Share of the reflection in the final color, in [0,1]
}
