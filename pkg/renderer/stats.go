package renderer

import "time"

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	Time        float64       // Frame time value in seconds
	TotalPixels int           // Total number of pixels rendered
	HitPixels   int           // Pixels whose primary ray hit a primitive
	Tiles       int           // Number of tiles dispatched
	Workers     int           // Number of parallel workers
	Duration    time.Duration // Wall time spent rendering
}

// HitRatio returns the fraction of pixels that show geometry rather than sky
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}
