package renderer

import (
	"context"
	"time"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// FrameResult contains one frame of an animation
type FrameResult struct {
	Index    int         // Position in the requested time sequence
	Total    int         // Number of frames requested
	Frame    *core.Frame // Rendered pixels
	Duration time.Duration
	IsLast   bool
}

// FrameTimes returns n time values spread uniformly over [start, end].
// A single frame is rendered at start.
func FrameTimes(start, end float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	times := make([]float64, n)
	if n == 1 {
		times[0] = start
		return times
	}
	step := (end - start) / float64(n-1)
	for i := range times {
		times[i] = start + float64(i)*step
	}
	times[n-1] = end
	return times
}

// Animate renders r at each time in order, streaming frames on the returned channel.
// The caller should read from both channels; the error channel receives at most one
// value and both close when rendering ends or ctx is cancelled.
func Animate(ctx context.Context, r core.Renderer, times []float64, logger core.Logger) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)
	if logger == nil {
		logger = NopLogger{}
	}

	go func() {
		defer close(frameChan)
		defer close(errChan)

		logger.Printf("Starting animation with %d frames...\n", len(times))

		for i, t := range times {
			// Check if client disconnected before starting this frame
			select {
			case <-ctx.Done():
				logger.Printf("Animation cancelled before frame %d\n", i+1)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()
			pixels, width, height, err := r.Render(t)
			if err != nil {
				errChan <- err
				return
			}
			frame, err := core.NewFrame(pixels, width, height, t)
			if err != nil {
				errChan <- err
				return
			}

			result := FrameResult{
				Index:    i,
				Total:    len(times),
				Frame:    frame,
				Duration: time.Since(startTime),
				IsLast:   i == len(times)-1,
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				return
			}
		}

		logger.Printf("Animation complete\n")
	}()

	return frameChan, errChan
}
