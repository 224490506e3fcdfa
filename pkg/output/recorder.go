package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// PNGRecorder wraps a renderer and saves every frame it produces as
// frame_NNNNNN.png, numbering frames in the order they were rendered.
// When a publisher is set, each PNG is uploaded under the same name.
type PNGRecorder struct {
	renderer  core.Renderer
	dir       string
	publisher Publisher
	count     atomic.Int64
}

// NewPNGRecorder creates the output directory and returns the recorder
func NewPNGRecorder(renderer core.Renderer, dir string) (*PNGRecorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &PNGRecorder{renderer: renderer, dir: dir}, nil
}

// SetPublisher uploads each recorded frame through p
func (r *PNGRecorder) SetPublisher(p Publisher) {
	r.publisher = p
}

// Render implements core.Renderer, passing the wrapped renderer's output through unchanged
func (r *PNGRecorder) Render(t float64) ([]byte, int, int, error) {
	pixels, width, height, err := r.renderer.Render(t)
	if err != nil {
		return pixels, width, height, err
	}

	frame, err := core.NewFrame(pixels, width, height, t)
	if err != nil {
		return pixels, width, height, err
	}
	data, err := EncodePNG(frame)
	if err != nil {
		return pixels, width, height, err
	}

	name := FrameName(int(r.count.Add(1) - 1))
	if err := os.WriteFile(filepath.Join(r.dir, name), data, 0644); err != nil {
		return pixels, width, height, fmt.Errorf("failed to record frame: %w", err)
	}
	if r.publisher != nil {
		if err := r.publisher.Publish(context.Background(), name, data); err != nil {
			return pixels, width, height, err
		}
	}
	return pixels, width, height, nil
}

// Recorded returns the number of frames written so far
func (r *PNGRecorder) Recorded() int {
	return int(r.count.Load())
}

// FrameName returns the file name of the n-th recorded frame
func FrameName(n int) string {
	return fmt.Sprintf("frame_%06d.png", n)
}
