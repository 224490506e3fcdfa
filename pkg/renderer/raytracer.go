package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/geometry"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// Config contains rendering configuration
type Config struct {
	MaxDepth   int // Maximum number of mirror bounces
	TileSize   int // Edge length of a tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:   5,
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// MergeConfig returns base with every non-zero field of override applied
func MergeConfig(base, override Config) Config {
	if override.MaxDepth > 0 {
		base.MaxDepth = override.MaxDepth
	}
	if override.TileSize > 0 {
		base.TileSize = override.TileSize
	}
	if override.NumWorkers > 0 {
		base.NumWorkers = override.NumWorkers
	}
	return base
}

// Raytracer renders frames of a scene at a fixed resolution.
// It implements core.Renderer.
type Raytracer struct {
	scene  *scene.Scene
	width  int
	height int
	config Config
	logger core.Logger
}

// NewRaytracer creates a new raytracer; a non-positive width or height uses the scene's resolution
func NewRaytracer(sc *scene.Scene, width, height int) *Raytracer {
	if width <= 0 || height <= 0 {
		width, height = sc.Width, sc.Height
	}
	config := DefaultConfig()
	config.MaxDepth = sc.MaxDepth

	return &Raytracer{
		scene:  sc,
		width:  width,
		height: height,
		config: config,
		logger: NopLogger{},
	}
}

// SetConfig replaces the rendering configuration
func (rt *Raytracer) SetConfig(config Config) {
	rt.config = config
}

// MergeConfig applies the non-zero fields of config
func (rt *Raytracer) MergeConfig(config Config) {
	rt.config = MergeConfig(rt.config, config)
}

// GetConfig returns the current rendering configuration
func (rt *Raytracer) GetConfig() Config {
	return rt.config
}

// SetLogger sets the logger used for per-frame output
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	rt.logger = logger
}

// Size returns the fixed output resolution
func (rt *Raytracer) Size() (width, height int) {
	return rt.width, rt.height
}

// Render implements core.Renderer
func (rt *Raytracer) Render(t float64) ([]byte, int, int, error) {
	frame, _, err := rt.RenderFrame(t)
	if err != nil {
		return nil, rt.width, rt.height, err
	}
	return frame.Pixels, frame.Width, frame.Height, nil
}

// RenderFrame renders the scene at time t.
// The camera pose and frustum are resolved once, then tiles render in parallel.
func (rt *Raytracer) RenderFrame(t float64) (*core.Frame, RenderStats, error) {
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("%w: dimensions %dx%d", core.ErrInvalidFrame, rt.width, rt.height)
	}
	startTime := time.Now()

	camera := rt.scene.Camera
	pose, err := camera.Pose(t)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("camera pose at t=%g: %w", t, err)
	}
	frustum, err := geometry.NewFrustum(pose, camera.Up, camera.NearPlane, camera.FOV, rt.width, rt.height)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("camera frustum at t=%g: %w", t, err)
	}

	pixels := make([]byte, 4*rt.width*rt.height)
	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize)
	pool := NewWorkerPool(rt.config.NumWorkers)

	err = pool.Run(tiles, func(tile *Tile) error {
		rt.renderTile(tile, frustum, pixels, t)
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, err
	}

	frame, err := core.NewFrame(pixels, rt.width, rt.height, t)
	if err != nil {
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		Time:        t,
		TotalPixels: rt.width * rt.height,
		Tiles:       len(tiles),
		Workers:     pool.GetNumWorkers(),
		Duration:    time.Since(startTime),
	}
	for _, tile := range tiles {
		stats.HitPixels += tile.Hits
	}

	rt.logger.Printf("Frame t=%.3f rendered in %v (%d tiles, %d workers)\n",
		t, stats.Duration, stats.Tiles, stats.Workers)

	return frame, stats, nil
}

// renderTile writes every pixel inside the tile bounds
func (rt *Raytracer) renderTile(tile *Tile, frustum geometry.Frustum, pixels []byte, t float64) {
	tile.Hits = 0
	bounds := tile.Bounds
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			color, isHit := Trace(frustum.RayFor(x, y), rt.scene, rt.config.MaxDepth, t)
			if isHit {
				tile.Hits++
			} else {
				color = rt.scene.Sky
			}

			i := 4 * (y*rt.width + x)
			pixels[i] = color.R
			pixels[i+1] = color.G
			pixels[i+2] = color.B
			pixels[i+3] = 255
		}
	}
}
