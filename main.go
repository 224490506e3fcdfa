package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/output"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// SineSceneName selects the calibration pattern instead of a ray traced scene
const SineSceneName = "sine"

// Options holds the command line settings
type Options struct {
	Scene   string
	Time    float64
	Frames  int
	End     float64
	Width   int
	Height  int
	Depth   int
	Workers int
	Out     string
	Thumb   uint
	Upload  bool
}

func main() {
	// Optional .env with S3 settings and RAYTRACER_SCENES_DIR
	_ = godotenv.Load()

	var opts Options
	flag.StringVar(&opts.Scene, "scene", "default", "Scene name, JSON scene file, or 'sine'")
	flag.Float64Var(&opts.Time, "time", 0, "Time in seconds of the first frame")
	flag.IntVar(&opts.Frames, "frames", 1, "Number of frames to render")
	flag.Float64Var(&opts.End, "end", 2*math.Pi, "Time of the last frame when rendering more than one")
	flag.IntVar(&opts.Width, "width", 0, "Image width (0 = scene default)")
	flag.IntVar(&opts.Height, "height", 0, "Image height (0 = scene default)")
	flag.IntVar(&opts.Depth, "depth", 0, "Maximum reflection depth (0 = scene default)")
	flag.IntVar(&opts.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.StringVar(&opts.Out, "out", "output", "Output directory")
	flag.UintVar(&opts.Thumb, "thumb", 0, "Also save thumbnails fitting within this many pixels (0 = off)")
	flag.BoolVar(&opts.Upload, "upload", false, "Upload frames to S3 (configured via S3_* environment variables)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, renderer.NewDefaultLogger()); err != nil {
		log.Fatalf("Render failed: %v", err)
	}
}

func printHelp() {
	fmt.Println("Mirror Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	scenes, err := scene.ListScenes(scene.ScenesDir(), renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("  (failed to list scenes: %v)\n", err)
	}
	for _, info := range scenes {
		fmt.Printf("  %-14s - %s\n", info.ID, info.Description)
	}
	fmt.Printf("  %-14s - %s\n", SineSceneName, "Scrolling red/blue calibration pattern")
	fmt.Println()
	fmt.Println("Frames are saved to <out>/<scene>/frame_NNNNNN.png")
}

// run renders every requested frame through a PNG recorder
func run(ctx context.Context, opts Options, logger core.Logger) error {
	logger.Printf("Starting Mirror Raytracer...\n")

	r, err := createRenderer(opts, logger)
	if err != nil {
		return err
	}

	outputDir := filepath.Join(opts.Out, sceneDirName(opts.Scene))
	recorder, err := output.NewPNGRecorder(r, outputDir)
	if err != nil {
		return err
	}

	if opts.Upload {
		publisher, err := output.NewS3Publisher(output.S3ConfigFromEnv(), logger)
		if err != nil {
			return err
		}
		recorder.SetPublisher(publisher)
	}

	startTime := time.Now()
	frames, errs := renderer.Animate(ctx, recorder, frameTimes(opts), logger)
	for result := range frames {
		logger.Printf("Frame %d/%d (t=%.3f) saved as %s\n", result.Index+1, result.Total, result.Frame.Time,
			filepath.Join(outputDir, output.FrameName(result.Index)))

		if opts.Thumb > 0 {
			thumb := output.Thumbnail(result.Frame, opts.Thumb, opts.Thumb)
			path := filepath.Join(outputDir, fmt.Sprintf("thumb_%06d.png", result.Index))
			if err := output.SaveImage(path, thumb); err != nil {
				return err
			}
		}
	}
	if err := <-errs; err != nil {
		return err
	}

	logger.Printf("Rendered %d frames in %v\n", recorder.Recorded(), time.Since(startTime))
	return nil
}

// createRenderer returns the sine pattern or a raytracer for the named scene
func createRenderer(opts Options, logger core.Logger) (core.Renderer, error) {
	if opts.Scene == SineSceneName {
		return renderer.NewSineRenderer(opts.Width, opts.Height), nil
	}

	sc, err := scene.Create(opts.Scene, scene.ScenesDir())
	if err != nil {
		return nil, err
	}
	logger.Printf("Using scene %s (%d primitives)...\n", sc.Name, sc.GetPrimitiveCount())

	rt := renderer.NewRaytracer(sc, opts.Width, opts.Height)
	rt.MergeConfig(renderer.Config{MaxDepth: opts.Depth, NumWorkers: opts.Workers})
	rt.SetLogger(logger)
	return rt, nil
}

// frameTimes returns the time of each frame; a single frame renders at Time
func frameTimes(opts Options) []float64 {
	if opts.Frames <= 1 {
		return []float64{opts.Time}
	}
	return renderer.FrameTimes(opts.Time, opts.End, opts.Frames)
}

// sceneDirName turns a scene name or file path into an output directory name
func sceneDirName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
