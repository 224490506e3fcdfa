package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/display"
	"github.com/df07/go-mirror-raytracer/pkg/output"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// viewer presents one freshly rendered frame per tick
type viewer struct {
	renderer core.Renderer
	start    time.Time
	speed    float64
	frame    *ebiten.Image
	width    int
	height   int
}

func (v *viewer) Update() error {
	t := time.Since(v.start).Seconds() * v.speed
	pixels, width, height, err := v.renderer.Render(t)
	if err != nil {
		return err
	}

	if v.frame == nil || width != v.width || height != v.height {
		if v.frame != nil {
			v.frame.Deallocate()
		}
		v.frame = ebiten.NewImage(width, height)
		v.width, v.height = width, height
	}
	v.frame.WritePixels(pixels)
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.frame == nil {
		return
	}
	bounds := screen.Bounds()
	vp := display.Fit(v.width, v.height, bounds.Dx(), bounds.Dy())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(vp.Scale, vp.Scale)
	op.GeoM.Translate(vp.OffsetX, vp.OffsetY)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(v.frame, op)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func main() {
	_ = godotenv.Load()

	sceneName := flag.String("scene", "default", "Scene name, JSON scene file, or 'sine'")
	width := flag.Int("width", 0, "Frame width (0 = scene default)")
	height := flag.Int("height", 0, "Frame height (0 = scene default)")
	depth := flag.Int("depth", 0, "Maximum reflection depth (0 = scene default)")
	speed := flag.Float64("speed", 1, "Animation speed multiplier")
	tps := flag.Int("tps", 30, "Frames rendered per second")
	record := flag.String("record", "", "Directory to record every presented frame as PNG")
	flag.Parse()

	var r core.Renderer
	if *sceneName == "sine" {
		r = renderer.NewSineRenderer(*width, *height)
	} else {
		sc, err := scene.Create(*sceneName, scene.ScenesDir())
		if err != nil {
			log.Fatalf("Failed to create scene: %v", err)
		}
		rt := renderer.NewRaytracer(sc, *width, *height)
		rt.MergeConfig(renderer.Config{MaxDepth: *depth})
		r = rt
	}

	if *record != "" {
		recorder, err := output.NewPNGRecorder(r, *record)
		if err != nil {
			log.Fatalf("Failed to start recording: %v", err)
		}
		r = recorder
	}

	// The first render fixes the window size
	_, frameWidth, frameHeight, err := r.Render(0)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	ebiten.SetWindowTitle("Mirror Raytracer - " + *sceneName)
	ebiten.SetWindowSize(frameWidth, frameHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(*tps)

	if err := ebiten.RunGame(&viewer{renderer: r, start: time.Now(), speed: *speed}); err != nil {
		log.Fatalf("Viewer error: %v", err)
	}
}
